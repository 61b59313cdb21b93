package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinmerge/internal/app"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/core/ports/mocks"
	"go.trai.ch/pinmerge/internal/engine/envspec"
	"go.trai.ch/pinmerge/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app    *app.App
	loader *mocks.MockManifestLoader
	writer *mocks.MockEnvironmentWriter
	logger *mocks.MockLogger
	sink   *mocks.MockWarningSink
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		loader: mocks.NewMockManifestLoader(ctrl),
		writer: mocks.NewMockEnvironmentWriter(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		sink:   mocks.NewMockWarningSink(ctrl),
	}
	f.app = app.New(f.loader, f.writer, f.logger, resolver.New(f.sink), envspec.NewBuilder(f.sink))
	return f
}

func entry(name string, eco domain.Ecosystem, pin string) domain.Entry {
	ecos := domain.Ecosystems()
	if eco != "" {
		ecos = []domain.Ecosystem{eco}
	}
	var e domain.Entry
	for _, x := range ecos {
		e.Declarations = append(e.Declarations, domain.Declaration{Name: name, Ecosystem: x, Pin: pin})
	}
	return e
}

func manifests() map[string]*domain.Manifest {
	return map[string]*domain.Manifest{
		"a": {
			Path:         "a/requirements.yaml",
			Name:         "from-a",
			Channels:     []string{"conda-forge"},
			Platforms:    []domain.Platform{domain.Linux64},
			Dependencies: []domain.Entry{entry("numpy", "", ">=1.20")},
			Optional: []domain.OptionalGroup{
				{Name: "test", Entries: []domain.Entry{entry("pytest", domain.EcosystemIndex, "")}},
			},
		},
		"b": {
			Path:         "b/requirements.yaml",
			Channels:     []string{"bioconda", "conda-forge"},
			Dependencies: []domain.Entry{entry("numpy", "", "<2"), entry("click", domain.EcosystemIndex, "")},
		},
	}
}

func expectLoads(f *fixture) {
	all := manifests()
	f.loader.EXPECT().Load(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string) (*domain.Manifest, error) {
			return all[path], nil
		}).AnyTimes()
}

func TestApp_Resolve(t *testing.T) {
	f := newFixture(t)
	expectLoads(f)

	res, err := f.app.Resolve(context.Background(), app.ResolveOptions{Files: []string{"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, "from-a", res.Name)
	assert.Equal(t, []string{"bioconda", "conda-forge"}, res.Channels)
	assert.Equal(t, []domain.Platform{domain.Linux64}, res.Requested)
	assert.Equal(t, []string{"click", "numpy"}, res.Names())

	d, ok := res.Get("numpy", domain.AnyPlatform, domain.EcosystemChannel)
	require.True(t, ok)
	assert.Equal(t, ">=1.20,<2", d.Pin)
}

func TestApp_Resolve_ExtrasAndFilters(t *testing.T) {
	f := newFixture(t)
	expectLoads(f)

	res, err := f.app.Resolve(context.Background(), app.ResolveOptions{
		Files:   []string{"a", "b"},
		Extras:  []string{"test"},
		Filters: resolver.Filters{SkipDependencies: []string{"click"}, IgnorePins: []string{"numpy"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"numpy", "pytest"}, res.Names())
	d, _ := res.Get("numpy", domain.AnyPlatform, domain.EcosystemChannel)
	assert.Empty(t, d.Pin)
}

func TestApp_Resolve_CurrentPlatform(t *testing.T) {
	f := newFixture(t)
	expectLoads(f)
	f.app.WithPlatformDetector(func() (domain.Platform, error) { return domain.OSXArm64, nil })

	res, err := f.app.Resolve(context.Background(), app.ResolveOptions{
		Files:     []string{"b"},
		Platforms: []string{"current", "osx-arm64", "linux-64"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Platform{domain.Linux64, domain.OSXArm64}, res.Requested)
}

func TestApp_Resolve_Errors(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.app.Resolve(context.Background(), app.ResolveOptions{})
		require.ErrorIs(t, err, domain.ErrNoInputFiles)
	})

	t.Run("invalid platform", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.app.Resolve(context.Background(), app.ResolveOptions{
			Files:     []string{"a"},
			Platforms: []string{"linux-sparc"},
		})
		require.ErrorIs(t, err, domain.ErrInvalidPlatform)
	})

	t.Run("loader failure", func(t *testing.T) {
		f := newFixture(t)
		loadErr := errors.New("boom")
		f.loader.EXPECT().Load(gomock.Any(), "a").Return(nil, loadErr)

		_, err := f.app.Resolve(context.Background(), app.ResolveOptions{Files: []string{"a"}})
		require.ErrorIs(t, err, loadErr)
	})
}

func TestApp_Merge_WritesFile(t *testing.T) {
	f := newFixture(t)
	expectLoads(f)

	var written domain.EnvironmentSpec
	f.writer.EXPECT().WriteFile("environment.yaml", gomock.Any()).
		DoAndReturn(func(_ string, spec domain.EnvironmentSpec) error {
			written = spec
			return nil
		})
	f.logger.EXPECT().Info(gomock.Any())

	err := f.app.Merge(context.Background(), app.MergeOptions{
		ResolveOptions: app.ResolveOptions{Files: []string{"a", "b"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "from-a", written.Name)
	assert.Equal(t, []domain.ChannelEntry{{Requirement: "numpy >=1.20,<2"}}, written.Channel)
	assert.Equal(t, []domain.IndexEntry{{Requirement: "click"}}, written.Index)
}

func TestApp_Merge_Stdout(t *testing.T) {
	f := newFixture(t)
	expectLoads(f)

	var out bytes.Buffer
	f.writer.EXPECT().Encode(&out, gomock.Any()).
		DoAndReturn(func(_ io.Writer, spec domain.EnvironmentSpec) error {
			assert.Equal(t, "custom", spec.Name)
			return nil
		})

	err := f.app.Merge(context.Background(), app.MergeOptions{
		ResolveOptions: app.ResolveOptions{Files: []string{"b"}},
		Name:           "custom",
		Stdout:         &out,
	})
	require.NoError(t, err)
}

func TestApp_Merge_DefaultName(t *testing.T) {
	f := newFixture(t)
	expectLoads(f)

	f.writer.EXPECT().WriteFile("out.yaml", gomock.Any()).
		DoAndReturn(func(_ string, spec domain.EnvironmentSpec) error {
			assert.Equal(t, domain.DefaultEnvironmentName, spec.Name)
			return nil
		})
	f.logger.EXPECT().Info(gomock.Any())

	err := f.app.Merge(context.Background(), app.MergeOptions{
		ResolveOptions: app.ResolveOptions{Files: []string{"b"}},
		Output:         "out.yaml",
	})
	require.NoError(t, err)
}

func TestApp_Merge_InvalidSelectorMode(t *testing.T) {
	f := newFixture(t)

	err := f.app.Merge(context.Background(), app.MergeOptions{
		ResolveOptions: app.ResolveOptions{Files: []string{"a"}},
		SelectorMode:   "brackets",
	})
	require.ErrorIs(t, err, domain.ErrInvalidSelectorMode)
}
