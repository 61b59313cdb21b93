// Package app implements the application layer for pinmerge.
package app

import (
	"context"
	"fmt"
	"io"
	"slices"

	"go.trai.ch/pinmerge/internal/adapters/detector"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/core/ports"
	"go.trai.ch/pinmerge/internal/engine/envspec"
	"go.trai.ch/pinmerge/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// DefaultOutputFile is written when no output path is given.
const DefaultOutputFile = "environment.yaml"

// CurrentPlatform is the --platform value naming the host platform.
const CurrentPlatform = "current"

// App represents the main application logic.
type App struct {
	loader   ports.ManifestLoader
	writer   ports.EnvironmentWriter
	logger   ports.Logger
	resolver *resolver.Resolver
	builder  *envspec.Builder
	platform func() (domain.Platform, error)
}

// New creates a new App instance.
func New(
	loader ports.ManifestLoader,
	writer ports.EnvironmentWriter,
	log ports.Logger,
	res *resolver.Resolver,
	builder *envspec.Builder,
) *App {
	return &App{
		loader:   loader,
		writer:   writer,
		logger:   log,
		resolver: res,
		builder:  builder,
		platform: detector.CurrentPlatform,
	}
}

// WithPlatformDetector replaces host platform detection.
// This is primarily used for testing "--platform current".
func (a *App) WithPlatformDetector(fn func() (domain.Platform, error)) *App {
	a.platform = fn
	return a
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	Files     []string // files or directories, optionally with "[extras]"
	Platforms []string // overrides the platforms declared in the files
	Extras    []string // optional groups for files without their own suffix
	Filters   resolver.Filters
}

// MergeOptions configuration for the Merge method.
type MergeOptions struct {
	ResolveOptions

	Name         string
	Output       string
	Stdout       io.Writer // when non-nil, receives the environment instead of Output
	SelectorMode string
}

// Resolution is the outcome of resolving a set of files. Requested lists the
// platforms it was computed for; empty means every supported platform.
type Resolution struct {
	domain.Resolution

	Name      string
	Channels  []string
	Requested []domain.Platform
}

// Resolve loads the files and resolves their declarations.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) (Resolution, error) {
	if len(opts.Files) == 0 {
		return Resolution{}, domain.ErrNoInputFiles
	}

	platforms, err := a.platforms(opts.Platforms)
	if err != nil {
		return Resolution{}, err
	}

	manifests, err := a.load(ctx, opts.Files, opts.Extras)
	if err != nil {
		return Resolution{}, err
	}
	collected := domain.Collect(manifests)
	if len(platforms) == 0 {
		platforms = collected.Platforms
	}

	reqs, err := resolver.ApplyFilters(collected.Requirements, opts.Filters)
	if err != nil {
		return Resolution{}, err
	}
	optional, err := resolver.ApplyFiltersToGroups(collected.Optional, opts.Filters)
	if err != nil {
		return Resolution{}, err
	}

	res, err := a.resolver.Resolve(reqs, platforms, optional)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Resolution: res,
		Name:       collected.Name,
		Channels:   collected.Channels,
		Requested:  platforms,
	}, nil
}

// Merge resolves the files and writes the combined environment.
func (a *App) Merge(ctx context.Context, opts MergeOptions) error {
	mode, err := domain.ParseSelectorMode(opts.SelectorMode)
	if err != nil {
		return err
	}

	res, err := a.Resolve(ctx, opts.ResolveOptions)
	if err != nil {
		return err
	}

	spec, err := a.builder.Build(res.Resolution, res.Channels, res.Requested, mode)
	if err != nil {
		return zerr.Wrap(err, "failed to build environment")
	}
	spec.Name = firstNonEmpty(opts.Name, res.Name, domain.DefaultEnvironmentName)

	if opts.Stdout != nil {
		return a.writer.Encode(opts.Stdout, spec)
	}

	output := firstNonEmpty(opts.Output, DefaultOutputFile)
	if err := a.writer.WriteFile(output, spec); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote %s (%d conda, %d pip dependencies)", output, len(spec.Channel), len(spec.Index)))
	return nil
}

// load reads every file concurrently and returns the manifests in argument order.
func (a *App) load(ctx context.Context, files, extras []string) ([]*domain.Manifest, error) {
	manifests := make([]*domain.Manifest, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			m, err := a.loader.Load(ctx, file)
			if err != nil {
				return err
			}
			if m.Extras == nil {
				m.Extras = extras
			}
			manifests[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return manifests, nil
}

// platforms parses the requested platforms, expanding "current".
func (a *App) platforms(requested []string) ([]domain.Platform, error) {
	out := make([]domain.Platform, 0, len(requested))
	for _, s := range requested {
		var p domain.Platform
		var err error
		if s == CurrentPlatform {
			p, err = a.platform()
		} else {
			p, err = domain.ParsePlatform(s)
		}
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
