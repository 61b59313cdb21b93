package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinmerge/internal/core/domain"
)

func TestResolution(t *testing.T) {
	res := domain.Resolution{}
	conda := domain.Declaration{Name: "numpy", Ecosystem: domain.EcosystemChannel, Pin: ">1"}
	pip := domain.Declaration{Name: "numpy", Ecosystem: domain.EcosystemIndex}

	res.Set("numpy", domain.Win64, conda)
	res.Set("numpy", domain.Linux64, conda)
	res.Set("numpy", domain.Linux64, pip)
	res.Set("click", domain.AnyPlatform, domain.Declaration{Name: "click", Ecosystem: domain.EcosystemIndex})

	got, ok := res.Get("numpy", domain.Linux64, domain.EcosystemIndex)
	require.True(t, ok)
	assert.Equal(t, pip, got)

	_, ok = res.Get("scipy", domain.Linux64, domain.EcosystemIndex)
	assert.False(t, ok)
	assert.NotContains(t, res, "scipy", "lookups must not create entries")

	assert.Equal(t, []string{"click", "numpy"}, res.Names())
	assert.Equal(t, []domain.Platform{domain.Linux64, domain.Win64}, res.Platforms("numpy"))

	only := res.Only(domain.EcosystemIndex)
	assert.Equal(t, []string{"click", "numpy"}, only.Names())
	assert.Equal(t, []domain.Platform{domain.Linux64}, only.Platforms("numpy"))
}

func TestWarningString(t *testing.T) {
	w := domain.Warning{
		Kind:      domain.PlatformConflict,
		Package:   "foo",
		Platform:  domain.AnyPlatform,
		Kept:      "foo >1",
		Discarded: []string{"foo <1"},
		Message:   "contradictory version pinnings",
	}
	assert.Contains(t, w.String(), `"foo" on all platforms`)
	assert.Contains(t, w.String(), `Keeping "foo >1", discarding "foo <1".`)

	w.Kind = domain.VersionPinningConflict
	w.Platform = domain.OSX64
	assert.Contains(t, w.String(), "on osx-64")
}

func TestParseSelectorMode(t *testing.T) {
	m, err := domain.ParseSelectorMode("")
	require.NoError(t, err)
	assert.Equal(t, domain.SelectorSel, m)

	m, err = domain.ParseSelectorMode("comment")
	require.NoError(t, err)
	assert.Equal(t, domain.SelectorComment, m)

	_, err = domain.ParseSelectorMode("bracket")
	require.ErrorContains(t, err, "invalid selector mode")
}
