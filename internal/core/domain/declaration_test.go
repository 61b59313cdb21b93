package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinmerge/internal/core/domain"
)

func TestRestriction(t *testing.T) {
	t.Run("zero value applies everywhere", func(t *testing.T) {
		r := domain.NoRestriction()
		assert.True(t, r.IsZero())
		platforms, ok := r.Platforms()
		assert.False(t, ok)
		assert.Nil(t, platforms)
	})

	t.Run("selector", func(t *testing.T) {
		r, err := domain.BySelector("osx win")
		require.NoError(t, err)
		platforms, ok := r.Platforms()
		assert.True(t, ok)
		assert.Equal(t, []domain.Platform{domain.OSX64, domain.OSXArm64, domain.Win64}, platforms)
		assert.Equal(t, ":osx win", r.String())
	})

	t.Run("empty selector is no restriction", func(t *testing.T) {
		r, err := domain.BySelector("  ")
		require.NoError(t, err)
		assert.Equal(t, domain.NoRestriction(), r)
	})

	t.Run("comment", func(t *testing.T) {
		r, err := domain.ByComment("# [linux64]")
		require.NoError(t, err)
		platforms, ok := r.Platforms()
		assert.True(t, ok)
		assert.Equal(t, []domain.Platform{domain.Linux64}, platforms)
	})

	t.Run("invalid selector rejected eagerly", func(t *testing.T) {
		_, err := domain.BySelector("linux64 amiga")
		require.ErrorContains(t, err, "unsupported platform selector")
		_, err = domain.ByComment("# [amiga]")
		require.ErrorContains(t, err, "unsupported platform selector")
	})

	t.Run("comparable", func(t *testing.T) {
		a, _ := domain.BySelector("linux")
		b, _ := domain.BySelector("linux")
		assert.Equal(t, a, b)
		assert.True(t, a == b)
	})
}

func TestDeclarationRequirement(t *testing.T) {
	tests := []struct {
		name     string
		pin      string
		pipStyle bool
		want     string
	}{
		{name: "unpinned", pin: "", want: "numpy"},
		{name: "range", pin: ">=1.20,<2", want: "numpy >=1.20,<2"},
		{name: "exact channel style", pin: "=1.21", want: "numpy =1.21"},
		{name: "exact pip style", pin: "=1.21", pipStyle: true, want: "numpy ==1.21"},
		{name: "double equals untouched", pin: "==1.21", pipStyle: true, want: "numpy ==1.21"},
		{name: "inclusive bound untouched", pin: ">=1.21", pipStyle: true, want: "numpy >=1.21"},
		{name: "not equal untouched", pin: "!=1.21", pipStyle: true, want: "numpy !=1.21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.Declaration{Name: "numpy", Ecosystem: domain.EcosystemChannel, Pin: tt.pin}
			assert.Equal(t, tt.want, d.Requirement(tt.pipStyle))
		})
	}
}

func TestDeclarationAsMapKey(t *testing.T) {
	r, err := domain.BySelector("linux64")
	require.NoError(t, err)

	a := domain.Declaration{Name: "foo", Ecosystem: domain.EcosystemIndex, Pin: ">1", Restriction: r, Identifier: "abc"}
	b := a
	seen := map[domain.Declaration]int{a: 1}
	seen[b]++
	assert.Len(t, seen, 1)
	assert.Equal(t, 2, seen[a])
}

func TestNewIdentifier(t *testing.T) {
	none := domain.NoRestriction()
	linux, err := domain.BySelector("linux")
	require.NoError(t, err)

	id := domain.NewIdentifier(0, none)
	assert.Len(t, id, 8)
	assert.Equal(t, id, domain.NewIdentifier(0, none))
	assert.NotEqual(t, id, domain.NewIdentifier(1, none))
	assert.NotEqual(t, id, domain.NewIdentifier(0, linux))
}

func TestRequirementsCloneAndMerge(t *testing.T) {
	reqs := domain.Requirements{}
	reqs.Add(domain.Declaration{Name: "a", Ecosystem: domain.EcosystemChannel})

	clone := reqs.Clone()
	clone.Add(domain.Declaration{Name: "a", Ecosystem: domain.EcosystemIndex})
	assert.Len(t, reqs["a"], 1)
	assert.Len(t, clone["a"], 2)

	reqs.Merge(domain.Requirements{"b": {{Name: "b", Ecosystem: domain.EcosystemIndex}}})
	assert.Len(t, reqs, 2)
}
