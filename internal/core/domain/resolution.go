package domain

import (
	"maps"
	"slices"
)

// ResolvedSources holds at most one declaration per ecosystem.
type ResolvedSources map[Ecosystem]Declaration

// ResolvedPackage maps a platform (or AnyPlatform) to its resolved sources.
type ResolvedPackage map[Platform]ResolvedSources

// Resolution maps a package name to its resolved declarations.
type Resolution map[string]ResolvedPackage

// Set stores d for the given package, platform and ecosystem.
func (r Resolution) Set(name string, platform Platform, d Declaration) {
	pkg, ok := r[name]
	if !ok {
		pkg = make(ResolvedPackage)
		r[name] = pkg
	}
	sources, ok := pkg[platform]
	if !ok {
		sources = make(ResolvedSources)
		pkg[platform] = sources
	}
	sources[d.Ecosystem] = d
}

// Get looks up a resolved declaration without creating intermediate maps.
func (r Resolution) Get(name string, platform Platform, eco Ecosystem) (Declaration, bool) {
	d, ok := r[name][platform][eco]
	return d, ok
}

// Names returns the package names in sorted order.
func (r Resolution) Names() []string {
	return slices.Sorted(maps.Keys(r))
}

// Platforms returns the platforms a package resolves on, AnyPlatform first.
func (r Resolution) Platforms(name string) []Platform {
	platforms := slices.Collect(maps.Keys(r[name]))
	SortPlatforms(platforms)
	return platforms
}

// Only returns the subset of the resolution that targets the given ecosystem.
func (r Resolution) Only(eco Ecosystem) Resolution {
	out := make(Resolution)
	for name, pkg := range r {
		for platform, sources := range pkg {
			if d, ok := sources[eco]; ok {
				out.Set(name, platform, d)
			}
		}
	}
	return out
}
