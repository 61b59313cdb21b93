// Package resolver reduces every package's declarations to at most one
// declaration per platform and ecosystem.
package resolver

import (
	"maps"
	"slices"

	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/core/ports"
	"go.trai.ch/pinmerge/internal/engine/pins"
	"go.trai.ch/zerr"
)

// Resolver resolves conflicting declarations.
type Resolver struct {
	warnings ports.WarningSink
}

// New creates a Resolver reporting automatic conflict resolutions to sink.
func New(sink ports.WarningSink) *Resolver {
	return &Resolver{warnings: sink}
}

// buckets holds the declarations of one package, keyed by platform and ecosystem.
type buckets map[domain.Platform]map[domain.Ecosystem][]domain.Declaration

func (b buckets) add(p domain.Platform, d domain.Declaration) {
	if b[p] == nil {
		b[p] = make(map[domain.Ecosystem][]domain.Declaration)
	}
	b[p][d.Ecosystem] = append(b[p][d.Ecosystem], d)
}

// Resolve resolves reqs, plus every optional group, for the requested
// platforms. An empty platform list allows every supported platform.
// The inputs are never modified.
func (r *Resolver) Resolve(
	reqs domain.Requirements,
	platforms []domain.Platform,
	optional domain.OptionalGroups,
) (domain.Resolution, error) {
	if err := domain.ValidatePlatforms(platforms); err != nil {
		return nil, zerr.Wrap(err, "failed to resolve requirements")
	}

	all := reqs.Clone()
	for _, group := range slices.Sorted(maps.Keys(optional)) {
		all.Merge(optional[group])
	}

	allowed := platforms
	if len(allowed) == 0 {
		allowed = domain.AllPlatforms()
	}

	res := make(domain.Resolution)
	for _, name := range slices.Sorted(maps.Keys(all)) {
		b := group(all[name])
		expand(b, allowed)
		for _, p := range sortedPlatforms(b) {
			sources := make(domain.ResolvedSources)
			for _, eco := range domain.Ecosystems() {
				if decls := b[p][eco]; len(decls) > 0 {
					sources[eco] = r.reduce(name, p, decls)
				}
			}
			for _, d := range r.crossEcosystem(name, p, sources) {
				res.Set(name, p, d)
			}
		}
	}
	return res, nil
}

func group(decls []domain.Declaration) buckets {
	b := make(buckets)
	for _, d := range decls {
		platforms, restricted := d.Restriction.Platforms()
		if !restricted {
			b.add(domain.AnyPlatform, d)
			continue
		}
		for _, p := range platforms {
			b.add(p, d)
		}
	}
	return b
}

// expand broadcasts unrestricted declarations to every allowed platform once
// a package has platform-specific declarations. An unrestricted declaration
// only fills ecosystem buckets that are still empty. Platforms outside the
// allowed set are dropped.
func expand(b buckets, allowed []domain.Platform) {
	if unrestricted, ok := b[domain.AnyPlatform]; ok && len(b) > 1 {
		delete(b, domain.AnyPlatform)
		for _, p := range allowed {
			specific := b[p]
			for eco, decls := range unrestricted {
				if len(specific[eco]) > 0 {
					continue
				}
				for _, d := range decls {
					b.add(p, d)
				}
			}
		}
	}
	for p := range b {
		if p != domain.AnyPlatform && !slices.Contains(allowed, p) {
			delete(b, p)
		}
	}
}

func sortedPlatforms(b buckets) []domain.Platform {
	platforms := slices.Collect(maps.Keys(b))
	domain.SortPlatforms(platforms)
	return platforms
}

// reduce collapses the declarations of one platform and ecosystem.
func (r *Resolver) reduce(name string, p domain.Platform, decls []domain.Declaration) domain.Declaration {
	kept, err := pins.Select(decls)
	if err != nil {
		var discarded []string
		for _, d := range decls {
			if d.Pinned() && d != kept {
				discarded = append(discarded, d.Requirement(false))
			}
		}
		r.warn(domain.Warning{
			Kind:      domain.PlatformConflict,
			Package:   name,
			Platform:  p,
			Kept:      kept.Requirement(false),
			Discarded: discarded,
			Message:   err.Error(),
		})
	}
	return kept
}

// crossEcosystem settles a package available from both ecosystems on one platform.
func (r *Resolver) crossEcosystem(name string, p domain.Platform, sources domain.ResolvedSources) []domain.Declaration {
	channel, hasChannel := sources[domain.EcosystemChannel]
	index, hasIndex := sources[domain.EcosystemIndex]
	switch {
	case !hasChannel:
		return []domain.Declaration{index}
	case !hasIndex:
		return []domain.Declaration{channel}
	case channel.Pinned() && !index.Pinned():
		return []domain.Declaration{channel}
	case index.Pinned() && !channel.Pinned():
		return []domain.Declaration{index}
	case channel.Pin != index.Pin:
		r.warn(domain.Warning{
			Kind:     domain.VersionPinningConflict,
			Package:  name,
			Platform: p,
			Message:  "conda '" + channel.Pin + "', pip '" + index.Pin + "'",
		})
	}
	return []domain.Declaration{channel, index}
}

func (r *Resolver) warn(w domain.Warning) {
	if r.warnings != nil {
		r.warnings.Warn(w)
	}
}
