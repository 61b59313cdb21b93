// Package envspec turns a resolution into an environment specification split
// into channel and index dependencies.
package envspec

import (
	"slices"

	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/core/ports"
	"go.trai.ch/pinmerge/internal/engine/pins"
	"go.trai.ch/zerr"
)

// Builder creates environment specifications.
type Builder struct {
	warnings ports.WarningSink
}

// NewBuilder creates a Builder reporting bucket conflicts to sink.
func NewBuilder(sink ports.WarningSink) *Builder {
	return &Builder{warnings: sink}
}

// platformDecl pairs a declaration with the platform it resolved on.
type platformDecl struct {
	platform domain.Platform
	decl     domain.Declaration
}

// Build creates the environment specification. A channel declaration always
// wins over an index declaration for the same package and platform. With a
// single requested platform no selectors are emitted.
func (b *Builder) Build(
	res domain.Resolution,
	channels []string,
	platforms []domain.Platform,
	mode domain.SelectorMode,
) (domain.EnvironmentSpec, error) {
	if mode != domain.SelectorSel && mode != domain.SelectorComment {
		return domain.EnvironmentSpec{}, zerr.With(zerr.Wrap(domain.ErrInvalidSelectorMode, ""), "mode", string(mode))
	}

	spec := domain.EnvironmentSpec{
		Channels:  slices.Clone(channels),
		Platforms: slices.Clone(platforms),
	}
	restricted := len(platforms) != 1

	channel, index := split(res)
	seen := make(map[string]struct{})

	for _, name := range res.Names() {
		entries, ok := channel[name]
		if !ok {
			continue
		}
		if len(entries) > 1 && mode == domain.SelectorSel {
			entries = b.collapseBuckets(name, entries)
		}
		for _, e := range entries {
			entry := domain.ChannelEntry{Requirement: e.decl.Requirement(false)}
			if restricted && e.platform != domain.AnyPlatform {
				if mode == domain.SelectorSel {
					entry.Selector = domain.BucketFor(e.platform)
				} else {
					entry.Comment = domain.PrimarySelector(e.platform)
				}
			}
			spec.Channel = append(spec.Channel, entry)
			seen[e.decl.Identifier] = struct{}{}
		}
	}

	for _, name := range res.Names() {
		for _, g := range groupByDeclaration(index[name]) {
			if _, ok := seen[g.decl.Identifier]; ok {
				continue
			}
			req := g.decl.Requirement(true)
			if !restricted || slices.Equal(g.platforms, []domain.Platform{domain.AnyPlatform}) {
				spec.Index = append(spec.Index, domain.IndexEntry{Requirement: req})
				continue
			}
			if mode == domain.SelectorSel {
				spec.Index = append(spec.Index, domain.IndexEntry{
					Requirement: req,
					Marker:      domain.EnvironmentMarker(g.platforms),
				})
				continue
			}
			// Comments cannot express alternatives, so each platform gets its own line.
			// The marker keeps plain pip installs correct.
			for _, p := range g.platforms {
				spec.Index = append(spec.Index, domain.IndexEntry{
					Requirement: req,
					Marker:      domain.EnvironmentMarker([]domain.Platform{p}),
					Comment:     domain.PrimarySelector(p),
				})
			}
		}
	}
	return spec, nil
}

// split separates the resolution per ecosystem, preferring channel declarations.
// Entries are ordered by platform.
func split(res domain.Resolution) (channel, index map[string][]platformDecl) {
	channel = make(map[string][]platformDecl)
	index = make(map[string][]platformDecl)
	for _, name := range res.Names() {
		for _, p := range res.Platforms(name) {
			sources := res[name][p]
			if d, ok := sources[domain.EcosystemChannel]; ok {
				channel[name] = append(channel[name], platformDecl{platform: p, decl: d})
			} else if d, ok := sources[domain.EcosystemIndex]; ok {
				index[name] = append(index[name], platformDecl{platform: p, decl: d})
			}
		}
	}
	return channel, index
}

// collapseBuckets keeps one declaration per selector bucket, placed at the
// first platform of the bucket. Platforms that disagree are merged the way the
// resolver merges a platform: a lone pin wins and several pins are combined.
// Only pins that cannot be combined are reported, and then the first platform
// wins.
func (b *Builder) collapseBuckets(name string, entries []platformDecl) []platformDecl {
	var order []domain.Bucket
	firsts := make(map[domain.Bucket]domain.Platform)
	distinct := make(map[domain.Bucket][]domain.Declaration)

	for _, e := range entries {
		bucket := domain.BucketFor(e.platform)
		if _, ok := firsts[bucket]; !ok {
			firsts[bucket] = e.platform
			order = append(order, bucket)
		}
		if !slices.Contains(distinct[bucket], e.decl) {
			distinct[bucket] = append(distinct[bucket], e.decl)
		}
	}

	kept := make([]platformDecl, 0, len(order))
	for _, bucket := range order {
		decls := distinct[bucket]
		winner := platformDecl{platform: firsts[bucket], decl: decls[0]}
		if len(decls) > 1 {
			merged, err := pins.Select(decls)
			if err == nil {
				winner.decl = merged
			} else {
				b.warnBucket(name, bucket, winner, decls[1:], err)
			}
		}
		kept = append(kept, winner)
	}
	return kept
}

func (b *Builder) warnBucket(name string, bucket domain.Bucket, winner platformDecl, others []domain.Declaration, err error) {
	names := make([]string, len(others))
	for i, d := range others {
		names[i] = d.Requirement(false)
	}
	b.warn(domain.Warning{
		Kind:      domain.DependencyConflict,
		Package:   name,
		Platform:  winner.platform,
		Kept:      winner.decl.Requirement(false),
		Discarded: names,
		Message:   "platforms in " + bucket.Sel() + " resolve to different versions: " + err.Error(),
	})
}

type declGroup struct {
	decl      domain.Declaration
	platforms []domain.Platform
}

// groupByDeclaration merges platforms that resolved to the same declaration,
// keeping first-seen order.
func groupByDeclaration(entries []platformDecl) []declGroup {
	var groups []declGroup
	for _, e := range entries {
		i := slices.IndexFunc(groups, func(g declGroup) bool { return g.decl == e.decl })
		if i < 0 {
			groups = append(groups, declGroup{decl: e.decl})
			i = len(groups) - 1
		}
		groups[i].platforms = append(groups[i].platforms, e.platform)
	}
	return groups
}

func (b *Builder) warn(w domain.Warning) {
	if b.warnings != nil {
		b.warnings.Warn(w)
	}
}
