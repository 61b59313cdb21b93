package domain

import (
	"slices"
	"strings"
)

// AllExtras selects every optional dependency group of a manifest.
const AllExtras = "*"

// Entry is a single item of a dependency list. A plain string item yields a
// declaration for each ecosystem; a {conda, pip} item yields one per key.
type Entry struct {
	Declarations []Declaration
}

// OptionalGroup is a named optional dependency list.
type OptionalGroup struct {
	Name    string
	Entries []Entry
}

// Manifest is the parsed content of one dependency file. Declarations carry
// no identifier yet; Collect assigns them across all manifests.
type Manifest struct {
	Path         string
	Name         string
	Channels     []string
	Platforms    []Platform
	Dependencies []Entry
	Optional     []OptionalGroup
	// Extras lists the optional groups to include. AllExtras selects every group.
	Extras []string
}

// Selects reports whether the optional group should be included.
func (m *Manifest) Selects(group string) bool {
	return slices.Contains(m.Extras, AllExtras) || slices.Contains(m.Extras, group)
}

// SplitExtras separates a "path[extra1,extra2]" argument into the path and
// the requested extras.
func SplitExtras(arg string) (string, []string) {
	if !strings.HasSuffix(arg, "]") {
		return arg, nil
	}
	i := strings.LastIndex(arg, "[")
	if i <= 0 {
		return arg, nil
	}
	var extras []string
	for e := range strings.SplitSeq(arg[i+1:len(arg)-1], ",") {
		if e = strings.TrimSpace(e); e != "" {
			extras = append(extras, e)
		}
	}
	return arg[:i], extras
}

// Collected is the union of several manifests.
type Collected struct {
	Name         string
	Channels     []string
	Platforms    []Platform
	Requirements Requirements
	Optional     OptionalGroups
}

// Collect merges manifests in order. Each entry gets a sequential position
// that, together with its restriction, forms the declaration identifier, so
// both halves of a {conda, pip} entry share it. Channels and platforms are
// deduplicated and sorted; the first non-empty name wins.
func Collect(manifests []*Manifest) Collected {
	out := Collected{
		Requirements: make(Requirements),
		Optional:     make(OptionalGroups),
	}
	position := -1
	add := func(reqs Requirements, entries []Entry) {
		for _, e := range entries {
			position++
			for _, d := range e.Declarations {
				d.Identifier = NewIdentifier(position, d.Restriction)
				reqs.Add(d)
			}
		}
	}

	for _, m := range manifests {
		if out.Name == "" {
			out.Name = m.Name
		}
		for _, c := range m.Channels {
			if !slices.Contains(out.Channels, c) {
				out.Channels = append(out.Channels, c)
			}
		}
		for _, p := range m.Platforms {
			if !slices.Contains(out.Platforms, p) {
				out.Platforms = append(out.Platforms, p)
			}
		}
		add(out.Requirements, m.Dependencies)
		for _, g := range m.Optional {
			if !m.Selects(g.Name) {
				continue
			}
			reqs, ok := out.Optional[g.Name]
			if !ok {
				reqs = make(Requirements)
				out.Optional[g.Name] = reqs
			}
			add(reqs, g.Entries)
		}
	}
	slices.Sort(out.Channels)
	slices.Sort(out.Platforms)
	return out
}
