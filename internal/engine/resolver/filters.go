package resolver

import (
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Filters adjusts declarations before resolution.
type Filters struct {
	// IgnorePins lists packages whose pins are dropped.
	IgnorePins []string
	// OverwritePins holds package strings such as "numpy >=2" whose pin
	// replaces every declared pin of that package.
	OverwritePins []string
	// SkipDependencies lists packages removed entirely.
	SkipDependencies []string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return len(f.IgnorePins) == 0 && len(f.OverwritePins) == 0 && len(f.SkipDependencies) == 0
}

// ApplyFilters returns a filtered copy of reqs. Skipping takes precedence
// over overwriting, which takes precedence over ignoring.
func ApplyFilters(reqs domain.Requirements, f Filters) (domain.Requirements, error) {
	if f.IsZero() {
		return reqs.Clone(), nil
	}
	overwrite := make(map[string]string, len(f.OverwritePins))
	for _, s := range f.OverwritePins {
		ps, err := domain.ParsePackageString(s)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "invalid --overwrite-pin value"), "value", s)
		}
		overwrite[ps.Name] = ps.Pin
	}
	skip := toSet(f.SkipDependencies)
	ignore := toSet(f.IgnorePins)

	out := make(domain.Requirements, len(reqs))
	for name, decls := range reqs {
		if _, ok := skip[name]; ok {
			continue
		}
		pin, overwritten := overwrite[name]
		_, ignored := ignore[name]
		filtered := make([]domain.Declaration, len(decls))
		for i, d := range decls {
			switch {
			case overwritten:
				d.Pin = pin
			case ignored:
				d.Pin = ""
			}
			filtered[i] = d
		}
		out[name] = filtered
	}
	return out, nil
}

// ApplyFiltersToGroups applies f to every optional group.
func ApplyFiltersToGroups(groups domain.OptionalGroups, f Filters) (domain.OptionalGroups, error) {
	out := make(domain.OptionalGroups, len(groups))
	for name, reqs := range groups {
		filtered, err := ApplyFilters(reqs, f)
		if err != nil {
			return nil, err
		}
		out[name] = filtered
	}
	return out, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
