// Package pins combines version constraints declared for the same package
// into a single, minimal constraint.
package pins

import (
	"fmt"
	"slices"
	"strings"

	"deps.dev/util/semver"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Operators in match order. Two character operators come first so "<=" is
// never read as "<" followed by "=1".
var operators = []string{"<=", ">=", "<", ">", "=", "!="}

type atom struct {
	raw     string
	op      string
	version *semver.Version
}

func (a atom) lower() bool { return a.op == ">" || a.op == ">=" }
func (a atom) upper() bool { return a.op == "<" || a.op == "<=" }
func (a atom) strict() bool {
	return a.op == ">" || a.op == "<"
}

// satisfiedBy reports whether v satisfies the constraint.
func (a atom) satisfiedBy(v *semver.Version) bool {
	c := v.Compare(a.version)
	switch a.op {
	case "<":
		return c < 0
	case "<=":
		return c <= 0
	case ">":
		return c > 0
	case ">=":
		return c >= 0
	case "=":
		return c == 0
	case "!=":
		return c != 0
	}
	return false
}

// Combine merges version pins into one comma separated constraint.
//
// Empty pins are ignored and duplicates collapse. A single remaining pin is
// returned verbatim, which lets build strings and other non-range pins pass
// through. Otherwise every atom must be an operator followed by a version.
// Redundant bounds are dropped and the survivors keep their input order.
func Combine(pins []string, name string) (string, error) {
	raw := flatten(pins)
	switch len(raw) {
	case 0:
		return "", nil
	case 1:
		return raw[0], nil
	}

	atoms := make([]atom, 0, len(raw))
	for _, r := range raw {
		a, err := parseAtom(r, name)
		if err != nil {
			return "", err
		}
		if slices.ContainsFunc(atoms, func(b atom) bool { return b.raw == a.raw }) {
			continue
		}
		atoms = append(atoms, a)
	}

	var exact []atom
	for _, a := range atoms {
		if a.op == "=" {
			exact = append(exact, a)
		}
	}
	switch {
	case len(exact) > 1:
		raws := make([]string, len(exact))
		for i, a := range exact {
			raws[i] = a.raw
		}
		err := zerr.Wrap(domain.ErrMultipleExactPinnings, strings.Join(raws, ", "))
		return "", zerr.With(err, "package", name)
	case len(exact) == 1:
		return combineExact(exact[0], atoms, name)
	}

	kept := dropRedundant(atoms)
	if err := checkBounds(kept, name); err != nil {
		return "", err
	}

	out := make([]string, len(kept))
	for i, a := range kept {
		out[i] = a.raw
	}
	return strings.Join(out, ","), nil
}

func flatten(pins []string) []string {
	var out []string
	for _, pin := range pins {
		for part := range strings.SplitSeq(pin, ",") {
			part = strings.TrimSpace(part)
			if part == "" || slices.Contains(out, part) {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseAtom(s, name string) (atom, error) {
	compact := strings.Join(strings.Fields(s), "")
	for _, op := range operators {
		rest, ok := strings.CutPrefix(compact, op)
		if !ok {
			continue
		}
		if rest == "" || !isVersionStart(rest[0]) {
			break
		}
		v, err := semver.PyPI.Parse(rest)
		if err != nil {
			break
		}
		return atom{raw: compact, op: op, version: v}, nil
	}
	err := zerr.Wrap(domain.ErrInvalidPinning, fmt.Sprintf("%q", s))
	return atom{}, zerr.With(err, "package", name)
}

func isVersionStart(c byte) bool {
	return ('0' <= c && c <= '9') || c == 'v' || c == 'V'
}

func combineExact(exact atom, atoms []atom, name string) (string, error) {
	for _, a := range atoms {
		if a.raw == exact.raw {
			continue
		}
		if !a.satisfiedBy(exact.version) {
			return "", contradiction(exact, a, name)
		}
	}
	return exact.raw, nil
}

// dropRedundant keeps the tightest lower and upper bound plus every "!=" atom.
func dropRedundant(atoms []atom) []atom {
	var lo, hi *atom
	for i := range atoms {
		a := &atoms[i]
		switch {
		case a.lower():
			if lo == nil || tighterLower(*a, *lo) {
				lo = a
			}
		case a.upper():
			if hi == nil || tighterUpper(*a, *hi) {
				hi = a
			}
		}
	}

	kept := make([]atom, 0, len(atoms))
	for i := range atoms {
		a := &atoms[i]
		if (a.lower() && a != lo) || (a.upper() && a != hi) {
			continue
		}
		kept = append(kept, *a)
	}
	return kept
}

func tighterLower(a, b atom) bool {
	c := a.version.Compare(b.version)
	return c > 0 || (c == 0 && a.strict() && !b.strict())
}

func tighterUpper(a, b atom) bool {
	c := a.version.Compare(b.version)
	return c < 0 || (c == 0 && a.strict() && !b.strict())
}

// checkBounds rejects a lower bound that lies above the upper bound.
func checkBounds(atoms []atom, name string) error {
	for i, a := range atoms {
		for _, b := range atoms[i+1:] {
			lo, hi := a, b
			if a.upper() && b.lower() {
				lo, hi = b, a
			} else if !a.lower() || !b.upper() {
				continue
			}
			c := lo.version.Compare(hi.version)
			if c > 0 || (c == 0 && (lo.strict() || hi.strict())) {
				return contradiction(a, b, name)
			}
		}
	}
	return nil
}

func contradiction(a, b atom, name string) error {
	err := zerr.Wrap(domain.ErrContradictoryPinning, a.raw+" and "+b.raw)
	return zerr.With(err, "package", name)
}

// Select reduces declarations of one package to a single declaration. A lone
// pinned declaration wins, several pinned declarations get their pins
// combined, and without any pin the first declaration is kept. When the pins
// cannot be combined the first pinned declaration is returned with the error.
func Select(decls []domain.Declaration) (domain.Declaration, error) {
	if len(decls) == 0 {
		return domain.Declaration{}, nil
	}
	var pinned []domain.Declaration
	for _, d := range decls {
		if d.Pinned() {
			pinned = append(pinned, d)
		}
	}
	switch len(pinned) {
	case 0:
		return decls[0], nil
	case 1:
		return pinned[0], nil
	}

	pinList := make([]string, len(pinned))
	for i, d := range pinned {
		pinList[i] = d.Pin
	}
	first := pinned[0]
	combined, err := Combine(pinList, first.Name)
	if err != nil {
		return first, err
	}
	first.Pin = combined
	return first, nil
}
