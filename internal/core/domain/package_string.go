package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// packagePattern matches "name[extras] pin:selectors". Names may contain path
// separators so local paths can be recognized and rejected by callers.
var packagePattern = regexp.MustCompile(
	`^([a-zA-Z0-9_.\-/]+(\[[a-zA-Z0-9_.,\-]+\])?)\s*(.*?)?(:([a-z0-9\s]+))?$`,
)

// PackageString is a parsed dependency entry.
type PackageString struct {
	Name     string
	Pin      string
	Selector string
}

// ParsePackageString splits s into name, pin and selector. Selector tokens
// are validated against the fixed vocabulary.
func ParsePackageString(s string) (PackageString, error) {
	m := packagePattern.FindStringSubmatch(s)
	if m == nil {
		return PackageString{}, zerr.With(zerr.Wrap(ErrInvalidPackageString, ""), "package", s)
	}
	ps := PackageString{
		Name:     strings.TrimSpace(m[1]),
		Pin:      strings.TrimSpace(m[3]),
		Selector: strings.Join(strings.Fields(m[5]), " "),
	}
	for _, tok := range strings.Fields(ps.Selector) {
		if err := ValidateSelector(tok); err != nil {
			return PackageString{}, err
		}
	}
	return ps, nil
}

// IsPathLike reports whether name looks like a filesystem path rather than a
// package name.
func IsPathLike(name string) bool {
	return strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".")
}
