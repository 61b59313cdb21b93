package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Ecosystem names the package source a declaration targets.
type Ecosystem string

const (
	// EcosystemChannel is the conda channel ecosystem.
	EcosystemChannel Ecosystem = "conda"
	// EcosystemIndex is the pip package index ecosystem.
	EcosystemIndex Ecosystem = "pip"
)

// Ecosystems returns both ecosystems, channel first.
func Ecosystems() []Ecosystem {
	return []Ecosystem{EcosystemChannel, EcosystemIndex}
}

type restrictionKind uint8

const (
	restrictNone restrictionKind = iota
	restrictSelector
	restrictComment
)

// Restriction limits a declaration to a subset of platforms. The zero value
// applies to every requested platform.
type Restriction struct {
	kind  restrictionKind
	value string
}

// NoRestriction returns a restriction matching every requested platform.
func NoRestriction() Restriction {
	return Restriction{}
}

// BySelector restricts a declaration to the platforms matched by a whitespace
// separated selector list such as "linux64 win64". An empty list means no
// restriction.
func BySelector(selectors string) (Restriction, error) {
	tokens := strings.Fields(selectors)
	if len(tokens) == 0 {
		return NoRestriction(), nil
	}
	for _, tok := range tokens {
		if err := ValidateSelector(tok); err != nil {
			return Restriction{}, err
		}
	}
	return Restriction{kind: restrictSelector, value: strings.Join(tokens, " ")}, nil
}

// ByComment restricts a declaration using a "# [selector]" line comment.
func ByComment(comment string) (Restriction, error) {
	selectors, err := SelectorFromComment(comment)
	if err != nil {
		return Restriction{}, err
	}
	if selectors == "" {
		return NoRestriction(), nil
	}
	return Restriction{kind: restrictComment, value: selectors}, nil
}

// IsZero reports whether the restriction applies to every platform.
func (r Restriction) IsZero() bool {
	return r.kind == restrictNone
}

// Selectors returns the raw selector tokens, space separated.
func (r Restriction) Selectors() string {
	return r.value
}

// Platforms returns the concrete platforms this restriction allows. The
// boolean is false when the restriction applies to every requested platform.
func (r Restriction) Platforms() ([]Platform, bool) {
	if r.kind == restrictNone {
		return nil, false
	}
	// Tokens were validated on construction.
	platforms, _ := PlatformsFromSelectors(r.value)
	return platforms, true
}

func (r Restriction) String() string {
	switch r.kind {
	case restrictSelector:
		return ":" + r.value
	case restrictComment:
		return "# [" + r.value + "]"
	default:
		return ""
	}
}

// Declaration is a single package requirement for one ecosystem.
type Declaration struct {
	Name        string
	Ecosystem   Ecosystem
	Pin         string
	Restriction Restriction
	Identifier  string
}

// Pinned reports whether the declaration carries a version constraint.
func (d Declaration) Pinned() bool {
	return d.Pin != ""
}

// Requirement renders the declaration as "name pin". With pipStyle a single
// "=" exact pin is rewritten to "==".
func (d Declaration) Requirement(pipStyle bool) string {
	pin := d.Pin
	if pipStyle && strings.Contains(pin, "=") &&
		!strings.Contains(pin, ">=") && !strings.Contains(pin, "<=") && !strings.Contains(pin, "==") &&
		!strings.Contains(pin, "!=") {
		pin = strings.Replace(pin, "=", "==", 1)
	}
	if pin == "" {
		return d.Name
	}
	return d.Name + " " + pin
}

func (d Declaration) String() string {
	return fmt.Sprintf("%s (%s)", d.Requirement(false), d.Ecosystem)
}

// NewIdentifier derives a short stable identifier from an entry's position
// in the source files and its restriction. Both halves of a combined
// {conda, pip} entry share the same position and thus the same identifier.
func NewIdentifier(position int, restriction Restriction) string {
	platforms, _ := restriction.Platforms()
	h := xxhash.New()
	_, _ = h.WriteString(strconv.Itoa(position))
	_, _ = h.WriteString("-")
	_, _ = h.WriteString(platformKey(platforms...))
	return fmt.Sprintf("%016x", h.Sum64())[:8]
}

// Requirements maps a package name to every declaration found for it, in
// source order.
type Requirements map[string][]Declaration

// Add appends a declaration under its name.
func (r Requirements) Add(d Declaration) {
	r[d.Name] = append(r[d.Name], d)
}

// Clone returns a deep copy.
func (r Requirements) Clone() Requirements {
	out := make(Requirements, len(r))
	for name, decls := range r {
		out[name] = append([]Declaration(nil), decls...)
	}
	return out
}

// Merge appends every declaration of other, preserving order.
func (r Requirements) Merge(other Requirements) {
	for name, decls := range other {
		r[name] = append(r[name], decls...)
	}
}

// OptionalGroups maps an optional dependency group name to its requirements.
type OptionalGroups map[string]Requirements
