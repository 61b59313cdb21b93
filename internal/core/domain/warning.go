package domain

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal resolution problem.
type WarningKind string

const (
	// PlatformConflict is emitted when pins on one platform cannot be combined.
	PlatformConflict WarningKind = "platform-conflict"
	// VersionPinningConflict is emitted when the two ecosystems pin a package differently.
	VersionPinningConflict WarningKind = "version-pinning-conflict"
	// DependencyConflict is emitted when platforms sharing a selector bucket disagree.
	DependencyConflict WarningKind = "dependency-conflict"
)

// Warning describes a conflict that was resolved automatically.
type Warning struct {
	Kind      WarningKind
	Package   string
	Platform  Platform
	Kept      string
	Discarded []string
	Message   string
}

// PlatformLabel renders the platform for humans.
func (w Warning) PlatformLabel() string {
	if w.Platform == AnyPlatform {
		return "all platforms"
	}
	return string(w.Platform)
}

func (w Warning) String() string {
	var b strings.Builder
	switch w.Kind {
	case PlatformConflict:
		fmt.Fprintf(&b, "Version conflict for %q on %s: %s", w.Package, w.PlatformLabel(), w.Message)
		fmt.Fprintf(&b, "\nKeeping %q, discarding %s.", w.Kept, quoteAll(w.Discarded))
	case VersionPinningConflict:
		fmt.Fprintf(&b, "Version pinning conflict for %q on %s: conda and pip pins differ (%s).",
			w.Package, w.PlatformLabel(), w.Message)
		b.WriteString("\nKeeping both.")
	case DependencyConflict:
		fmt.Fprintf(&b, "Dependency conflict for %q: %s", w.Package, w.Message)
		fmt.Fprintf(&b, "\nKeeping %q, discarding %s.", w.Kept, quoteAll(w.Discarded))
	default:
		b.WriteString(w.Message)
	}
	return b.String()
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}
