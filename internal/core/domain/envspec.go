package domain

import "go.trai.ch/zerr"

// SelectorMode controls how platform restrictions appear in an environment file.
type SelectorMode string

const (
	// SelectorSel emits conda "sel(linux)" keys and PEP 508 markers.
	SelectorSel SelectorMode = "sel"
	// SelectorComment emits "# [selector]" line comments.
	SelectorComment SelectorMode = "comment"
)

// ParseSelectorMode validates s, defaulting to SelectorSel when empty.
func ParseSelectorMode(s string) (SelectorMode, error) {
	switch SelectorMode(s) {
	case "", SelectorSel:
		return SelectorSel, nil
	case SelectorComment:
		return SelectorComment, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidSelectorMode, ""), "mode", s)
	}
}

// ChannelEntry is one line of the conda dependencies list.
type ChannelEntry struct {
	Requirement string
	// Selector is set in sel mode when the entry applies to a single bucket.
	Selector Bucket
	// Comment is set in comment mode, e.g. "linux64".
	Comment string
}

// IndexEntry is one line of the nested pip list.
type IndexEntry struct {
	Requirement string
	// Marker is a PEP 508 environment marker, set in sel mode.
	Marker string
	// Comment is set in comment mode.
	Comment string
}

// Line renders the pip requirement with its marker appended.
func (e IndexEntry) Line() string {
	if e.Marker == "" {
		return e.Requirement
	}
	return e.Requirement + "; " + e.Marker
}

// DefaultEnvironmentName is used when neither the command line nor any
// declaration file names the environment.
const DefaultEnvironmentName = "myenv"

// EnvironmentSpec is the merged, ecosystem-split environment description.
type EnvironmentSpec struct {
	Name      string
	Channels  []string
	Platforms []Platform
	Channel   []ChannelEntry
	Index     []IndexEntry
}
