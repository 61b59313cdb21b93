package domain

import (
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

var (
	multipleSelectorGroups = regexp.MustCompile(`#.*\].*\[`)
	selectorGroup          = regexp.MustCompile(`#\s*\[([^\[\]]+)\]`)
)

// SelectorFromComment extracts the selector tokens from a line comment such as
// "# [linux64 unix]". It returns an empty string when the comment carries no
// bracketed group.
func SelectorFromComment(comment string) (string, error) {
	if comment == "" {
		return "", nil
	}
	if multipleSelectorGroups.MatchString(comment) {
		return "", zerr.With(zerr.Wrap(ErrMalformedSelectorExpression, ""), "comment", comment)
	}
	m := selectorGroup.FindStringSubmatch(comment)
	if m == nil {
		return "", nil
	}
	tokens := strings.Fields(m[1])
	for _, tok := range tokens {
		if err := ValidateSelector(tok); err != nil {
			return "", err
		}
	}
	return strings.Join(tokens, " "), nil
}

var platformMarkers = map[Platform]string{
	Linux64:      "sys_platform == 'linux' and platform_machine == 'x86_64'",
	LinuxAarch64: "sys_platform == 'linux' and platform_machine == 'aarch64'",
	LinuxPPC64LE: "sys_platform == 'linux' and platform_machine == 'ppc64le'",
	OSX64:        "sys_platform == 'darwin' and platform_machine == 'x86_64'",
	OSXArm64:     "sys_platform == 'darwin' and platform_machine == 'arm64'",
	Win64:        "sys_platform == 'win32' and platform_machine == 'AMD64'",
}

// groupMarkers maps sorted platform tuples to a shorter combined marker.
var groupMarkers = map[string]string{
	platformKey(Linux64, LinuxAarch64, LinuxPPC64LE): "sys_platform == 'linux'",
	platformKey(OSX64, OSXArm64):                     "sys_platform == 'darwin'",
	platformKey(Linux64, LinuxAarch64, LinuxPPC64LE, OSX64, OSXArm64): "sys_platform == 'linux' or sys_platform == 'darwin'",
}

// EnvironmentMarker returns the PEP 508 environment marker matching the given
// platforms. Grouped platform sets use their combined marker; otherwise the
// per-platform markers are joined with " or ". Unknown platforms are dropped.
func EnvironmentMarker(platforms []Platform) string {
	sorted := slices.Clone(platforms)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if m, ok := groupMarkers[platformKey(sorted...)]; ok {
		return m
	}
	markers := make([]string, 0, len(sorted))
	for _, p := range sorted {
		if m, ok := platformMarkers[p]; ok {
			markers = append(markers, m)
		}
	}
	return strings.Join(markers, " or ")
}

func platformKey(platforms ...Platform) string {
	parts := make([]string, len(platforms))
	for i, p := range platforms {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}
