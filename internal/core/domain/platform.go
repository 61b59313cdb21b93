package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Platform is a concrete conda platform identifier.
type Platform string

// Supported platforms, in enumeration order.
const (
	Linux64      Platform = "linux-64"
	LinuxAarch64 Platform = "linux-aarch64"
	LinuxPPC64LE Platform = "linux-ppc64le"
	OSX64        Platform = "osx-64"
	OSXArm64     Platform = "osx-arm64"
	Win64        Platform = "win-64"

	// AnyPlatform is the key used for declarations that apply to every requested platform.
	AnyPlatform Platform = ""
)

// Bucket is the coarse selector granularity an environment file can express.
type Bucket string

const (
	// BucketLinux groups all Linux platforms (unix-linux).
	BucketLinux Bucket = "linux"
	// BucketOSX groups all macOS platforms (unix-osx).
	BucketOSX Bucket = "osx"
	// BucketWin groups all Windows platforms.
	BucketWin Bucket = "win"
)

// Sel returns the conda "sel(...)" key for the bucket.
func (b Bucket) Sel() string {
	return "sel(" + string(b) + ")"
}

var allPlatforms = []Platform{Linux64, LinuxAarch64, LinuxPPC64LE, OSX64, OSXArm64, Win64}

// platformSelectors lists the selectors each platform satisfies.
// The first selector of each list is the only one unique to that platform.
var platformSelectors = map[Platform][]string{
	Linux64:      {"linux64", "unix", "linux"},
	LinuxAarch64: {"aarch64", "unix", "linux"},
	LinuxPPC64LE: {"ppc64le", "unix", "linux"},
	OSX64:        {"osx64", "osx", "macos", "unix"},
	OSXArm64:     {"arm64", "osx", "macos", "unix"},
	Win64:        {"win64", "win"},
}

var platformBuckets = map[Platform]Bucket{
	Linux64:      BucketLinux,
	LinuxAarch64: BucketLinux,
	LinuxPPC64LE: BucketLinux,
	OSX64:        BucketOSX,
	OSXArm64:     BucketOSX,
	Win64:        BucketWin,
}

// selectorVocabulary is the fixed set of selector tokens, in documentation order.
var selectorVocabulary = []string{
	"linux64", "aarch64", "ppc64le", "osx64", "arm64", "win64", "win", "unix", "linux", "osx", "macos",
}

var selectorPlatforms = buildSelectorPlatforms()

func buildSelectorPlatforms() map[string][]Platform {
	m := make(map[string][]Platform, len(selectorVocabulary))
	for _, p := range allPlatforms {
		for _, s := range platformSelectors[p] {
			m[s] = append(m[s], p)
		}
	}
	return m
}

// AllPlatforms returns every supported platform in enumeration order.
func AllPlatforms() []Platform {
	return slices.Clone(allPlatforms)
}

// ParsePlatform validates s as a supported platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if !slices.Contains(allPlatforms, p) {
		err := zerr.With(zerr.Wrap(ErrInvalidPlatform, ""), "platform", s)
		return "", zerr.With(err, "supported", platformStrings(allPlatforms))
	}
	return p, nil
}

// ValidatePlatforms checks that every platform is supported.
func ValidatePlatforms(platforms []Platform) error {
	for _, p := range platforms {
		if _, err := ParsePlatform(string(p)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSelector checks that selector is part of the fixed vocabulary.
func ValidateSelector(selector string) error {
	if _, ok := selectorPlatforms[selector]; !ok {
		err := zerr.Wrap(ErrUnsupportedSelector, "`"+selector+"`")
		return zerr.With(err, "supported", strings.Join(selectorVocabulary, " "))
	}
	return nil
}

// PlatformsFor returns the platforms matched by a single selector token.
func PlatformsFor(selector string) ([]Platform, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	return slices.Clone(selectorPlatforms[selector]), nil
}

// PlatformsFromSelectors returns the sorted union of platforms matched by a
// whitespace separated list of selectors, e.g. "linux64 win64".
func PlatformsFromSelectors(selectors string) ([]Platform, error) {
	var out []Platform
	for _, s := range strings.Fields(selectors) {
		platforms, err := PlatformsFor(s)
		if err != nil {
			return nil, err
		}
		for _, p := range platforms {
			if !slices.Contains(out, p) {
				out = append(out, p)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// BucketFor returns the coarse selector bucket of a platform.
func BucketFor(p Platform) Bucket {
	return platformBuckets[p]
}

// PrimarySelector returns the selector unique to p (e.g. "linux64" for linux-64).
func PrimarySelector(p Platform) string {
	selectors := platformSelectors[p]
	if len(selectors) == 0 {
		return ""
	}
	return selectors[0]
}

// PlatformIndex returns the position of p in the platform enumeration, or -1.
func PlatformIndex(p Platform) int {
	return slices.Index(allPlatforms, p)
}

// SortPlatforms orders platforms by enumeration order with AnyPlatform first.
func SortPlatforms(platforms []Platform) {
	slices.SortFunc(platforms, func(a, b Platform) int {
		return PlatformIndex(a) - PlatformIndex(b)
	})
}

func platformStrings(platforms []Platform) string {
	parts := make([]string, len(platforms))
	for i, p := range platforms {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
