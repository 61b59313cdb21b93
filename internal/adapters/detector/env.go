// Package detector inspects the host to pick defaults for the command line.
package detector

import (
	"os"
	"runtime"

	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// LogFormat represents how log output is rendered.
type LogFormat int

const (
	// FormatAuto automatically detects the appropriate format.
	FormatAuto LogFormat = iota
	// FormatPretty renders colored, human-readable output.
	FormatPretty
	// FormatJSON renders one JSON object per log record.
	FormatJSON
)

// DetectEnvironment returns the recommended log format. Logs go to stderr,
// so that is the stream checked for a terminal. CI runs always get JSON.
func DetectEnvironment() LogFormat {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatPretty
}

// ResolveLogFormat applies the user's flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "json", or empty.
func ResolveLogFormat(autoDetected LogFormat, userFlag string) LogFormat {
	switch userFlag {
	case "pretty":
		return FormatPretty
	case "json":
		return FormatJSON
	default:
		return autoDetected
	}
}

var goPlatforms = map[[2]string]domain.Platform{
	{"linux", "amd64"}:   domain.Linux64,
	{"linux", "arm64"}:   domain.LinuxAarch64,
	{"linux", "ppc64le"}: domain.LinuxPPC64LE,
	{"darwin", "amd64"}:  domain.OSX64,
	{"darwin", "arm64"}:  domain.OSXArm64,
	{"windows", "amd64"}: domain.Win64,
}

// CurrentPlatform returns the conda platform of the running binary.
func CurrentPlatform() (domain.Platform, error) {
	return PlatformFor(runtime.GOOS, runtime.GOARCH)
}

// PlatformFor maps a GOOS/GOARCH pair to a conda platform.
func PlatformFor(goos, goarch string) (domain.Platform, error) {
	p, ok := goPlatforms[[2]string{goos, goarch}]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrUnsupportedPlatform, ""), "goos", goos)
		return "", zerr.With(err, "goarch", goarch)
	}
	return p, nil
}
