package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPinning is returned when a version constraint atom cannot be parsed.
	ErrInvalidPinning = zerr.New("invalid version pinning")

	// ErrMultipleExactPinnings is returned when more than one exact ("=") pin targets the same package.
	ErrMultipleExactPinnings = zerr.New("multiple exact version pinnings")

	// ErrContradictoryPinning is returned when two version constraints cannot both be satisfied.
	ErrContradictoryPinning = zerr.New("contradictory version pinnings")

	// ErrUnsupportedSelector is returned when a platform selector token is not part of the fixed vocabulary.
	ErrUnsupportedSelector = zerr.New("unsupported platform selector")

	// ErrMalformedSelectorExpression is returned when a comment carries more than one bracketed selector group.
	ErrMalformedSelectorExpression = zerr.New("multiple bracketed selectors in comment")

	// ErrInvalidPlatform is returned when a requested platform is not one of the supported platforms.
	ErrInvalidPlatform = zerr.New("invalid platform")

	// ErrUnsupportedPlatform is returned when the host platform cannot be mapped to a supported platform.
	ErrUnsupportedPlatform = zerr.New("unsupported host platform")

	// ErrInvalidPackageString is returned when a dependency entry does not match the package grammar.
	ErrInvalidPackageString = zerr.New("invalid package string")

	// ErrLocalDependencyNotAllowed is returned when a path-like name is listed under dependencies.
	ErrLocalDependencyNotAllowed = zerr.New("local dependencies are not allowed in dependencies")

	// ErrInvalidSelectorMode is returned when the environment builder is asked for an unknown selector mode.
	ErrInvalidSelectorMode = zerr.New("invalid selector mode, expected 'sel' or 'comment'")

	// ErrNoInputFiles is returned when no dependency files were given.
	ErrNoInputFiles = zerr.New("no dependency files specified")

	// ErrConfigReadFailed is returned when a dependency file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read dependency file")

	// ErrConfigParseFailed is returned when a dependency file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse dependency file")

	// ErrConfigNotFound is returned when a directory holds neither requirements.yaml nor a configured pyproject.toml.
	ErrConfigNotFound = zerr.New("could not find requirements.yaml or pyproject.toml")

	// ErrEnvironmentWriteFailed is returned when the environment file cannot be written.
	ErrEnvironmentWriteFailed = zerr.New("failed to write environment file")

	// ErrEnvironmentMarshalFailed is returned when the environment spec cannot be serialized.
	ErrEnvironmentMarshalFailed = zerr.New("failed to marshal environment file")
)
