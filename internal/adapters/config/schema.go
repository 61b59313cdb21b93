package config

import "go.trai.ch/pinmerge/internal/core/domain"

const (
	// RequirementsFileName is the YAML declaration file looked up in directories.
	RequirementsFileName = "requirements.yaml"
	// PyprojectFileName is the TOML declaration file looked up in directories.
	PyprojectFileName = "pyproject.toml"
)

// Keys shared by requirements.yaml and the [tool.pinmerge] table.
const (
	keyName                 = "name"
	keyChannels             = "channels"
	keyPlatforms            = "platforms"
	keyDependencies         = "dependencies"
	keyOptionalDependencies = "optional_dependencies"
	keyLocalDependencies    = "local_dependencies"
)

// document is the format-independent shape of a declaration file.
type document struct {
	Name         string
	Channels     []string
	Platforms    []string
	Dependencies []rawEntry
	Optional     []rawGroup
	Local        []string
}

// rawEntry is one list item before package strings are parsed.
type rawEntry []rawDeclaration

// rawDeclaration is one package string. An empty ecosystem targets both.
type rawDeclaration struct {
	Ecosystem domain.Ecosystem
	Value     string
	Comment   string
}

type rawGroup struct {
	Name    string
	Entries []rawEntry
}

// pyproject mirrors the part of pyproject.toml read by the loader.
type pyproject struct {
	Tool struct {
		Pinmerge *pyprojectSection `toml:"pinmerge"`
	} `toml:"tool"`
}

type pyprojectSection struct {
	Name                 string           `toml:"name"`
	Channels             []string         `toml:"channels"`
	Platforms            []string         `toml:"platforms"`
	Dependencies         []any            `toml:"dependencies"`
	OptionalDependencies map[string][]any `toml:"optional_dependencies"`
	LocalDependencies    []string         `toml:"local_dependencies"`
}
