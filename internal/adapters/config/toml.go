package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
)

// decodeTOML reads the [tool.pinmerge] table of a pyproject.toml. Selectors
// can only be given inline since TOML comments are not preserved.
func decodeTOML(data []byte) (document, error) {
	var p pyproject
	if err := toml.Unmarshal(data, &p); err != nil {
		return document{}, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}
	section := p.Tool.Pinmerge
	if section == nil {
		return document{}, zerr.Wrap(domain.ErrConfigParseFailed, "missing [tool.pinmerge] table")
	}

	doc := document{
		Name:      section.Name,
		Channels:  section.Channels,
		Platforms: section.Platforms,
		Local:     section.LocalDependencies,
	}

	var err error
	if doc.Dependencies, err = tomlEntries(section.Dependencies); err != nil {
		return document{}, err
	}
	for _, name := range slices.Sorted(maps.Keys(section.OptionalDependencies)) {
		entries, err := tomlEntries(section.OptionalDependencies[name])
		if err != nil {
			return document{}, zerr.With(err, "group", name)
		}
		doc.Optional = append(doc.Optional, rawGroup{Name: name, Entries: entries})
	}
	return doc, nil
}

func tomlEntries(items []any) ([]rawEntry, error) {
	entries := make([]rawEntry, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			entries = append(entries, rawEntry{{Value: v}})
		case map[string]any:
			entry, err := tomlTableEntry(v)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		default:
			return nil, zerr.Wrap(domain.ErrConfigParseFailed,
				fmt.Sprintf("dependency must be a string or a {conda, pip} table, got %T", item))
		}
	}
	return entries, nil
}

func tomlTableEntry(table map[string]any) (rawEntry, error) {
	for key := range table {
		if eco := domain.Ecosystem(key); eco != domain.EcosystemChannel && eco != domain.EcosystemIndex {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "unknown dependency key"), "key", key)
		}
	}
	var entry rawEntry
	for _, eco := range domain.Ecosystems() {
		raw, ok := table[string(eco)]
		if !ok {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, "dependency must be a string"), "key", eco)
		}
		entry = append(entry, rawDeclaration{Ecosystem: eco, Value: s})
	}
	return entry, nil
}
