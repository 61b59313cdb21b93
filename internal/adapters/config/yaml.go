package config

import (
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// decodeYAML walks the node tree so "# [selector]" line comments survive.
func decodeYAML(data []byte) (document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return document{}, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}
	if len(root.Content) == 0 {
		return document{}, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return document{}, parseError(top, "top level must be a mapping")
	}

	var doc document
	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i], top.Content[i+1]
		var err error
		switch key.Value {
		case keyName:
			err = decodeNode(val, &doc.Name)
		case keyChannels:
			err = decodeNode(val, &doc.Channels)
		case keyPlatforms:
			err = decodeNode(val, &doc.Platforms)
		case keyLocalDependencies:
			err = decodeNode(val, &doc.Local)
		case keyDependencies:
			doc.Dependencies, err = yamlEntries(val)
		case keyOptionalDependencies:
			doc.Optional, err = yamlGroups(val)
		}
		if err != nil {
			return document{}, zerr.With(err, "key", key.Value)
		}
	}
	return doc, nil
}

func yamlGroups(node *yaml.Node) ([]rawGroup, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, parseError(node, "optional_dependencies must be a mapping")
	}
	groups := make([]rawGroup, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries, err := yamlEntries(node.Content[i+1])
		if err != nil {
			return nil, zerr.With(err, "group", node.Content[i].Value)
		}
		groups = append(groups, rawGroup{Name: node.Content[i].Value, Entries: entries})
	}
	return groups, nil
}

func yamlEntries(node *yaml.Node) ([]rawEntry, error) {
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, parseError(node, "dependencies must be a list")
	}

	entries := make([]rawEntry, 0, len(node.Content))
	for _, item := range node.Content {
		switch item.Kind {
		case yaml.ScalarNode:
			entries = append(entries, rawEntry{{Value: item.Value, Comment: item.LineComment}})
		case yaml.MappingNode:
			entry, err := yamlMappingEntry(item)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		default:
			return nil, parseError(item, "dependency must be a string or a {conda, pip} mapping")
		}
	}
	return entries, nil
}

// yamlMappingEntry reads a {conda: ..., pip: ...} item. Each key takes the
// comment on its own line, falling back to one on the whole mapping.
func yamlMappingEntry(item *yaml.Node) (rawEntry, error) {
	var entry rawEntry
	for i := 0; i+1 < len(item.Content); i += 2 {
		key, val := item.Content[i], item.Content[i+1]
		eco := domain.Ecosystem(key.Value)
		if eco != domain.EcosystemChannel && eco != domain.EcosystemIndex {
			return nil, zerr.With(parseError(key, "unknown dependency key"), "key", key.Value)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, parseError(val, "dependency must be a string")
		}
		entry = append(entry, rawDeclaration{
			Ecosystem: eco,
			Value:     val.Value,
			Comment:   firstNonEmpty(val.LineComment, key.LineComment, item.LineComment),
		})
	}
	return entry, nil
}

func decodeNode(node *yaml.Node, out any) error {
	if err := node.Decode(out); err != nil {
		return parseError(node, err.Error())
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}

func parseError(node *yaml.Node, msg string) error {
	return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, msg), "line", node.Line)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
