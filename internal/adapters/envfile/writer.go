// Package envfile writes conda environment.yaml files.
package envfile

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const filePerm = 0o644

// Writer implements ports.EnvironmentWriter.
type Writer struct {
	version string
}

// NewWriter creates a Writer that stamps version into the file header.
func NewWriter(version string) *Writer {
	return &Writer{version: version}
}

// WriteFile renders spec and writes it to path. An existing file with the
// same content is left untouched.
func (w *Writer) WriteFile(path string, spec domain.EnvironmentSpec) error {
	var buf bytes.Buffer
	if err := w.Encode(&buf, spec); err != nil {
		return err
	}
	if upToDate(path, buf.Bytes()) {
		return nil
	}
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrEnvironmentWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// upToDate reports whether path already holds data.
func upToDate(path string, data []byte) bool {
	existing, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil || len(existing) != len(data) {
		return false
	}
	return xxhash.Sum64(existing) == xxhash.Sum64(data)
}

// Encode renders spec as YAML to out, preceded by a header comment.
func (w *Writer) Encode(out io.Writer, spec domain.EnvironmentSpec) error {
	if _, err := fmt.Fprintf(out, "# This file is generated by pinmerge %s.\n# Do not edit it by hand.\n\n", w.version); err != nil {
		return zerr.Wrap(domain.ErrEnvironmentWriteFailed, err.Error())
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(document(spec)); err != nil {
		return zerr.Wrap(domain.ErrEnvironmentMarshalFailed, err.Error())
	}
	if err := enc.Close(); err != nil {
		return zerr.Wrap(domain.ErrEnvironmentMarshalFailed, err.Error())
	}
	return nil
}

// document builds the YAML tree with keys in the order conda expects. Empty
// sections are omitted.
func document(spec domain.EnvironmentSpec) *yaml.Node {
	name := spec.Name
	if name == "" {
		name = domain.DefaultEnvironmentName
	}

	root := mapping()
	appendPair(root, "name", scalar(name))

	if len(spec.Channels) > 0 {
		appendPair(root, "channels", stringSeq(spec.Channels))
	}

	deps := sequence()
	for _, e := range spec.Channel {
		deps.Content = append(deps.Content, channelNode(e))
	}
	if len(spec.Index) > 0 {
		pip := sequence()
		for _, e := range spec.Index {
			n := scalar(e.Line())
			n.LineComment = comment(e.Comment)
			pip.Content = append(pip.Content, n)
		}
		block := mapping()
		appendPair(block, "pip", pip)
		deps.Content = append(deps.Content, block)
	}
	if len(deps.Content) > 0 {
		appendPair(root, "dependencies", deps)
	}

	if len(spec.Platforms) > 0 {
		platforms := make([]string, len(spec.Platforms))
		for i, p := range spec.Platforms {
			platforms[i] = string(p)
		}
		appendPair(root, "platforms", stringSeq(platforms))
	}

	return root
}

func channelNode(e domain.ChannelEntry) *yaml.Node {
	if e.Selector != "" {
		m := mapping()
		appendPair(m, e.Selector.Sel(), scalar(e.Requirement))
		return m
	}
	n := scalar(e.Requirement)
	n.LineComment = comment(e.Comment)
	return n
}

func comment(selector string) string {
	if selector == "" {
		return ""
	}
	return "# [" + selector + "]"
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func stringSeq(values []string) *yaml.Node {
	seq := sequence()
	for _, v := range values {
		seq.Content = append(seq.Content, scalar(v))
	}
	return seq
}

func appendPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, scalar(key), value)
}
