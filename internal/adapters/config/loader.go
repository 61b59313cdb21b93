// Package config reads dependency declaration files into domain manifests.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader implements ports.ManifestLoader for requirements.yaml and
// pyproject.toml files.
type Loader struct {
	fs     FileSystem
	logger ports.Logger
}

// NewLoader creates a Loader reading from the OS filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return NewLoaderWithFS(NewOSFS(), logger)
}

// NewLoaderWithFS creates a Loader reading from fsys.
func NewLoaderWithFS(fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{fs: fsys, logger: logger}
}

// Load reads the declaration file named by arg. The argument may be a file or
// a directory and may carry an extras suffix such as "pkg[test,docs]".
func (l *Loader) Load(ctx context.Context, arg string) (*domain.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, extras := domain.SplitExtras(arg)
	path, err := l.locate(target)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var doc document
	if filepath.Ext(path) == ".toml" {
		doc, err = decodeTOML(data)
	} else {
		doc, err = decodeYAML(data)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load declarations"), "path", path)
	}

	m, err := l.buildManifest(path, doc, extras)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load declarations"), "path", path)
	}
	return m, nil
}

// locate resolves a directory to the declaration file inside it.
func (l *Loader) locate(target string) (string, error) {
	info, err := l.fs.Stat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, ""), "path", target)
		}
		return "", zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", target)
	}
	if !info.IsDir() {
		return target, nil
	}
	for _, name := range []string{RequirementsFileName, PyprojectFileName} {
		candidate := filepath.Join(target, name)
		if _, err := l.fs.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", zerr.With(zerr.Wrap(domain.ErrConfigNotFound, ""), "path", target)
}

func (l *Loader) buildManifest(path string, doc document, extras []string) (*domain.Manifest, error) {
	m := &domain.Manifest{
		Path:     path,
		Name:     doc.Name,
		Channels: doc.Channels,
		Extras:   extras,
	}

	for _, s := range doc.Platforms {
		p, err := domain.ParsePlatform(s)
		if err != nil {
			return nil, err
		}
		m.Platforms = append(m.Platforms, p)
	}

	if len(doc.Local) > 0 {
		l.logger.Warn(fmt.Sprintf("%s: %d local_dependencies ignored, only the listed files are merged",
			path, len(doc.Local)))
	}

	deps, err := toEntries(doc.Dependencies)
	if err != nil {
		return nil, err
	}
	m.Dependencies = deps

	known := make(map[string]bool, len(doc.Optional))
	for _, g := range doc.Optional {
		entries, err := toEntries(g.Entries)
		if err != nil {
			return nil, zerr.With(err, "group", g.Name)
		}
		m.Optional = append(m.Optional, domain.OptionalGroup{Name: g.Name, Entries: entries})
		known[g.Name] = true
	}
	for _, e := range extras {
		if e != domain.AllExtras && !known[e] {
			l.logger.Warn(fmt.Sprintf("%s: optional dependency group %q not found", path, e))
		}
	}

	return m, nil
}

func toEntries(raw []rawEntry) ([]domain.Entry, error) {
	entries := make([]domain.Entry, 0, len(raw))
	for _, r := range raw {
		e, err := toEntry(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func toEntry(raw rawEntry) (domain.Entry, error) {
	var e domain.Entry
	for _, r := range raw {
		ps, err := domain.ParsePackageString(r.Value)
		if err != nil {
			return domain.Entry{}, err
		}
		if domain.IsPathLike(ps.Name) {
			return domain.Entry{}, zerr.With(zerr.Wrap(domain.ErrLocalDependencyNotAllowed, ""), "package", ps.Name)
		}
		restriction, err := restrictionFor(ps.Selector, r.Comment)
		if err != nil {
			return domain.Entry{}, zerr.With(err, "package", ps.Name)
		}

		ecosystems := domain.Ecosystems()
		if r.Ecosystem != "" {
			ecosystems = []domain.Ecosystem{r.Ecosystem}
		}
		for _, eco := range ecosystems {
			e.Declarations = append(e.Declarations, domain.Declaration{
				Name:        ps.Name,
				Ecosystem:   eco,
				Pin:         ps.Pin,
				Restriction: restriction,
			})
		}
	}
	return e, nil
}

// restrictionFor prefers an inline ":selector" over a "# [selector]" comment.
func restrictionFor(selector, comment string) (domain.Restriction, error) {
	if selector != "" {
		return domain.BySelector(selector)
	}
	return domain.ByComment(comment)
}
