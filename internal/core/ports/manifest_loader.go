package ports

import (
	"context"

	"go.trai.ch/pinmerge/internal/core/domain"
)

// ManifestLoader defines the interface for reading dependency files.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load parses the dependency file at path. A directory is searched for
	// requirements.yaml first and pyproject.toml second. A trailing
	// "[extra1,extra2]" selects optional dependency groups.
	Load(ctx context.Context, path string) (*domain.Manifest, error)
}
