package ports

import (
	"io"

	"go.trai.ch/pinmerge/internal/core/domain"
)

// EnvironmentWriter defines the interface for emitting a conda environment file.
//
//go:generate mockgen -source=environment_writer.go -destination=mocks/mock_environment_writer.go -package=mocks
type EnvironmentWriter interface {
	// WriteFile writes the environment to path, creating or truncating it.
	WriteFile(path string, spec domain.EnvironmentSpec) error

	// Encode writes the environment to w.
	Encode(w io.Writer, spec domain.EnvironmentSpec) error
}
