package ports

import "go.trai.ch/pinmerge/internal/core/domain"

// WarningSink receives conflicts that were resolved automatically.
//
//go:generate mockgen -source=warning_sink.go -destination=mocks/mock_warning_sink.go -package=mocks
type WarningSink interface {
	Warn(w domain.Warning)
}
