package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/core/ports"
	"go.trai.ch/pinmerge/internal/ui/output"
	"go.trai.ch/pinmerge/internal/ui/style"
)

// WarningSink reports resolution warnings through a ports.Logger.
type WarningSink struct {
	log ports.Logger
}

// NewWarningSink creates a sink that forwards warnings to log.
func NewWarningSink(log ports.Logger) *WarningSink {
	return &WarningSink{log: log}
}

// Warn implements ports.WarningSink.
func (s *WarningSink) Warn(w domain.Warning) {
	if l, ok := s.log.(*Logger); ok && l.isJSON() {
		l.logAttrs(string(w.Kind),
			"package", w.Package,
			"platform", w.PlatformLabel(),
			"kept", w.Kept,
			"discarded", w.Discarded,
			"detail", w.Message,
		)
		return
	}

	title, body, _ := strings.Cut(w.String(), "\n")
	s.log.Warn(style.WarningBox(s.renderer(), title, body))
}

// renderer targets the logger's own writer so the box matches its color profile.
func (s *WarningSink) renderer() *lipgloss.Renderer {
	var w io.Writer = os.Stderr
	if l, ok := s.log.(*Logger); ok {
		w = l.writer()
	}
	return output.NewRenderer(w)
}
