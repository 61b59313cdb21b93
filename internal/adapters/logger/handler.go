// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/pinmerge/internal/ui/output"
	"go.trai.ch/pinmerge/internal/ui/style"
)

// levelStyle is how one record level is printed. With hang set, continuation
// lines are indented under the prefix.
type levelStyle struct {
	prefix string
	color  lipgloss.Color
	hang   bool
}

var levelStyles = map[slog.Level]levelStyle{
	slog.LevelWarn:  {prefix: style.Warning + " ", color: style.Yellow, hang: true},
	slog.LevelError: {prefix: style.Cross + " ", color: style.Red},
}

var defaultStyle = levelStyle{color: style.Slate}

// PrettyHandler is a slog.Handler printing one colored block per record.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w, or stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes the record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls, ok := levelStyles[r.Level]
	if !ok {
		ls = defaultStyle
	}

	msg := r.Message
	if ls.hang && ls.prefix != "" {
		msg = strings.ReplaceAll(msg, "\n", "\n"+strings.Repeat(" ", len([]rune(ls.prefix))))
	}
	msg = ls.prefix + msg

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrs = appendAttr(attrs, h.group, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrs = appendAttr(attrs, h.group, attr)
		return true
	})
	if len(attrs) > 0 {
		msg += " " + strings.Join(attrs, " ")
	}

	styled := h.out.String(msg).Foreground(termenv.RGBColor(string(ls.color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup returns a new Handler nesting later attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = qualify(h.group, name)
	return &next
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}

// appendAttr renders attr as key=value. Groups flatten into dotted keys and
// empty values are skipped.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	key := qualify(group, attr.Key)
	if attr.Value.Kind() == slog.KindGroup {
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, key, a)
		}
		return parts
	}
	value := formatValue(attr.Value)
	if value == "" {
		return parts
	}
	return append(parts, key+"="+value)
}

// formatValue quotes values containing spaces, so requirements such as
// "numpy >=1.20" stay readable, and joins lists with commas.
func formatValue(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		if rv := reflect.ValueOf(v.Any()); rv.Kind() == reflect.Slice {
			items := make([]string, rv.Len())
			for i := range items {
				items[i] = quote(fmt.Sprint(rv.Index(i).Interface()))
			}
			return strings.Join(items, ",")
		}
	}
	return quote(v.String())
}

func quote(s string) string {
	if strings.ContainsAny(s, " \t\n\"") {
		return strconv.Quote(s)
	}
	return s
}
