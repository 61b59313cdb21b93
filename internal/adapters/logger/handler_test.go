package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pinmerge/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		msg   string
		want  string
	}{
		{name: "info", level: slog.LevelInfo, msg: "information", want: "information\n"},
		{name: "warn", level: slog.LevelWarn, msg: "careful", want: "! careful\n"},
		{name: "error", level: slog.LevelError, msg: "broken", want: "✗ broken\n"},
		{name: "debug filtered", level: slog.LevelDebug, msg: "hidden", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrettyHandler_AttrsAndGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil)
	slog.New(h).With("package", "numpy").Info("combined", "pin", ">=1.20,<2")
	slog.New(h).WithGroup("pin").Info("combined", "value", "<2")

	assert.Equal(t, "combined package=numpy pin=>=1.20,<2\ncombined pin.value=<2\n", buf.String())
}

func TestPrettyHandler_WarningContinuationLines(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewPrettyHandler(buf, nil)).Warn("╭──╮\n│ x │\n╰──╯")

	assert.Equal(t, "! ╭──╮\n  │ x │\n  ╰──╯\n", buf.String())
}

func TestPrettyHandler_RequirementValues(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewPrettyHandler(buf, nil)).Info("dependency conflict",
		"kept", "foo >1",
		"discarded", []string{"foo <1", "foo"},
		"platform", "",
	)

	assert.Equal(t, `dependency conflict kept="foo >1" discarded="foo <1",foo`+"\n", buf.String())
}
