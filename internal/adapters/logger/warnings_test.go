package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pinmerge/internal/adapters/logger"
	"go.trai.ch/pinmerge/internal/core/domain"
)

var conflict = domain.Warning{
	Kind:      domain.PlatformConflict,
	Package:   "foo",
	Platform:  domain.Linux64,
	Kept:      "foo >2",
	Discarded: []string{"foo <1"},
	Message:   "contradictory version pinnings: >2 and <1",
}

func TestWarningSink_Pretty(t *testing.T) {
	lg, buf := newTestLogger(t)
	logger.NewWarningSink(lg).Warn(conflict)

	out := buf.String()
	assert.Contains(t, out, "! ")
	assert.Contains(t, out, `Version conflict for "foo" on linux-64`)
	assert.Contains(t, out, `Keeping "foo >2", discarding "foo <1".`)
	assert.Contains(t, out, "╭")
}

func TestWarningSink_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	logger.NewWarningSink(lg).Warn(conflict)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"msg":"platform-conflict"`)
	assert.Contains(t, out, `"package":"foo"`)
	assert.Contains(t, out, `"platform":"linux-64"`)
	assert.Contains(t, out, `"discarded":["foo <1"]`)
}

func TestWarningSink_RendersForLoggerOutput(t *testing.T) {
	lg, buf := newTestLogger(t)
	sink := logger.NewWarningSink(lg)

	assert.Same(t, buf, logger.RendererWriter(sink))
}
