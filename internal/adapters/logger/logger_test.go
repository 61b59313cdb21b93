package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinmerge/internal/adapters/logger"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer with NO_COLOR set, so
// output is free of ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	tests := []struct {
		name       string
		msg        string
		goldenName string
	}{
		{
			name:       "simple message",
			msg:        "wrote environment.yaml",
			goldenName: "info_basic",
		},
		{
			name:       "multiline message",
			msg:        "line1\nline2",
			goldenName: "info_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Info(tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("local_dependencies are ignored")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "simple error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "multiline error",
			err:        errors.New("yaml: unmarshal errors:\n  line 3: cannot unmarshal"),
			goldenName: "error_multiline",
		},
		{
			name: "zerr chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("no such file or directory"), "failed to read manifest"),
				"failed to merge",
			),
			goldenName: "error_chain_zerr",
		},
		{
			name: "stdlib chain is not split",
			err: fmt.Errorf("failed to merge: %w",
				fmt.Errorf("failed to read manifest: %w", errors.New("permission denied"))),
			goldenName: "error_chain_stdlib",
		},
		{
			name: "sentinel with metadata",
			err: zerr.With(
				zerr.With(zerr.Wrap(domain.ErrContradictoryPinning, ">2 and <1"), "package", "foo"),
				"platform", "linux-64",
			),
			goldenName: "error_metadata_sentinel",
		},
		{
			name: "empty wrapper metadata joins next layer",
			err: zerr.Wrap(
				zerr.With(zerr.Wrap(domain.ErrInvalidPackageString, ""), "package", "~weird"),
				"failed to load dependencies.yaml",
			),
			goldenName: "error_metadata_empty_layer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON_WithMetadata(t *testing.T) {
	err := zerr.With(zerr.Wrap(errors.New("boom"), "failed to load manifest"), "path", "a/dependencies.yaml")

	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(err)

	out := buf.String()
	assert.Contains(t, out, `"level":"ERROR"`)
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, `"error":"failed to load manifest: boom"`)
	assert.Contains(t, out, `"path":"a/dependencies.yaml"`)
	assert.NotContains(t, out, "✗")
}

func TestLogger_FormatSwitching(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(errors.New("pretty"))
	pretty := buf.String()
	buf.Reset()

	lg.SetJSON(true)
	lg.Error(errors.New("json"))
	jsonOut := buf.String()
	buf.Reset()

	lg.SetJSON(false)
	lg.Error(errors.New("pretty again"))

	assert.Contains(t, pretty, "✗")
	assert.Contains(t, jsonOut, `"error":"json"`)
	assert.Contains(t, buf.String(), "✗ Error: pretty again")
}

func TestLogger_SetOutputNil(t *testing.T) {
	require.NotPanics(t, func() {
		lg := logger.New().(*logger.Logger)
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for _, fn := range []func(){
		func() { lg.Info("info") },
		func() { lg.Warn("warn") },
		func() { lg.Error(errors.New("error")) },
		func() { lg.SetJSON(true) },
		func() { lg.SetJSON(false) },
		func() { lg.SetOutput(&bytes.Buffer{}) },
	} {
		wg.Go(fn)
	}
	wg.Wait()
}
