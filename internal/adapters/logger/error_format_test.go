package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pinmerge/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "standard error",
			err:          errors.New("simple error"),
			wantMessages: []string{"simple error"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr chain",
			err:          zerr.Wrap(zerr.Wrap(errors.New("root"), "middle"), "outer"),
			wantMessages: []string{"outer", "middle", "root"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "metadata stays on its layer",
			err: func() error {
				inner := zerr.With(zerr.New("inner"), "inner_key", "inner_val")
				return zerr.With(zerr.Wrap(inner, "outer"), "outer_key", "outer_val")
			}(),
			wantMessages: []string{"outer", "inner"},
			wantMetadata: []map[string]any{
				{"outer_key": "outer_val"},
				{"inner_key": "inner_val"},
			},
		},
		{
			name:         "metadata-only wrapper of a standard error",
			err:          zerr.With(errors.New("boom"), "path", "x.yaml"),
			wantMessages: []string{"boom"},
			wantMetadata: []map[string]any{{"path": "x.yaml"}},
		},
		{
			name: "trailing metadata-only layer",
			err:  zerr.With(zerr.Wrap(zerr.New("base"), "top"), "k", 1),
			wantMessages: []string{"top", "base"},
			wantMetadata: []map[string]any{{"k": 1}, {}},
		},
		{
			name:         "nil",
			err:          nil,
			wantMessages: nil,
			wantMetadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntries(tt.err)

			var messages []string
			var metadata []map[string]any
			for _, e := range entries {
				messages = append(messages, e.Message)
				metadata = append(metadata, e.Metadata)
			}
			assert.Equal(t, tt.wantMessages, messages)
			assert.Equal(t, tt.wantMetadata, metadata)
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	got := logger.FormatErrorEntries([]logger.ErrorEntry{
		{Message: "failed to resolve requirements", Metadata: map[string]any{"b": 2, "a": 1}},
		{Message: "invalid platform\nsecond line", Metadata: map[string]any{"platform": "linux-sparc"}},
	})

	want := "Error: failed to resolve requirements\n" +
		"       a: 1\n" +
		"       b: 2\n" +
		"\n" +
		"  Caused by:\n" +
		"    → invalid platform\n" +
		"      second line\n" +
		"      platform: linux-sparc"
	assert.Equal(t, want, got)
}
