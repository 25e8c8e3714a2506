package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := NewHandler(&buf, slog.LevelInfo, "json")
		require.NoError(t, err)

		slog.New(h).Info("saved", "key", "unroll_subs")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "saved", record["msg"])
		assert.Equal(t, "unroll_subs", record["key"])
	})

	t.Run("text respects level", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := NewHandler(&buf, slog.LevelWarn, "text")
		require.NoError(t, err)

		logger := slog.New(h)
		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("console", func(t *testing.T) {
		var buf bytes.Buffer
		h, err := NewHandler(&buf, slog.LevelInfo, "console")
		require.NoError(t, err)

		slog.New(h).Info("colored")
		assert.Contains(t, buf.String(), "colored")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewHandler(&bytes.Buffer{}, slog.LevelInfo, "xml")
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestUserError(t *testing.T) {
	base := errors.New("disk full")
	err := NewUserError("Could not save changes", base)

	assert.Equal(t, "Could not save changes: disk full", err.Error())
	assert.ErrorIs(t, err, base)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Could not save changes", userErr.UserMessage)

	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}
