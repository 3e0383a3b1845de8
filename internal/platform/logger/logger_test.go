// Package logger_test contains tests for the logger package
package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/cohort-tools-api/internal/config"
	"github.com/phrazzld/cohort-tools-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restoreDefault puts back the process-wide logger replaced by Setup.
func restoreDefault(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		wantDebug   bool
		wantInfo    bool
		wantWarning bool
	}{
		{name: "debug", level: "debug", wantDebug: true, wantInfo: true},
		{name: "info", level: "info", wantInfo: true},
		{name: "upper case", level: "WARN"},
		{name: "invalid falls back to info", level: "verbose", wantInfo: true, wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restoreDefault(t)
			buf := &logger.TestLogBuffer{}

			l, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: tt.level}, buf)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Same(t, l, slog.Default(), "Setup should install the logger as default")

			ctx := context.Background()
			assert.Equal(t, tt.wantDebug, l.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.wantInfo, l.Enabled(ctx, slog.LevelInfo))
			assert.True(t, l.Enabled(ctx, slog.LevelError))

			if tt.wantWarning {
				assert.Contains(t, buf.String(), "invalid log level configured")
			}
		})
	}
}

func TestSetupWritesJSON(t *testing.T) {
	restoreDefault(t)
	buf := &logger.TestLogBuffer{}

	_, err := logger.SetupWithWriter(config.ServerConfig{LogLevel: "info"}, buf)
	require.NoError(t, err)

	slog.Info("cohort created", "cohort_slug", "wd-24")

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cohort created", entries[0]["msg"])
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "wd-24", entries[0]["cohort_slug"])
}

func TestContextLogger(t *testing.T) {
	l, buf := logger.NewTestLogger()
	fallback := slog.New(slog.NewJSONHandler(&logger.TestLogBuffer{}, nil))

	t.Run("empty context returns fallback", func(t *testing.T) {
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
		assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
	})

	t.Run("stored logger is returned", func(t *testing.T) {
		ctx := logger.WithLogger(context.Background(), l.With("trace_id", "abc123"))
		logger.FromContext(ctx).Info("hello")

		entries, err := buf.GetLogEntries()
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, "abc123", entries[len(entries)-1]["trace_id"])
	})
}
