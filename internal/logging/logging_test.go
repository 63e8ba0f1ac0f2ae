package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMirrorsToConsoleAndFileWithSeparateLevels(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "logs", "program.log")

	logger, closer, err := New(Options{
		Console:      console,
		ConsoleLevel: slog.LevelInfo,
		FilePath:     path,
		FileLevel:    slog.LevelDebug,
	})
	require.NoError(t, err)

	logger.Debug("message sent")
	logger.Info("polling started", "period", "10m0s")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, console.String(), "message sent")
	assert.Contains(t, console.String(), "polling started")
	assert.Contains(t, string(data), "message sent")
	assert.Contains(t, string(data), "polling started")
}

func TestNewAppendsToExistingLogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "program.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	logger, closer, err := New(Options{Console: &bytes.Buffer{}, FilePath: path})
	require.NoError(t, err)
	logger.Info("next run")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "previous run\n")
	assert.Contains(t, string(data), "next run")
}

func TestCriticalUsesCriticalLabel(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	logger, _, err := New(Options{Console: console, ConsoleLevel: slog.LevelInfo})
	require.NoError(t, err)

	Critical(logger, "missing required environment variable", "name", "TELEGRAM_TOKEN")

	assert.Contains(t, console.String(), "level=CRITICAL")
	assert.Contains(t, console.String(), "name=TELEGRAM_TOKEN")
}

func TestWithAttrsReachesEverySink(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "program.log")
	logger, closer, err := New(Options{Console: console, FilePath: path})
	require.NoError(t, err)

	logger.With("cycle_id", "abc").Info("cycle finished")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, console.String(), "cycle_id=abc")
	assert.Contains(t, string(data), "cycle_id=abc")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want slog.Level
	}{
		{raw: "debug", want: slog.LevelDebug},
		{raw: " WARN ", want: slog.LevelWarn},
		{raw: "error", want: slog.LevelError},
		{raw: "critical", want: LevelCritical},
		{raw: "", want: slog.LevelInfo},
		{raw: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.raw))
		})
	}
}
