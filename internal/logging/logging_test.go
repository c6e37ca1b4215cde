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

func TestOpen_DiscardByDefault(t *testing.T) {
	logger, closeFn, err := Open(Options{StateDir: t.TempDir()})
	require.NoError(t, err)
	defer closeFn()

	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
}

func TestOpen_DebugWritesStateFile(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := Open(Options{Debug: true, StateDir: filepath.Join(dir, "bloodline")})
	require.NoError(t, err)

	logger.Debug("command executed", "command", "feed")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(filepath.Join(dir, "bloodline", FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "command executed")
	assert.Contains(t, string(data), "command=feed")
}

func TestOpen_FileHonoursLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.log")
	logger, closeFn, err := Open(Options{File: path, Level: slog.LevelWarn})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestOpen_NoDestination(t *testing.T) {
	_, _, err := Open(Options{Debug: true})
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo).Info("listening", "addr", "127.0.0.1:3000")
	assert.Contains(t, buf.String(), "addr=127.0.0.1:3000")
}
