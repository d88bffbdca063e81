package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.Error(t, err)
}

func TestInitFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "ptreectl.log")
	require.NoError(t, Init(Options{Enabled: true, File: name, Level: slog.LevelWarn}))
	Info("hidden")
	Warn("shown", "file", "a.info")
	Close()

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "msg=shown file=a.info")

	require.NoError(t, Init(Options{}))
	Warn("discarded")
}
