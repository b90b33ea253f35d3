package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUints(t *testing.T) {
	got, err := parseUints(" 2, 1,1 ")
	require.NoError(t, err)
	assert.Equal(t, []uint64{2, 1, 1}, got)

	got, err = parseUints("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseUints("2,-1")
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rscode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
modulus: 101
anchors: [0, 1, 2]
values: [2, 1, 1]
queries: 4
log_format: json
`), 0o644))

	base := Config{Modulus: 11, Message: []uint64{2, 1, 1}, Workers: 2, LogLevel: "debug", LogFormat: "text"}
	cfg, err := loadConfig(path, base)
	require.NoError(t, err)

	assert.Equal(t, uint64(101), cfg.Modulus)
	assert.Equal(t, []uint64{2, 1, 1}, cfg.Message)
	assert.Equal(t, []uint64{0, 1, 2}, cfg.Anchors)
	assert.Equal(t, []uint64{2, 1, 1}, cfg.Values)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 4, cfg.Queries)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"), Config{})
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modulus: [1"), 0o644))
	_, err = loadConfig(path, Config{})
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logLevel("warn"))
	assert.Equal(t, slog.LevelError, logLevel("error"))
	assert.Equal(t, slog.LevelInfo, logLevel("verbose"))
}

func TestFormatCodeword(t *testing.T) {
	assert.Equal(t, "[2,4,8]", formatCodeword([]uint64{2, 4, 8}))

	long := make([]uint64, 1100)
	assert.Contains(t, formatCodeword(long), "(1,068 more)")
}
