// internal/logger/logger_test.go
package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	cfg "github.com/tamzrod/octolok/internal/config"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_FileOutputWritesAndSplitsErrors(t *testing.T) {
	dir := t.TempDir()
	log, err := New(cfg.LogConfig{
		Level:  "info",
		Format: "json",
		Output: "file",
		File:   cfg.LogFileConfig{Path: dir, Filename: "octolok.log", MaxSize: 1},
	})
	require.NoError(t, err)

	log.Info("relay armed")
	log.Error("bus down")
	_ = log.Sync()

	main, err := os.ReadFile(filepath.Join(dir, "octolok.log"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "relay armed")
	assert.Contains(t, string(main), "bus down")

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(errs), "relay armed")
	assert.Contains(t, string(errs), "bus down")
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(cfg.LogConfig{Level: "verbose"})
	assert.Error(t, err)
}
