package log

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
	seen := map[slog.Level]bool{}
	for _, name := range Levels {
		seen[ParseLevel(name)] = true
	}
	assert.Len(t, seen, len(Levels))
}

func TestConsoleSplit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewLogger(LevelTrace, &stdout, &stderr, nil)

	logger.Log(context.Background(), LevelTrace, "property", "key", "PA5.Signal")
	logger.Info("resolved", "pins", 82)
	logger.Error("write failed")

	assert.Contains(t, stdout.String(), "level=TRACE")
	assert.Contains(t, stdout.String(), "pins=82")
	assert.NotContains(t, stdout.String(), "write failed")
	assert.Contains(t, stderr.String(), "level=ERROR")
	assert.NotContains(t, stderr.String(), "resolved")
}

func TestConsoleLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger := NewLogger(slog.LevelWarn, &stdout, &stderr, nil).With("part", "STM32F407VETx")

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "part=STM32F407VETx")
}

func TestFileSink(t *testing.T) {
	var stdout, stderr, file bytes.Buffer
	logger := NewLogger(slog.LevelDebug, &stdout, &stderr, &file).WithGroup("overlay")

	logger.Debug("pin property not used", "pin", "PA5")
	logger.Warn("signal not listed")

	assert.Empty(t, stdout.String())
	assert.Contains(t, file.String(), "overlay.pin=PA5")
	assert.Contains(t, file.String(), "signal not listed")
	assert.NotContains(t, stderr.String(), "pin property not used")
	assert.Contains(t, stderr.String(), "signal not listed")
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ioc2chcfg.log")
	logger, closers, err := SetupLogger("debug", path)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Debug("to file")
	for _, c := range closers {
		require.NoError(t, c.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	_, _, err = SetupLogger("info", filepath.Join(t.TempDir(), "missing", "x.log"))
	assert.Error(t, err)
}
