package utils

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"loud":    slog.LevelInfo,
	}
	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), input)
	}
}

func TestSetupLoggerReplacesShared(t *testing.T) {
	var buf bytes.Buffer
	l := SetupLogger(&buf, "warn")
	t.Cleanup(func() { SetupLogger(&bytes.Buffer{}, "info") })

	assert.Same(t, l, GetLogger())

	GetLogger().Info("hidden")
	GetLogger().Warn("shown", slog.Int("bits", 16))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown bits=16")
}
