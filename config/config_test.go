package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGINS", "MAX_UPLOAD_MB", "LOG_LEVEL", "HEADER_SKIP", "VERIFY_EMBED", "PSNR_THRESHOLD"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(32), cfg.MaxUploadMB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 44, cfg.Stego.HeaderSkip)
	assert.True(t, cfg.Stego.Verify)
	assert.Equal(t, 30.0, cfg.Stego.PSNRThreshold)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("VERIFY_EMBED", "false")
	t.Setenv("HEADER_SKIP", "58")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Stego.Verify)
	assert.Equal(t, 58, cfg.Stego.HeaderSkip)
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set
	os.Unsetenv("PORT")
	os.Unsetenv("LOG_LEVEL")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=7070\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	tests := map[string]string{
		"MAX_UPLOAD_MB":  "lots",
		"HEADER_SKIP":    "-1",
		"VERIFY_EMBED":   "maybe",
		"PSNR_THRESHOLD": "high",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}
