// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"phase-steganography/models"
	"phase-steganography/stego"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	MaxUploadMB    int64
	LogLevel       string
	Stego          models.StegoConfig
}

// Load reads envFiles (".env" when none are given) and then the environment.
// Missing env files are not an error; malformed values are.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	cfg := &Config{
		Port:           GetEnv("PORT", "8080"),
		AllowedOrigins: splitList(GetEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       GetEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.MaxUploadMB, err = strconv.ParseInt(GetEnv("MAX_UPLOAD_MB", "32"), 10, 64); err != nil || cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %q", os.Getenv("MAX_UPLOAD_MB"))
	}
	if cfg.Stego.HeaderSkip, err = strconv.Atoi(GetEnv("HEADER_SKIP", strconv.Itoa(stego.HeaderSkip))); err != nil || cfg.Stego.HeaderSkip < 0 {
		return nil, fmt.Errorf("invalid HEADER_SKIP %q", os.Getenv("HEADER_SKIP"))
	}
	if cfg.Stego.Verify, err = strconv.ParseBool(GetEnv("VERIFY_EMBED", "true")); err != nil {
		return nil, fmt.Errorf("invalid VERIFY_EMBED %q", os.Getenv("VERIFY_EMBED"))
	}
	if cfg.Stego.PSNRThreshold, err = strconv.ParseFloat(GetEnv("PSNR_THRESHOLD", "30"), 64); err != nil {
		return nil, fmt.Errorf("invalid PSNR_THRESHOLD %q", os.Getenv("PSNR_THRESHOLD"))
	}

	return cfg, nil
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
