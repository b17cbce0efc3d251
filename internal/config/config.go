// ABOUTME: Configuration loader for the studyportal client
// ABOUTME: Reads environment variables (and an optional .env) with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL    = "http://localhost:5000/api"
	DefaultWatermark = "Steady-Study-8"
	defaultTimeout   = 30
	appName          = "studyportal"
)

type Config struct {
	APIURL      string
	ConfigDir   string
	HTTPTimeout time.Duration
	Watermark   string
	LogLevel    string
	LogFormat   string // text or json
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		APIURL:      strings.TrimRight(getEnv("STUDYPORTAL_API_URL", DefaultAPIURL), "/"),
		ConfigDir:   getEnv("STUDYPORTAL_CONFIG_DIR", DefaultConfigDir()),
		HTTPTimeout: time.Duration(getEnvInt("STUDYPORTAL_HTTP_TIMEOUT", defaultTimeout)) * time.Second,
		Watermark:   getEnv("STUDYPORTAL_WATERMARK", DefaultWatermark),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	if err := ValidateAPIURL(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("STUDYPORTAL_API_URL: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("STUDYPORTAL_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	if cfg.ConfigDir == "" {
		return nil, fmt.Errorf("cannot determine config directory; set STUDYPORTAL_CONFIG_DIR")
	}

	return cfg, nil
}

// ValidateAPIURL checks raw is an absolute http(s) URL
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}

// DefaultConfigDir returns the default config directory following XDG conventions
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
