package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures hnstories runtime settings.
type Config struct {
	Endpoint          string  `env:"ENDPOINT"`
	DefaultQuery      string  `env:"DEFAULT_QUERY"`
	PrefsPath         string  `env:"PREFS_PATH"`
	LogFile           string  `env:"LOG_FILE"`
	LogLevel          string  `env:"LOG_LEVEL"`
	RequestTimeout    int     `env:"REQUEST_TIMEOUT"`  // seconds
	RefreshInterval   int     `env:"REFRESH_INTERVAL"` // seconds; zero disables auto refresh
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND"`
}

const (
	EnvPrefix = "HNSTORIES_"

	defaultConfigPath     = "~/.config/hnstories/config.toml"
	defaultEndpoint       = "https://hn.algolia.com/api/v1/search"
	defaultQuery          = "React"
	defaultPrefsPath      = "~/.config/hnstories/prefs.toml"
	defaultLogFile        = "~/.local/state/hnstories/hnstories.log"
	defaultLogLevel       = "info"
	defaultRequestTimeout = 10
	defaultRequestsPerSec = 5
)

func defaults() Config {
	return Config{
		Endpoint:          defaultEndpoint,
		DefaultQuery:      defaultQuery,
		PrefsPath:         defaultPrefsPath,
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		RequestTimeout:    defaultRequestTimeout,
		RequestsPerSecond: defaultRequestsPerSec,
	}
}

// Load reads the config file at path (empty uses the default location),
// applies HNSTORIES_* environment overrides and fills defaults. A missing
// file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	switch {
	case err == nil:
		defer file.Close()
		if err := decode(file, &cfg); err != nil {
			return Config{}, err
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := env.Parse(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Endpoint          string   `toml:"endpoint"`
		DefaultQuery      *string  `toml:"default_query"`
		PrefsPath         string   `toml:"prefs_path"`
		LogFile           string   `toml:"log_file"`
		LogLevel          string   `toml:"log_level"`
		RequestTimeout    int      `toml:"request_timeout"`
		RefreshInterval   int      `toml:"refresh_interval"`
		RequestsPerSecond *float64 `toml:"requests_per_second"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	cfg.Endpoint = raw.Endpoint
	if raw.DefaultQuery != nil {
		cfg.DefaultQuery = *raw.DefaultQuery
	}
	cfg.PrefsPath = raw.PrefsPath
	cfg.LogFile = raw.LogFile
	cfg.LogLevel = raw.LogLevel
	cfg.RequestTimeout = raw.RequestTimeout
	cfg.RefreshInterval = raw.RefreshInterval
	if raw.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *raw.RequestsPerSecond
	}
	return nil
}

func (c *Config) normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = defaultRequestTimeout
	}
	if c.RefreshInterval < 0 {
		c.RefreshInterval = 0
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}

	c.PrefsPath = strings.TrimSpace(c.PrefsPath)
	if c.PrefsPath == "" {
		c.PrefsPath = defaultPrefsPath
	}
	c.PrefsPath = mustExpand(c.PrefsPath)

	c.LogFile = strings.TrimSpace(c.LogFile)
	if c.LogFile == "" {
		c.LogFile = defaultLogFile
	}
	if c.LogFile != "-" {
		c.LogFile = mustExpand(c.LogFile)
	}
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c Config) RequestTimeoutDuration() time.Duration {
	if c.RequestTimeout <= 0 {
		return defaultRequestTimeout * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// RefreshEvery returns the auto refresh interval, zero when disabled.
func (c Config) RefreshEvery() time.Duration {
	if c.RefreshInterval <= 0 {
		return 0
	}
	return time.Duration(c.RefreshInterval) * time.Second
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
