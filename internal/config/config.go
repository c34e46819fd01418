package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/nps-sites/internal/fetch"
)

const (
	AppName = "nps-sites"

	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	// APIKeyEnv overrides the api_key setting.
	APIKeyEnv = "MAPQUEST_API_KEY"
)

// ErrConfigNotFound is returned when an explicitly requested file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config holds all settings.
type Config struct {
	APIKey       string        `yaml:"api_key"`
	CacheFile    string        `yaml:"cache_file"`
	CacheBackend string        `yaml:"cache_backend"`
	LogLevel     string        `yaml:"log_level"`
	UserAgent    string        `yaml:"user_agent"`
	Contact      string        `yaml:"contact"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		CacheBackend: BackendJSON,
		LogLevel:     "warn",
		UserAgent:    fetch.DefaultUserAgent,
		Contact:      fetch.DefaultContact,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/nps-sites/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// DataDir returns $XDG_DATA_HOME/nps-sites.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Load reads path over the defaults. With an empty path the default location
// is tried and a missing file is not an error. The API key environment
// variable is applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.APIKey = key
	}

	return cfg, nil
}

// ResolvedCacheFile returns the cache path, defaulting by backend.
func (c *Config) ResolvedCacheFile() string {
	if c.CacheFile != "" {
		return c.CacheFile
	}
	if c.CacheBackend == BackendSQLite {
		return filepath.Join(DataDir(), "cache.db")
	}
	return filepath.Join(DataDir(), "cache.json")
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if c.CacheBackend != BackendJSON && c.CacheBackend != BackendSQLite {
		return fmt.Errorf("invalid cache backend: %q (must be %q or %q)", c.CacheBackend, BackendJSON, BackendSQLite)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("invalid http_timeout: %s", c.HTTPTimeout)
	}
	return nil
}
