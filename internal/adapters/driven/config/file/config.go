// Package file provides TOML-based configuration loading.
// Configuration is stored in a TOML file within the application config
// directory; the LDA_API_KEY environment variable overrides the stored
// API key so deployments never need the key on disk.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultCacheBackend = "memory"
	DefaultCacheTTL     = 3600
	DefaultCacheEntries = 256
)

// Config is the application configuration.
type Config struct {
	// APIKey authenticates against the Senate LDA API.
	APIKey string `toml:"api_key"`

	// APIBaseURL overrides the LDA API base URL. Empty uses the default.
	APIBaseURL string `toml:"api_base_url"`

	// UseMockData serves synthetic data without touching the live API.
	UseMockData bool `toml:"use_mock_data"`

	// MockFallback enables the synthetic fallback when live search
	// yields nothing usable.
	MockFallback bool `toml:"mock_fallback"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	// Backend selects the cache implementation: "memory", "sqlite" or
	// "none".
	Backend string `toml:"backend"`

	// TTLSeconds is how long a cached response stays valid.
	TTLSeconds int `toml:"ttl_seconds"`

	// MaxEntries bounds the cache size.
	MaxEntries int `toml:"max_entries"`
}

// DefaultPath returns the default config file location,
// ~/.lobbying-disclosure/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lobbying-disclosure", "config.toml"), nil
}

// Load reads the config file at path, applying defaults for missing
// values and the LDA_API_KEY environment override. A missing file is
// not an error: it yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		MockFallback: true,
		Cache: CacheConfig{
			Backend:    DefaultCacheBackend,
			TTLSeconds: DefaultCacheTTL,
			MaxEntries: DefaultCacheEntries,
		},
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if key := os.Getenv("LDA_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTL
	}
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = DefaultCacheEntries
	}

	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
