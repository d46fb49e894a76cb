package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr" env:"CATALOGD_ADDR"`

	// SourceURL is the upstream pricing document. SourceFile, when set,
	// takes precedence and serves the document from disk instead.
	SourceURL  string `json:"source_url" yaml:"source_url" toml:"source_url" env:"CATALOGD_SOURCE_URL"`
	SourceFile string `json:"source_file" yaml:"source_file" toml:"source_file" env:"CATALOGD_SOURCE_FILE"`

	// RefreshSeconds is the background refresh period; 0 disables the
	// refresher (static-data mode).
	RefreshSeconds int `json:"refresh_seconds" yaml:"refresh_seconds" toml:"refresh_seconds" env:"CATALOGD_REFRESH_SECONDS"`
	// MinRefreshSeconds throttles forced refreshes via POST /v1/refresh.
	MinRefreshSeconds int `json:"min_refresh_seconds" yaml:"min_refresh_seconds" toml:"min_refresh_seconds" env:"CATALOGD_MIN_REFRESH_SECONDS"`

	CacheEnabled    bool `json:"cache_enabled" yaml:"cache_enabled" toml:"cache_enabled" env:"CATALOGD_CACHE_ENABLED"`
	CacheTTLSeconds int  `json:"cache_ttl_seconds" yaml:"cache_ttl_seconds" toml:"cache_ttl_seconds" env:"CATALOGD_CACHE_TTL_SECONDS"`

	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level" env:"CATALOGD_LOG_LEVEL"`

	CORSEnabled bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"CATALOGD_CORS_ENABLED"`
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins" env:"CATALOGD_CORS_ORIGINS" envSeparator:","`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays CATALOGD_* environment variables onto cfg. Unset
// variables leave existing values alone, so precedence stays
// file < env < flags.
func ApplyEnv(cfg *Config) error {
	return env.Parse(cfg)
}
