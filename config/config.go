// Package config provides configuration loading for docvault.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (DOCVAULT_STORE_ROOT, DOCVAULT_LOG_LEVEL, ...)
//  2. YAML config file
//  3. Hardcoded defaults
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DOCVAULT_"

// Config holds runtime configuration for the document store.
type Config struct {
	Store StoreConfig `koanf:"store"`
	Async AsyncConfig `koanf:"async"`
	Log   LogConfig   `koanf:"log"`
}

// StoreConfig configures the embedded engine registry.
type StoreConfig struct {
	// Root is the fixed prefix under which each tenant store lives at
	// <root>/<store_id>.
	Root string `koanf:"root"`
	// Compression selects the value codec: zstd (default), snappy, none.
	Compression string `koanf:"compression"`
	// ZSTDLevel is the zstd compression level, used only with zstd.
	ZSTDLevel int `koanf:"zstd_level"`
}

// AsyncConfig configures the async dispatch worker pool.
type AsyncConfig struct {
	PoolSize int `koanf:"pool_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", l.Level)
}

// Load reads configuration from an optional YAML file, overrides with
// DOCVAULT_-prefixed environment variables, then applies defaults and
// validates. An empty configPath skips the file layer.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// DOCVAULT_STORE_ROOT -> store.root, DOCVAULT_STORE_ZSTD_LEVEL ->
	// store.zstd_level: the section is everything before the first
	// underscore, the rest keeps its underscores.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Store.Root == "" {
		cfg.Store.Root = filepath.Join(os.TempDir(), "docvault")
	}
	if cfg.Store.Compression == "" {
		cfg.Store.Compression = "zstd"
	}
	if cfg.Store.ZSTDLevel == 0 {
		cfg.Store.ZSTDLevel = 3
	}
	if cfg.Async.PoolSize == 0 {
		cfg.Async.PoolSize = runtime.NumCPU() / 2
		if cfg.Async.PoolSize < 1 {
			cfg.Async.PoolSize = 1
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Store.Compression) {
	case "zstd", "snappy", "none":
	default:
		return fmt.Errorf("unknown compression codec %q", c.Store.Compression)
	}
	if c.Store.ZSTDLevel < 1 || c.Store.ZSTDLevel > 22 {
		return fmt.Errorf("zstd level %d out of range [1, 22]", c.Store.ZSTDLevel)
	}
	if c.Async.PoolSize < 1 {
		return fmt.Errorf("pool size must be positive, got %d", c.Async.PoolSize)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}
