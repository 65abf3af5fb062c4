package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/modviz/modviz/pkg/cache"
	"github.com/modviz/modviz/pkg/depgraph"
)

// Config holds the user configuration loaded from config.toml.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	// HostPrefix is stripped from module paths when simplifying labels.
	HostPrefix string `toml:"host_prefix"`

	// Packages lists allow-prefixes applied when a command gives none.
	Packages []string `toml:"packages"`

	// HidePackages lists hide-prefixes applied when a command gives none.
	HidePackages []string `toml:"hide_packages"`

	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "memory", "redis", or "none".
	// Empty defaults to "file".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory.
	Dir string `toml:"dir"`

	// MaxEntries bounds the memory backend. Zero uses the default.
	MaxEntries int `toml:"max_entries"`

	// TTLMinutes expires memory and redis entries. Zero means no expiry.
	// The memory backend applies this cache-wide, overriding per-entry
	// lifetimes such as the API server's artifact expiry.
	TTLMinutes int `toml:"ttl_minutes"`

	// Redis backend connection settings.
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// Cache backend names accepted in config and on the command line.
const (
	backendFile   = "file"
	backendMemory = "memory"
	backendRedis  = "redis"
	backendNone   = "none"
)

// defaultConfigPath returns the default config file location,
// typically ~/.config/modviz/config.toml.
func defaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modviz", "config.toml"), nil
}

// loadConfig reads the config file at path. An empty path uses the default
// location; a missing file at the default location is not an error.
func loadConfig(path string) (Config, error) {
	cfg := Config{HostPrefix: depgraph.DefaultHostPrefix}

	explicit := path != ""
	if !explicit {
		def, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = def
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	if cfg.HostPrefix == "" {
		cfg.HostPrefix = depgraph.DefaultHostPrefix
	}
	return cfg, nil
}

// cacheTTL converts the configured TTL to a duration.
func (c CacheConfig) cacheTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// defaultCacheDir returns the file backend's default directory,
// typically ~/.cache/modviz.
func defaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "modviz"), nil
}

// openCache constructs the cache backend selected by cfg. When noCache is
// set the selection is overridden with a null cache.
func openCache(ctx context.Context, cfg CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendMemory:
		return cache.NewMemoryCache(cfg.MaxEntries, cfg.cacheTTL()), nil
	case backendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case backendFile, "":
		dir := cfg.Dir
		if dir == "" {
			def, err := defaultCacheDir()
			if err != nil {
				return nil, fmt.Errorf("resolve cache dir: %w", err)
			}
			dir = def
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (must be 'file', 'memory', 'redis', or 'none')", cfg.Backend)
	}
}
