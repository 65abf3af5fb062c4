package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
host_prefix = "gitlab.com/"
packages = ["gitlab.com/acme"]
hide_packages = ["gitlab.com/acme/internal"]

[cache]
backend = "memory"
max_entries = 256
ttl_minutes = 30
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}

	if cfg.HostPrefix != "gitlab.com/" {
		t.Errorf("HostPrefix = %q, want %q", cfg.HostPrefix, "gitlab.com/")
	}
	if !reflect.DeepEqual(cfg.Packages, []string{"gitlab.com/acme"}) {
		t.Errorf("Packages = %v", cfg.Packages)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("Cache.Backend = %q, want memory", cfg.Cache.Backend)
	}
	if cfg.Cache.MaxEntries != 256 {
		t.Errorf("Cache.MaxEntries = %d, want 256", cfg.Cache.MaxEntries)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, ``)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.HostPrefix != "github.com/" {
		t.Errorf("HostPrefix = %q, want default github.com/", cfg.HostPrefix)
	}
	if cfg.Cache.Backend != "" {
		t.Errorf("Cache.Backend = %q, want empty (file default)", cfg.Cache.Backend)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("an explicitly named missing config file should be an error")
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     CacheConfig
		noCache bool
		wantErr bool
	}{
		{"file backend", CacheConfig{Backend: "file", Dir: t.TempDir()}, false, false},
		{"memory backend", CacheConfig{Backend: "memory"}, false, false},
		{"none backend", CacheConfig{Backend: "none"}, false, false},
		{"unknown backend", CacheConfig{Backend: "postgres"}, false, true},
		{"no-cache overrides", CacheConfig{Backend: "postgres"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := openCache(ctx, tt.cfg, tt.noCache)
			if (err != nil) != tt.wantErr {
				t.Fatalf("openCache error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				defer c.Close()
			}
		})
	}
}

func TestOpenCacheNoCacheIsNull(t *testing.T) {
	c, err := openCache(context.Background(), CacheConfig{Backend: "file"}, true)
	if err != nil {
		t.Fatalf("openCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(context.Background(), "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if _, hit, _ := c.Get(context.Background(), "k"); hit {
		t.Error("null cache should never hit")
	}
}
