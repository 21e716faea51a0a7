package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/FilmCut/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := model.DefaultAppConfig()
	cfg.DefaultStripWidth = 1520
	cfg.DefaultPadding = 3
	cfg.CacheBackend = model.CacheRedis
	cfg.RedisAddr = "redis:6379"
	cfg.RecentProjects = []string{"/tmp/living.json", "/tmp/shop.json"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "default_strip_width = 1520") {
		t.Errorf("expected TOML keys in file, got:\n%s", data)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultStripWidth != 1520 {
		t.Errorf("expected DefaultStripWidth=1520, got %f", loaded.DefaultStripWidth)
	}
	if loaded.DefaultPadding != 3 {
		t.Errorf("expected DefaultPadding=3, got %f", loaded.DefaultPadding)
	}
	if loaded.CacheBackend != model.CacheRedis || loaded.RedisAddr != "redis:6379" {
		t.Errorf("cache settings not restored: %s %s", loaded.CacheBackend, loaded.RedisAddr)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.toml")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultStripWidth != defaults.DefaultStripWidth {
		t.Errorf("expected default strip width %f, got %f", defaults.DefaultStripWidth, cfg.DefaultStripWidth)
	}
	if cfg.ListenAddr != defaults.ListenAddr {
		t.Errorf("expected listen addr %s, got %s", defaults.ListenAddr, cfg.ListenAddr)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_padding = 2.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultPadding != 2.5 {
		t.Errorf("expected padding 2.5, got %f", cfg.DefaultPadding)
	}
	if cfg.DefaultStripWidth != model.DefaultStripWidth || !cfg.DefaultAllowRotation {
		t.Errorf("unset keys should keep defaults, got %+v", cfg)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestLoadAppConfigRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("default_padding = = 1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(bad); err == nil {
		t.Error("expected error for malformed TOML")
	}

	unknown := filepath.Join(dir, "unknown.toml")
	if err := os.WriteFile(unknown, []byte("kerf_width = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(unknown); err == nil || !strings.Contains(err.Error(), "kerf_width") {
		t.Errorf("expected unknown key error, got %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.toml" {
		t.Errorf("expected filename config.toml, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".filmcut" {
		t.Errorf("expected parent dir .filmcut, got %s", filepath.Dir(path))
	}
}
