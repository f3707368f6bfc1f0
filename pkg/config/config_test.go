package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCENGEN_CATALOG", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.RetryLimit != DefaultRetryLimit || cfg.RetryDelayDuration() != DefaultRetryDelay {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.CatalogDir != "" {
		t.Errorf("expected empty catalog dir, got %q", cfg.CatalogDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SCENGEN_CATALOG", "/ignored")

	cfg := Default()
	cfg.CatalogDir = "/srv/modules"
	cfg.RetryLimit = 3
	cfg.RetryDelay = "250ms"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	info, err := os.Stat(filepath.Join(home, ".scengen", "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.CatalogDir != "/srv/modules" || loaded.RetryLimit != 3 {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.RetryDelayDuration() != 250*time.Millisecond {
		t.Errorf("unexpected delay %v", loaded.RetryDelayDuration())
	}
}

func TestCatalogFromEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SCENGEN_CATALOG", "/opt/catalog")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CatalogDir != "/opt/catalog" {
		t.Errorf("expected env catalog dir, got %q", cfg.CatalogDir)
	}
}

func TestRetryDelayFallback(t *testing.T) {
	for _, v := range []string{"", "soon", "-1s"} {
		c := &Config{RetryDelay: v}
		if c.RetryDelayDuration() != DefaultRetryDelay {
			t.Errorf("%q: expected default delay", v)
		}
	}
}
