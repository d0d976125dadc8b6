package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Browser != DefaultBrowser {
		t.Errorf("Browser = %q, want %q", cfg.Browser, DefaultBrowser)
	}
	if cfg.ScrollWait != DefaultScrollWait {
		t.Errorf("ScrollWait = %v, want %v", cfg.ScrollWait, DefaultScrollWait)
	}
	if cfg.Extensions != DefaultExtensions {
		t.Errorf("Extensions = %q, want %q", cfg.Extensions, DefaultExtensions)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IMGSCRAPE_BROWSER", "edge")
	t.Setenv("IMGSCRAPE_OUTPUT_DIR", "/tmp/pics")
	t.Setenv("IMGSCRAPE_SCROLL_WAIT", "5s")
	t.Setenv("IMGSCRAPE_SCROLL_SCRIPT", "window.scrollBy(0, 500); document.body.scrollHeight;")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Browser != "edge" {
		t.Errorf("Browser = %q, want edge", cfg.Browser)
	}
	if cfg.OutputDir != "/tmp/pics" {
		t.Errorf("OutputDir = %q, want /tmp/pics", cfg.OutputDir)
	}
	if cfg.ScrollWait != 5*time.Second {
		t.Errorf("ScrollWait = %v, want 5s", cfg.ScrollWait)
	}
	if cfg.ScrollScript == "" {
		t.Error("ScrollScript env override was not applied")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imgscrape.yaml")
	content := []byte("browser: edge\noutput_dir: ./out\nextensions: \"jpg,webp\"\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("IMGSCRAPE_CONFIG", path)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Browser != "edge" {
		t.Errorf("Browser = %q, want edge", cfg.Browser)
	}
	if cfg.Extensions != "jpg,webp" {
		t.Errorf("Extensions = %q, want jpg,webp", cfg.Extensions)
	}
}

func TestLoad_InvalidEnvBrowser(t *testing.T) {
	t.Setenv("IMGSCRAPE_BROWSER", "firefox")

	if _, err := Load(nil); err == nil {
		t.Error("Load succeeded with unsupported browser")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			HTTPTimeout:     30 * time.Second,
			Browser:         "chrome",
			ScrollWait:      2 * time.Second,
			MaxScrollRounds: 50,
			OutputDir:       "./images",
		}
	}

	if err := validate(base()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.HTTPTimeout = 0 }},
		{"bad browser", func(c *Config) { c.Browser = "safari" }},
		{"tiny scroll wait", func(c *Config) { c.ScrollWait = time.Millisecond }},
		{"zero scroll rounds", func(c *Config) { c.MaxScrollRounds = 0 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"negative limit", func(c *Config) { c.Limit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := validate(cfg); err == nil {
				t.Error("validate accepted invalid config")
			}
		})
	}
}

func TestValidateScrollWait(t *testing.T) {
	if err := ValidateScrollWait(MinScrollWait - time.Millisecond); err == nil {
		t.Error("wait below the floor should be rejected")
	}
	if err := ValidateScrollWait(MinScrollWait); err != nil {
		t.Errorf("wait at the floor rejected: %v", err)
	}
	if err := ValidateScrollWait(time.Second); err != nil {
		t.Errorf("wait above the floor rejected: %v", err)
	}
}
