package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm/hxpanel/widget/disclosure"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.CarouselInterval != 5*time.Second {
		t.Errorf("CarouselInterval = %v, want 5s", cfg.CarouselInterval)
	}
	if cfg.Mode() != disclosure.Accordion {
		t.Errorf("Mode() = %v, want accordion", cfg.Mode())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != DefaultConfig().Addr {
		t.Errorf("Addr = %q", cfg.Addr)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foundation.yml")
	data := "addr: \":9000\"\nfaq_mode: independent\ncarousel_interval: 3s\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9000" || cfg.Mode() != disclosure.Independent {
		t.Errorf("Addr %q, mode %v", cfg.Addr, cfg.Mode())
	}
	if cfg.CarouselInterval != 3*time.Second {
		t.Errorf("CarouselInterval = %v", cfg.CarouselInterval)
	}
	if cfg.FeaturedInterval != 8*time.Second {
		t.Errorf("FeaturedInterval = %v, want default", cfg.FeaturedInterval)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foundation.yml")
	if err := os.WriteFile(path, []byte("addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOUNDATION_ADDR", ":7000")
	t.Setenv("FOUNDATION_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.LogLevel != "debug" {
		t.Errorf("Addr %q, LogLevel %q", cfg.Addr, cfg.LogLevel)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foundation.yml")
	if err := os.WriteFile(path, []byte("addr: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foundation.yml")

	original := DefaultConfig()
	original.Secret = "a-long-enough-secret"
	original.FAQMode = "independent"
	original.FeaturedInterval = 12 * time.Second
	if err := original.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *original {
		t.Errorf("loaded %+v, want %+v", loaded, original)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, "addr is required"},
		{"bad mode", func(c *Config) { c.FAQMode = "carousel" }, "faq_mode"},
		{"zero interval", func(c *Config) { c.CarouselInterval = 0 }, "carousel_interval"},
		{"negative featured", func(c *Config) { c.FeaturedInterval = -time.Second }, "featured_interval"},
		{"sub-millisecond interval", func(c *Config) { c.CarouselInterval = 500 * time.Microsecond }, "carousel_interval must be at least 1ms"},
		{"short secret", func(c *Config) { c.Secret = "short" }, "secret"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestValidate_FractionalIntervals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CarouselInterval = 1500 * time.Millisecond
	cfg.FeaturedInterval = time.Millisecond
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = ""
	cfg.LogFormat = "xml"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "addr") || !strings.Contains(err.Error(), "log_format") {
		t.Errorf("Validate() = %v", err)
	}
}
