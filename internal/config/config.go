// Package config loads the foundation site configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/pthm/hxpanel/widget/disclosure"
)

// EnvPrefix is the prefix of environment overrides: FOUNDATION_ADDR -> addr.
const EnvPrefix = "FOUNDATION_"

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "foundation.yml"

// Config holds the site settings.
type Config struct {
	Addr             string        `yaml:"addr" koanf:"addr"`
	Secret           string        `yaml:"secret" koanf:"secret"`
	FAQMode          string        `yaml:"faq_mode" koanf:"faq_mode"`
	CarouselInterval time.Duration `yaml:"carousel_interval" koanf:"carousel_interval"`
	FeaturedInterval time.Duration `yaml:"featured_interval" koanf:"featured_interval"`
	ContentPath      string        `yaml:"content_path" koanf:"content_path"`
	LogLevel         string        `yaml:"log_level" koanf:"log_level"`
	LogFormat        string        `yaml:"log_format" koanf:"log_format"`
}

// DefaultConfig returns the settings used when nothing overrides them.
// Secret is empty: serve generates a random one, which is fine for a single
// process but invalidates rendered pages on restart.
func DefaultConfig() *Config {
	return &Config{
		Addr:             ":8080",
		FAQMode:          disclosure.Accordion.String(),
		CarouselInterval: 5 * time.Second,
		FeaturedInterval: 8 * time.Second,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// Load reads configuration from the YAML file at path, then overlays
// FOUNDATION_* environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if _, err := disclosure.ParseMode(c.FAQMode); err != nil {
		errs = append(errs, fmt.Errorf("invalid faq_mode %q: must be accordion or independent", c.FAQMode))
	}
	if c.CarouselInterval < time.Millisecond {
		errs = append(errs, errors.New("carousel_interval must be at least 1ms"))
	}
	if c.FeaturedInterval < time.Millisecond {
		errs = append(errs, errors.New("featured_interval must be at least 1ms"))
	}
	if c.Secret != "" && len(c.Secret) < 16 {
		errs = append(errs, errors.New("secret must be at least 16 characters"))
	}
	if !validLevels[c.LogLevel] {
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel))
	}
	if !validFormats[c.LogFormat] {
		errs = append(errs, fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat))
	}

	return errors.Join(errs...)
}

// Mode returns the parsed FAQ disclosure mode. Call after Validate.
func (c *Config) Mode() disclosure.Mode {
	m, err := disclosure.ParseMode(c.FAQMode)
	if err != nil {
		return disclosure.Accordion
	}
	return m
}
