package typeset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-project configuration filename.
const ConfigFile = "mathview.yaml"

// Config represents the optional mathview.yaml configuration. A zero
// Config is valid and leaves every decision to widget props and engine
// defaults.
type Config struct {
	Engine     EngineConfig      `yaml:"engine"`
	Mode       string            `yaml:"mode,omitempty"`
	Hide       string            `yaml:"hide,omitempty"`
	Conversion ConversionConfig  `yaml:"conversion"`
	Macros     map[string]string `yaml:"macros,omitempty"`
	Delimiters []DelimiterPair   `yaml:"delimiters,omitempty"`
}

// EngineConfig selects which engine generation to load and, for scripted
// engines, where the script lives.
type EngineConfig struct {
	Version string `yaml:"version,omitempty"`
	Source  string `yaml:"source,omitempty"`
}

// ConversionConfig names the default conversion function for pre-mode
// boundaries.
type ConversionConfig struct {
	Function string  `yaml:"function,omitempty"`
	Display  bool    `yaml:"display,omitempty"`
	Scale    float64 `yaml:"scale,omitempty"`
}

// DelimiterPair declares a math delimiter recognized when scanning
// post-mode content, for example \( and \).
type DelimiterPair struct {
	Open    string `yaml:"open"`
	Close   string `yaml:"close"`
	Display bool   `yaml:"display,omitempty"`
}

// LoadConfig reads mathview.yaml from dir if present. A missing file
// yields a zero Config.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks enum-valued fields and delimiter pairs so a bad file
// fails at load rather than at first use.
func (c *Config) Validate() error {
	if _, err := ParseMode(c.Mode); err != nil {
		return fmt.Errorf("%s: %w", ConfigFile, err)
	}
	if _, err := ParseHide(c.Hide); err != nil {
		return fmt.Errorf("%s: %w", ConfigFile, err)
	}
	if c.Conversion.Scale < 0 {
		return fmt.Errorf("%s: conversion.scale must not be negative (got %v)", ConfigFile, c.Conversion.Scale)
	}
	for i, d := range c.Delimiters {
		if strings.TrimSpace(d.Open) == "" || strings.TrimSpace(d.Close) == "" {
			return fmt.Errorf("%s: delimiters[%d] needs both open and close", ConfigFile, i)
		}
	}
	return nil
}

// RenderMode resolves the configured mode string. Unknown values are
// rejected by Validate, so parse failures fold to the default here.
func (c *Config) RenderMode() Mode {
	m, _ := ParseMode(c.Mode)
	return m
}

// HideUntil resolves the configured hide policy string.
func (c *Config) HideUntil() HidePolicy {
	p, _ := ParseHide(c.Hide)
	return p
}

// ConversionSpec resolves the configured default conversion.
func (c *Config) ConversionSpec() Conversion {
	return Conversion{
		Function: strings.TrimSpace(c.Conversion.Function),
		Options: ConvertOptions{
			Display: c.Conversion.Display,
			Scale:   c.Conversion.Scale,
		},
	}
}
