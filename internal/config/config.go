package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPixels     = 600
	DefaultHesitation = 0
	DefaultDotSize    = 6
	DefaultFrontend   = FrontendGUI
	DefaultTheme      = "paper"
	DefaultHistory    = 600
)

const (
	FrontendTUI = "tui"
	FrontendGUI = "gui"
)

var (
	ErrInvalidPixels     = errors.New("config: pixels must be positive")
	ErrInvalidHesitation = errors.New("config: hesitation must not be negative")
	ErrInvalidFrontend   = errors.New("config: unknown frontend")
	ErrInvalidDotSize    = errors.New("config: dot size must not be negative")
)

type Config struct {
	Pixels       int    `yaml:"pixels"`
	HesitationMs int    `yaml:"hesitation_ms"`
	Frontend     string `yaml:"frontend"`
	Theme        string `yaml:"theme"`
	DotSize      int    `yaml:"dot_size"`
	ShowGraph    bool   `yaml:"show_graph"`
	History      int    `yaml:"history"`
	LogFile      string `yaml:"log_file"`
	Autostart    bool   `yaml:"autostart"`
}

func DefaultConfig() *Config {
	return &Config{
		Pixels:       DefaultPixels,
		HesitationMs: DefaultHesitation,
		Frontend:     DefaultFrontend,
		Theme:        DefaultTheme,
		DotSize:      DefaultDotSize,
		ShowGraph:    true,
		History:      DefaultHistory,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads the YAML file at path on top of a copy of base. Keys absent
// from the file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Pixels <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPixels, c.Pixels)
	}
	if c.HesitationMs < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHesitation, c.HesitationMs)
	}
	if c.DotSize < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDotSize, c.DotSize)
	}
	switch c.Frontend {
	case FrontendTUI, FrontendGUI:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFrontend, c.Frontend)
	}
	return nil
}

func (c *Config) Hesitation() time.Duration {
	return time.Duration(c.HesitationMs) * time.Millisecond
}

// Border is the canvas inset; it matches the endpoint dot size so dots on the
// bounding box stay fully visible.
func (c *Config) Border() int {
	return c.DotSize
}
