package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]*Config{
	"default": {
		Pixels: 600, HesitationMs: 0, Frontend: FrontendGUI, Theme: "paper",
		DotSize: 6, ShowGraph: true, History: DefaultHistory,
	},
	"trace": {
		Pixels: 600, HesitationMs: 250, Frontend: FrontendGUI, Theme: "paper",
		DotSize: 6, ShowGraph: true, History: DefaultHistory,
	},
	"fast": {
		Pixels: 600, HesitationMs: 0, Frontend: FrontendTUI, Theme: "mono",
		DotSize: 4, ShowGraph: false, History: 200, Autostart: true,
	},
	"large": {
		Pixels: 900, HesitationMs: 10, Frontend: FrontendGUI, Theme: "paper",
		DotSize: 6, ShowGraph: true, History: 1200,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
