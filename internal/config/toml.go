// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Measure MeasureConfig `toml:"measure"`
}

// MeasureConfig maps measurement settings.
type MeasureConfig struct {
	NetHeight *float64 `toml:"net-height"`
	Net       *string  `toml:"net"`
	Palette   []string `toml:"palette"`
	FrameStep *float64 `toml:"frame-step"`
}

// NetPresets maps net names to heights in metres.
var NetPresets = map[string]float64{
	"men":   2.43,
	"women": 2.24,
}

// NetPresetHeight looks up a preset by name.
func NetPresetHeight(name string) (float64, error) {
	h, ok := NetPresets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		names := make([]string, 0, len(NetPresets))
		for n := range NetPresets {
			names = append(names, n)
		}
		sort.Strings(names)
		return 0, fmt.Errorf("unknown net %q (available: %s)", name, strings.Join(names, ", "))
	}
	return h, nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
