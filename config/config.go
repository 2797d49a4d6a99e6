// Package config loads the demo settings from YAML and watches the file for
// edits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/jumplab/player"
)

type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	ShowFPS   bool   `yaml:"show_fps"`
}

type ButtonConfig struct {
	// TransitionDuration is the look change time in seconds.
	TransitionDuration float64 `yaml:"transition_duration"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type Config struct {
	Window WindowConfig  `yaml:"window"`
	Player player.Tuning `yaml:"player"`
	Button ButtonConfig  `yaml:"button"`
	Audio  AudioConfig   `yaml:"audio"`
	Debug  bool          `yaml:"debug"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:     "jumplab",
			Width:     800,
			Height:    600,
			Resizable: true,
		},
		Player: player.DefaultTuning(),
		Button: ButtonConfig{TransitionDuration: 0.1},
		Audio:  AudioConfig{Enabled: true, Volume: 0.5},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value; a missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
