package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPlotWidth   = 64
	DefaultPlotHeight  = 28
	DefaultProfileRows = 8
	DefaultTheme       = "viridis"
)

// Config holds the shell settings that are not part of the per-session plot
// state: where history lives, how large the terminal raster is, and how plots
// are displayed.
type Config struct {
	HistoryFile string `yaml:"history_file"`
	PlotWidth   int    `yaml:"plot_width"`
	PlotHeight  int    `yaml:"plot_height"`
	ProfileRows int    `yaml:"profile_rows"`
	Theme       string `yaml:"theme"`
	Viewer      bool   `yaml:"viewer"`
}

func DefaultConfig() *Config {
	return &Config{
		HistoryFile: defaultHistoryFile(),
		PlotWidth:   DefaultPlotWidth,
		PlotHeight:  DefaultPlotHeight,
		ProfileRows: DefaultProfileRows,
		Theme:       DefaultTheme,
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".amrplot_history"
	}
	return filepath.Join(home, ".amrplot_history")
}

// Load reads a YAML config file, with missing keys keeping their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
