// Package config provides configuration helpers and TOML parsing.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analyzer AnalyzerConfig `toml:"analyzer"`
}

// AnalyzerConfig maps text analyzer settings. Unset keys stay nil.
type AnalyzerConfig struct {
	Mode  *string `toml:"mode"`
	Top   *int    `toml:"top"`
	WPM   *int    `toml:"wpm"`
	Color *string `toml:"color"`
	JSON  *bool   `toml:"json"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
