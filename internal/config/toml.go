// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Storage  StorageConfig  `toml:"storage"`
	Publish  PublishConfig  `toml:"publish"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Curriculum    *string  `toml:"curriculum"`
	ContentLength *int     `toml:"content-length"`
	WordLength    *int     `toml:"word-length"`
	FocusWeight   *float64 `toml:"focus-weight"`
	OnFinish      *string  `toml:"on-finish"`
}

// StorageConfig selects where training history is kept.
type StorageConfig struct {
	Backend *string `toml:"backend"`
	Path    *string `toml:"path"`
}

// PublishConfig enables announcing records on NATS.
type PublishConfig struct {
	NatsURL *string `toml:"nats-url"`
	Subject *string `toml:"subject"`
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
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
