// Package config loads cpm settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "cpm.toml"

// Config holds all cpm configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Logging  LoggingConfig  `toml:"logging"`
	Store    StoreConfig    `toml:"store"`
	Serve    ServeConfig    `toml:"serve"`
}

// ScheduleConfig controls how a network is scheduled and reported.
type ScheduleConfig struct {
	Format    string   `toml:"format"` // csv, json or empty for auto
	Select    string   `toml:"select"` // duration or count
	OneBased  bool     `toml:"one_based"`
	Roots     []string `toml:"roots"`
	Terminals []string `toml:"terminals"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// StoreConfig locates the run archive.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// ServeConfig controls the HTTP viewer.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Schedule: ScheduleConfig{
			Select: "duration",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Store: StoreConfig{
			Dir: ".cpm",
		},
		Serve: ServeConfig{
			Addr: "127.0.0.1:7272",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults;
// an empty path means DefaultFile.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("parse config: unknown key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
