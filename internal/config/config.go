package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	Output  OutputConfig  `toml:"output"`
	History HistoryConfig `toml:"history"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type OutputConfig struct {
	// DefaultName is the filename stored for literal (non-file) payloads.
	DefaultName string `toml:"default_name"`
	// EncodedName is the default output path for encoded images.
	EncodedName string `toml:"encoded_name"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	DataDir string `toml:"data_dir"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			DefaultName: "output.txt",
			EncodedName: "encoded.png",
		},
		History: HistoryConfig{
			Enabled: true,
			DataDir: "~/.shh",
		},
	}
}

// Load reads a TOML config file and returns the parsed Config.
// If path is empty, the default location is tried; a missing default
// file just yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = expandHome("~/.shh/config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects config values the rest of the program would only
// trip over later.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q", c.Log.Format)
	}
	if c.Output.DefaultName == "" {
		return fmt.Errorf("output.default_name must not be empty")
	}
	if c.Output.EncodedName == "" {
		return fmt.Errorf("output.encoded_name must not be empty")
	}
	if c.History.Enabled && c.History.DataDir == "" {
		return fmt.Errorf("history.data_dir must be set when history is enabled")
	}
	return nil
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	return expandHome(path)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
