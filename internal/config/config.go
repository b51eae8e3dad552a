package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "moodplayer"

// Config is the application configuration loaded from TOML files.
type Config struct {
	// Playlist file (.m3u/.m3u8) or folder opened when no source is given.
	DefaultSource string `koanf:"default_source"`

	Playback PlaybackConfig `koanf:"playback"`
	Log      LogConfig      `koanf:"log"`
	State    StateConfig    `koanf:"state"`
	MPRIS    MPRISConfig    `koanf:"mpris"`
	Notify   NotifyConfig   `koanf:"notify"`
}

// PlaybackConfig holds the initial engine settings.
type PlaybackConfig struct {
	Volume           float64 `koanf:"volume"             default:"80"   validate:"gte=0,lte=100"`
	Shuffle          bool    `koanf:"shuffle"`
	Repeat           bool    `koanf:"repeat"`
	SampleIntervalMs int     `koanf:"sample_interval_ms" default:"1000" validate:"gte=100,lte=5000"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Output     string `koanf:"output"      default:"file" validate:"oneof=file stdout stderr"`
	Level      string `koanf:"level"       default:"info" validate:"oneof=debug info warn error"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb" default:"5"    validate:"gte=1"`
	MaxBackups int    `koanf:"max_backups" default:"3"    validate:"gte=0"`
}

// StateConfig holds session persistence configuration.
type StateConfig struct {
	Enabled bool   `koanf:"enabled" default:"true"`
	Path    string `koanf:"path"`
}

// MPRISConfig holds desktop media key integration configuration.
type MPRISConfig struct {
	Enabled bool `koanf:"enabled" default:"true"`
}

// NotifyConfig holds desktop notification configuration.
type NotifyConfig struct {
	// Post a notification when the track changes.
	Enabled bool `koanf:"enabled"`
}

// Load reads the configuration files, lowest priority first, then the
// explicit path if one is given. Missing default files are skipped; a
// missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "load config %s", path)
			}
		}
	}
	if explicit != "" {
		if err := k.Load(file.Provider(expandPath(explicit)), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "load config %s", explicit)
		}
	}

	// Defaults go in first so that explicit zero values in files survive.
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set config defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	cfg.DefaultSource = expandPath(cfg.DefaultSource)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.State.Path = expandPath(cfg.State.Path)
	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	return nil
}

// fillPaths sets XDG locations for the log file and state database.
func (c *Config) fillPaths() error {
	if c.Log.File == "" {
		p, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
		if err != nil {
			return errors.Wrap(err, "resolve log file path")
		}
		c.Log.File = p
	}
	if c.State.Path == "" {
		p, err := xdg.DataFile(filepath.Join(appName, "state.db"))
		if err != nil {
			return errors.Wrap(err, "resolve state path")
		}
		c.State.Path = p
	}
	return nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/moodplayer/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
