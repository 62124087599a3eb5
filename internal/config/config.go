package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Database      DatabaseConfig  `koanf:"database"`
	Scheduler     SchedulerConfig `koanf:"scheduler"`
	Notifications NotifyConfig    `koanf:"notifications"`
	Sounds        []Sound         `koanf:"sounds"`
	Dev           DevConfig       `koanf:"dev"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type SchedulerConfig struct {
	// DefaultIntervalMinutes seeds the create-group form.
	DefaultIntervalMinutes int `koanf:"default_interval_minutes"`
	Buffer                 int `koanf:"buffer"`
}

type NotifyConfig struct {
	Desktop bool `koanf:"desktop"`
	Bell    bool `koanf:"bell"`
}

// Sound is a catalog entry; actual playback is delegated to the notifier,
// which degrades to the terminal bell when nothing richer is available.
type Sound struct {
	ID   string `koanf:"id"`
	Name string `koanf:"name"`
}

type DevConfig struct {
	// Seed inserts the starter groups into an empty database.
	Seed bool `koanf:"seed"`
}

func Default() Config {
	return Config{
		Database:  DatabaseConfig{Path: ""},
		Scheduler: SchedulerConfig{DefaultIntervalMinutes: 5, Buffer: 16},
		Notifications: NotifyConfig{
			Desktop: false,
			Bell:    true,
		},
		Sounds: []Sound{
			{ID: "classic", Name: "Classic Ping"},
			{ID: "gentle", Name: "Gentle Bell"},
			{ID: "urgent", Name: "Urgent Alert"},
			{ID: "soft", Name: "Soft Chime"},
			{ID: "digital", Name: "Digital Beep"},
		},
		Dev: DevConfig{Seed: false},
	}
}

// DefaultPath is ~/.remloop/config.yaml; a missing file is not an error.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".remloop", "config.yaml")
}

// Load layers defaults, then the YAML config file if present, then
// REMLOOP_* environment variables (REMLOOP_DATABASE_PATH and friends).
func Load(path string) (Config, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"database.path":                      defaults.Database.Path,
		"scheduler.default_interval_minutes": defaults.Scheduler.DefaultIntervalMinutes,
		"scheduler.buffer":                   defaults.Scheduler.Buffer,
		"notifications.desktop":              defaults.Notifications.Desktop,
		"notifications.bell":                 defaults.Notifications.Bell,
		"dev.seed":                           defaults.Dev.Seed,
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("REMLOOP_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "REMLOOP_")), "_", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := defaults
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.Sounds) == 0 {
		cfg.Sounds = defaults.Sounds
	}
	if cfg.Scheduler.DefaultIntervalMinutes <= 0 {
		cfg.Scheduler.DefaultIntervalMinutes = defaults.Scheduler.DefaultIntervalMinutes
	}
	if cfg.Scheduler.Buffer <= 0 {
		cfg.Scheduler.Buffer = defaults.Scheduler.Buffer
	}
	return cfg, nil
}

// DatabasePath resolves the sqlite location, defaulting to
// ~/.remloop/remloop.db and creating the parent directory.
func (c Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".remloop")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dir, "remloop.db"), nil
}

// SoundName resolves a catalog id for display; unknown ids fall back to the
// id itself so settings never break on a stale selection.
func (c Config) SoundName(id string) string {
	for _, s := range c.Sounds {
		if s.ID == id {
			return s.Name
		}
	}
	return id
}
