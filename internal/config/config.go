// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/marcovidal/horario/internal/timetable"
)

// Config holds the application configuration.
type Config struct {
	Storage  StorageConfig  `toml:"storage"`
	Sync     SyncConfig     `toml:"sync"`
	UI       UIConfig       `toml:"ui"`
	Schedule ScheduleConfig `toml:"schedule"`
}

// StorageConfig holds local database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// SyncConfig holds the shared document store settings. An empty path
// disables sync entirely; every remote operation then becomes a no-op hint.
type SyncConfig struct {
	Path string `toml:"path"` // e.g. a SQLite file on a shared mount
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "light", "dark" or "auto"
}

// ScheduleConfig optionally replaces the built-in slot schedule. When set,
// Slots must hold exactly one "HH:MM-HH:MM" range per timetable column,
// strictly increasing and non-overlapping.
type ScheduleConfig struct {
	Slots []string `toml:"slots"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "horario.db"
	}
	return filepath.Join(home, ".local", "share", "horario", "horario.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "horario", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Sync.Path = expandPath(cfg.Sync.Path)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HORARIO_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("HORARIO_SYNC_PATH"); v != "" {
		cfg.Sync.Path = v
	}
	if v := os.Getenv("HORARIO_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	switch c.UI.Theme {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("theme must be light, dark or auto, got %q", c.UI.Theme)
	}
	if len(c.Schedule.Slots) > 0 {
		if _, err := c.SlotTimes(); err != nil {
			return err
		}
	}
	return nil
}

// SlotTimes returns the slot schedule: the configured one when [schedule]
// is set, the built-in default otherwise.
func (c *Config) SlotTimes() ([]timetable.SlotTime, error) {
	if len(c.Schedule.Slots) == 0 {
		return timetable.DefaultSlotTimes[:], nil
	}
	if len(c.Schedule.Slots) != timetable.NumSlots {
		return nil, fmt.Errorf("schedule.slots needs exactly %d ranges, got %d",
			timetable.NumSlots, len(c.Schedule.Slots))
	}

	out := make([]timetable.SlotTime, len(c.Schedule.Slots))
	prevEnd := -1
	for i, raw := range c.Schedule.Slots {
		start, end, ok := strings.Cut(raw, "-")
		if !ok {
			return nil, fmt.Errorf("schedule.slots[%d] must be \"HH:MM-HH:MM\", got %q", i, raw)
		}
		if err := validateTime(start, fmt.Sprintf("schedule.slots[%d] start", i)); err != nil {
			return nil, err
		}
		if err := validateTime(end, fmt.Sprintf("schedule.slots[%d] end", i)); err != nil {
			return nil, err
		}
		startMin := timetable.TimeToMinutes(start)
		endMin := timetable.TimeToMinutes(end)
		if startMin >= endMin {
			return nil, fmt.Errorf("schedule.slots[%d] start must be before end", i)
		}
		if startMin < prevEnd {
			return nil, fmt.Errorf("schedule.slots[%d] overlaps the previous slot", i)
		}
		out[i] = timetable.SlotTime{Start: start, End: end}
		prevEnd = endMin
	}
	return out, nil
}

// validateTime checks if a time string is in HH:MM format.
func validateTime(t, field string) error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	hour := t[0:2]
	min := t[3:5]
	if !isDigits(hour) || !isDigits(min) {
		return fmt.Errorf("%s must be in HH:MM format, got %q", field, t)
	}
	return nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SyncEnabled reports whether a shared document store is configured.
func (c *Config) SyncEnabled() bool {
	return c.Sync.Path != ""
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
