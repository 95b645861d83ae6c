package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/neilberkman/pomo/internal/core/models"
)

// Defaults follow the classic Pomodoro cadence.
const (
	DefaultWorkMinutes             = 25
	DefaultShortBreakMinutes       = 5
	DefaultLongBreakMinutes        = 15
	DefaultSessionsBeforeLongBreak = 4
)

// Hooks holds optional shell commands run on lifecycle events. Each is a
// mustache template; see hooks.TemplateData for the available fields.
type Hooks struct {
	OnStart         string `toml:"on_start"`
	OnWorkComplete  string `toml:"on_work_complete"`
	OnBreakComplete string `toml:"on_break_complete"`
}

// Config holds timer durations, the long-break cadence, and the state
// file location.
type Config struct {
	WorkMinutes             int    `toml:"work_minutes"`
	ShortBreakMinutes       int    `toml:"short_break_minutes"`
	LongBreakMinutes        int    `toml:"long_break_minutes"`
	SessionsBeforeLongBreak int    `toml:"sessions_before_long_break"`
	StatePath               string `toml:"state_path"`
	Hooks                   Hooks  `toml:"hooks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WorkMinutes:             DefaultWorkMinutes,
		ShortBreakMinutes:       DefaultShortBreakMinutes,
		LongBreakMinutes:        DefaultLongBreakMinutes,
		SessionsBeforeLongBreak: DefaultSessionsBeforeLongBreak,
		StatePath:               defaultStatePath(),
	}
}

// Load reads config from path, or from ~/.config/pomo/config.toml when
// path is empty. A missing file is not an error; defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil // Use defaults
		}
		path = filepath.Join(home, ".config", "pomo", "config.toml")
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to stat config: %w", err)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.StatePath == "" {
		cfg.StatePath = defaultStatePath()
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return cfg, fmt.Errorf("invalid config %s: %v", path, errs[0])
	}

	return cfg, nil
}

// Validate returns every violation in the configuration. It is a pure
// function of the config value.
func (c Config) Validate() []error {
	var errs []error
	if c.WorkMinutes <= 0 {
		errs = append(errs, fmt.Errorf("work_minutes must be positive, got %d", c.WorkMinutes))
	}
	if c.ShortBreakMinutes <= 0 {
		errs = append(errs, fmt.Errorf("short_break_minutes must be positive, got %d", c.ShortBreakMinutes))
	}
	if c.LongBreakMinutes <= 0 {
		errs = append(errs, fmt.Errorf("long_break_minutes must be positive, got %d", c.LongBreakMinutes))
	}
	if c.SessionsBeforeLongBreak <= 0 {
		errs = append(errs, fmt.Errorf("sessions_before_long_break must be positive, got %d", c.SessionsBeforeLongBreak))
	}
	return errs
}

// DurationSeconds returns the configured countdown length for a phase.
func (c Config) DurationSeconds(mode models.Mode) int {
	switch mode {
	case models.ModeShortBreak:
		return c.ShortBreakMinutes * 60
	case models.ModeLongBreak:
		return c.LongBreakMinutes * 60
	default:
		return c.WorkMinutes * 60
	}
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pomo-state.json"
	}
	return filepath.Join(home, ".config", "pomo", "state.json")
}
