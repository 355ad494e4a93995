// Package config loads momentum settings from the config file and the command
// line
package config

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"
)

type (
	// Config holds all configuration settings.
	Config struct {
		User     UserConfig     `mapstructure:"user"`
		Storage  StorageConfig  `mapstructure:"storage"`
		Goals    GoalsConfig    `mapstructure:"goals"`
		Streak   StreakConfig   `mapstructure:"streak"`
		Heatmap  HeatmapConfig  `mapstructure:"heatmap"`
		Settings SettingsConfig `mapstructure:"settings"`
		Display  DisplayConfig  `mapstructure:"display"`
		Server   ServerConfig   `mapstructure:"server"`
		System   SystemConfig   `mapstructure:"-"`
	}

	// UserConfig identifies whose data commands operate on.
	UserConfig struct {
		ID string `mapstructure:"id"`
	}

	// StorageConfig selects the database backend.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// GoalsConfig holds daily targets.
	GoalsConfig struct {
		DailyFocusMinutes     int `mapstructure:"daily_focus_minutes"`
		DefaultSessionMinutes int `mapstructure:"default_session_minutes"`
	}

	// StreakConfig bounds streak history. Zero reads everything.
	StreakConfig struct {
		WindowDays int `mapstructure:"window_days"`
	}

	// HeatmapConfig holds heatmap defaults.
	HeatmapConfig struct {
		Weeks int `mapstructure:"weeks"`
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		Cmd            string `mapstructure:"cmd"`
		LogLevel       string `mapstructure:"log_level"`
		TwentyFourHour bool   `mapstructure:"24hr_clock"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// ServerConfig holds HTTP API settings.
	ServerConfig struct {
		Port uint `mapstructure:"port"`
	}

	// SystemConfig holds resolved file locations. It is never read from the
	// config file.
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		LogPath    string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a Config, applies options in order and validates the result.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// TimeFormat returns the layout for clock times honouring the 24-hour
// setting.
func (c *Config) TimeFormat() string {
	if c.Settings.TwentyFourHour {
		return "15:04"
	}

	return "03:04 PM"
}

// defaultUserID is the local account name, or "local" when it cannot be
// determined.
func defaultUserID() string {
	if u, err := user.Current(); err == nil {
		if name := strings.TrimSpace(u.Username); name != "" {
			return name
		}
	}

	return "local"
}

// String is used by debug logging.
func (c *Config) String() string {
	return fmt.Sprintf(
		"user=%s driver=%s goal=%dm session=%dm window=%dd weeks=%d port=%d",
		c.User.ID,
		c.Storage.Driver,
		c.Goals.DailyFocusMinutes,
		c.Goals.DefaultSessionMinutes,
		c.Streak.WindowDays,
		c.Heatmap.Weeks,
		c.Server.Port,
	)
}
