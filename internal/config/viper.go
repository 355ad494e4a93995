package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config file keys.
const (
	keyUserID                = "user.id"
	keyStorageDriver         = "storage.driver"
	keyDailyFocusMinutes     = "goals.daily_focus_minutes"
	keyDefaultSessionMinutes = "goals.default_session_minutes"
	keyStreakWindowDays      = "streak.window_days"
	keyHeatmapWeeks          = "heatmap.weeks"
	keySessionCmd            = "settings.cmd"
	keyLogLevel              = "settings.log_level"
	keyTwentyFourHour        = "settings.24hr_clock"
	keyDarkTheme             = "display.dark_theme"
	keyServerPort            = "server.port"
)

// Default values written to a new config file.
const (
	DefaultDriver              = "bolt"
	DefaultDailyFocus          = 120
	DefaultSessionMinutes      = 25
	DefaultHeatmapWeeks        = 12
	DefaultLogLevel            = "info"
	DefaultServerPort     uint = 1111
)

// WithViperConfig returns an Option that loads configuration from the YAML
// file at configPath. A missing file is created with default values.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c, configPath)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c, configPath)
	}
}

// setupViper registers defaults. Values already set on c, for example by the
// first-run prompt, take precedence.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyUserID, defaultUserID())
	v.SetDefault(keyStorageDriver, DefaultDriver)
	v.SetDefault(keyDailyFocusMinutes, DefaultDailyFocus)
	v.SetDefault(keyDefaultSessionMinutes, DefaultSessionMinutes)
	v.SetDefault(keyStreakWindowDays, 0)
	v.SetDefault(keyHeatmapWeeks, DefaultHeatmapWeeks)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyServerPort, DefaultServerPort)

	if c.User.ID != "" {
		v.SetDefault(keyUserID, c.User.ID)
	}

	if c.Storage.Driver != "" {
		v.SetDefault(keyStorageDriver, c.Storage.Driver)
	}

	if c.Goals.DailyFocusMinutes != 0 {
		v.SetDefault(keyDailyFocusMinutes, c.Goals.DailyFocusMinutes)
	}

	if c.Goals.DefaultSessionMinutes != 0 {
		v.SetDefault(keyDefaultSessionMinutes, c.Goals.DefaultSessionMinutes)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config, configPath string) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	c.System.ConfigPath = configPath

	return nil
}
