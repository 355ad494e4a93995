package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/momentum/internal/apperr"
	"github.com/ayoisaiah/momentum/internal/config"
	"github.com/ayoisaiah/momentum/internal/testutil"
)

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	_, err = os.Stat(configPath)
	require.NoError(t, err, "default config should be written")

	assert.NotEmpty(t, cfg.User.ID)
	assert.Equal(t, config.DefaultDriver, cfg.Storage.Driver)
	assert.Equal(t, config.DefaultDailyFocus, cfg.Goals.DailyFocusMinutes)
	assert.Equal(t, config.DefaultSessionMinutes, cfg.Goals.DefaultSessionMinutes)
	assert.Zero(t, cfg.Streak.WindowDays)
	assert.Equal(t, config.DefaultHeatmapWeeks, cfg.Heatmap.Weeks)
	assert.Equal(t, config.DefaultLogLevel, cfg.Settings.LogLevel)
	assert.True(t, cfg.Display.DarkTheme)
	assert.Equal(t, config.DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, configPath, cfg.System.ConfigPath)

	// reading the written file gives the same values
	again, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, testutil.CopyFile("testdata/modified_config.yml", configPath))

	cfg, err := config.New(config.WithViperConfig(configPath))
	require.NoError(t, err)

	want := &config.Config{
		User:    config.UserConfig{ID: "ada"},
		Storage: config.StorageConfig{Driver: "sqlite"},
		Goals: config.GoalsConfig{
			DailyFocusMinutes:     180,
			DefaultSessionMinutes: 50,
		},
		Streak:  config.StreakConfig{WindowDays: 90},
		Heatmap: config.HeatmapConfig{Weeks: 26},
		Settings: config.SettingsConfig{
			Cmd:            "notify-send done",
			LogLevel:       "debug",
			TwentyFourHour: true,
		},
		Display: config.DisplayConfig{DarkTheme: false},
		Server:  config.ServerConfig{Port: 8080},
		System:  config.SystemConfig{ConfigPath: configPath},
	}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "15:04", cfg.TimeFormat())
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			User:    config.UserConfig{ID: "ada"},
			Storage: config.StorageConfig{Driver: "bolt"},
			Goals: config.GoalsConfig{
				DailyFocusMinutes:     120,
				DefaultSessionMinutes: 25,
			},
			Heatmap: config.HeatmapConfig{Weeks: 12},
			Server:  config.ServerConfig{Port: 1111},
		}
	}

	require.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"empty user", func(c *config.Config) { c.User.ID = " " }},
		{"unknown driver", func(c *config.Config) { c.Storage.Driver = "postgres" }},
		{"zero goal", func(c *config.Config) { c.Goals.DailyFocusMinutes = 0 }},
		{"goal over a day", func(c *config.Config) { c.Goals.DailyFocusMinutes = 1441 }},
		{"session too long", func(c *config.Config) { c.Goals.DefaultSessionMinutes = 481 }},
		{"negative window", func(c *config.Config) { c.Streak.WindowDays = -1 }},
		{"too many weeks", func(c *config.Config) { c.Heatmap.Weeks = 53 }},
		{"no weeks", func(c *config.Config) { c.Heatmap.Weeks = 0 }},
		{"port out of range", func(c *config.Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *config.Config) { c.Settings.LogLevel = "loud" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)

			err := c.Validate()
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err), err.Error())
		})
	}
}

func TestCLIOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, testutil.CopyFile("testdata/modified_config.yml", configPath))

	set := flag.NewFlagSet("momentum", flag.ContinueOnError)
	set.String("user", "", "")
	set.String("driver", "", "")
	set.String("session-cmd", "", "")
	set.String("log-level", "", "")
	set.Uint("port", 0, "")
	set.Int("weeks", 0, "")

	require.NoError(t, set.Parse([]string{
		"--user", "grace",
		"--driver", "BOLT",
		"--weeks", "4",
	}))

	ctx := cli.NewContext(&cli.App{}, set, nil)

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, "grace", cfg.User.ID)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.Equal(t, 4, cfg.Heatmap.Weeks)
	// unset flags keep file values
	assert.Equal(t, uint(8080), cfg.Server.Port)
	assert.Equal(t, "notify-send done", cfg.Settings.Cmd)
}

func TestInvalidConfigFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	require.NoError(t, os.WriteFile(configPath, []byte("heatmap:\n  weeks: 99\n"), 0o600))

	_, err := config.New(config.WithViperConfig(configPath))
	assert.True(t, apperr.IsValidation(err))
}
