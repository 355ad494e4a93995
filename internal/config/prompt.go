package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
█▀▄▀█ █▀█ █▀▄▀█ █▀▀ █▄ █ ▀█▀ █ █ █▀▄▀█
█ ▀ █ █▄█ █ ▀ █ ██▄ █ ▀█  █  █▄█ █ ▀ █`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Driver                string
	DailyFocusMinutes     int
	DefaultSessionMinutes int
}

// WithPromptConfig returns an Option that asks for the main settings when no
// config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure momentum for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'momentum edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Daily focus goal").
				Options(
					huh.NewOption("1 hour", 60),
					huh.NewOption("2 hours", DefaultDailyFocus).Selected(true),
					huh.NewOption("3 hours", 180),
					huh.NewOption("4 hours", 240),
				).
				Value(&opts.DailyFocusMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Default focus session length").
				Options(
					huh.NewOption("25 minutes", DefaultSessionMinutes).Selected(true),
					huh.NewOption("50 minutes", 50),
					huh.NewOption("90 minutes", 90),
				).
				Value(&opts.DefaultSessionMinutes),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("bolt (single file, one process at a time)", "bolt").Selected(true),
					huh.NewOption("sqlite (shared with the API server)", "sqlite"),
				).
				Value(&opts.Driver),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Goals.DailyFocusMinutes = opts.DailyFocusMinutes
	c.Goals.DefaultSessionMinutes = opts.DefaultSessionMinutes
	c.Storage.Driver = opts.Driver
}
