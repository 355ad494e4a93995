package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration overrides.
type CLIOptions struct {
	User       string
	Driver     string
	SessionCmd string
	LogLevel   string
	Port       uint
	Weeks      int
}

// WithCLIConfig returns an Option that applies global and command flags.
// Flags that were not set leave the file values alone.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			User:       ctx.String("user"),
			Driver:     ctx.String("driver"),
			SessionCmd: ctx.String("session-cmd"),
			LogLevel:   ctx.String("log-level"),
		}

		if ctx.IsSet("port") {
			opts.Port = ctx.Uint("port")
		}

		if ctx.IsSet("weeks") {
			opts.Weeks = ctx.Int("weeks")
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if s := strings.TrimSpace(opts.User); s != "" {
		c.User.ID = s
	}

	if s := strings.TrimSpace(opts.Driver); s != "" {
		c.Storage.Driver = strings.ToLower(s)
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.LogLevel != "" {
		c.Settings.LogLevel = opts.LogLevel
	}

	if opts.Port != 0 {
		c.Server.Port = opts.Port
	}

	if opts.Weeks != 0 {
		c.Heatmap.Weeks = opts.Weeks
	}
}

// WithPaths returns an Option that records resolved file locations.
func WithPaths(dbPath, logPath string) Option {
	return func(c *Config) error {
		c.System.DBPath = dbPath
		c.System.LogPath = logPath

		return nil
	}
}
