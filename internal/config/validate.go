package config

import (
	"strings"

	"github.com/ayoisaiah/momentum/internal/heatmap"
	"github.com/ayoisaiah/momentum/internal/logging"
	"github.com/ayoisaiah/momentum/internal/session"
	"github.com/ayoisaiah/momentum/internal/timeutil"
)

const maxPort = 65535

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.User.ID) == "" {
		return errMissingUser
	}

	switch c.Storage.Driver {
	case "bolt", "sqlite":
	default:
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	if err := c.validateGoals(); err != nil {
		return err
	}

	if c.Streak.WindowDays < 0 {
		return errInvalidWindow.Fmt(c.Streak.WindowDays)
	}

	if c.Heatmap.Weeks < heatmap.MinWeeks || c.Heatmap.Weeks > heatmap.MaxWeeks {
		return errInvalidWeeks.Fmt(heatmap.MinWeeks, heatmap.MaxWeeks, c.Heatmap.Weeks)
	}

	if c.Server.Port == 0 || c.Server.Port > maxPort {
		return errInvalidPort.Fmt(c.Server.Port)
	}

	if _, err := logging.ParseLevel(c.Settings.LogLevel); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateGoals() error {
	minutesInADay := timeutil.HoursInADay * 60

	if c.Goals.DailyFocusMinutes < 1 || c.Goals.DailyFocusMinutes > minutesInADay {
		return errInvalidGoal.Fmt(1, minutesInADay, c.Goals.DailyFocusMinutes)
	}

	if c.Goals.DefaultSessionMinutes < session.MinDurationMinutes ||
		c.Goals.DefaultSessionMinutes > session.MaxDurationMinutes {
		return errInvalidSessionLength.Fmt(
			session.MinDurationMinutes,
			session.MaxDurationMinutes,
			c.Goals.DefaultSessionMinutes,
		)
	}

	return nil
}
