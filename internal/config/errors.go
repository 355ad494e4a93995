package config

import "github.com/ayoisaiah/momentum/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errMissingUser = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "user.id must not be empty",
	}

	errUnknownDriver = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "storage.driver must be bolt or sqlite, got %q",
	}

	errInvalidGoal = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "goals.daily_focus_minutes must be between %d and %d, got %d",
	}

	errInvalidSessionLength = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "goals.default_session_minutes must be between %d and %d, got %d",
	}

	errInvalidWindow = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "streak.window_days must not be negative, got %d",
	}

	errInvalidWeeks = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "heatmap.weeks must be between %d and %d, got %d",
	}

	errInvalidPort = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "server.port must be between 1 and 65535, got %d",
	}
)
