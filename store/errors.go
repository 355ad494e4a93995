package store

import "github.com/ayoisaiah/momentum/internal/apperr"

var (
	errMomentumRunning = &apperr.Error{
		Kind:    apperr.KindConflict,
		Message: "is momentum already running? Only one instance can open the database at a time",
	}

	errUnknownDriver = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "unknown storage driver %q: expected bolt or sqlite",
	}

	errTaskNotFound = &apperr.Error{
		Kind:    apperr.KindNotFound,
		Message: "task not found",
	}

	errHabitNotFound = &apperr.Error{
		Kind:    apperr.KindNotFound,
		Message: "habit not found",
	}

	errHabitArchived = &apperr.Error{
		Kind:    apperr.KindInvalidState,
		Message: "habit %q is archived",
	}

	errConcurrentUpdate = &apperr.Error{
		Kind:    apperr.KindConflict,
		Message: "session was modified concurrently, please retry",
	}
)
