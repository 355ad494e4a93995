package session

import "github.com/ayoisaiah/momentum/internal/apperr"

var (
	errInvalidDuration = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "session duration must be between %d and %d minutes, got %d",
	}

	errMissingUser = &apperr.Error{
		Kind:    apperr.KindValidation,
		Message: "a user id is required",
	}

	errInvalidTransition = &apperr.Error{
		Kind:    apperr.KindInvalidState,
		Message: "cannot %s a %s session",
	}

	// ErrAlreadyRunning is returned by Store.Create when the user already has
	// an active or paused session.
	ErrAlreadyRunning = &apperr.Error{
		Kind:    apperr.KindConflict,
		Message: "a focus session is already in progress: complete or cancel it first",
	}

	// ErrNotFound is returned when the session does not exist for the user.
	ErrNotFound = &apperr.Error{
		Kind:    apperr.KindNotFound,
		Message: "session not found",
	}
)
