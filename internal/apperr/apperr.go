// Package apperr defines the typed errors surfaced by momentum
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so that the CLI and the HTTP API can react to it
// without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindInvalidState
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not found"
	case KindInvalidState:
		return "invalid state"
	default:
		return "internal"
	}
}

// Error is an application error.
type Error struct {
	Cause   error
	Message string
	Kind    Kind
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return e.Message + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, ErrConflict) holds for every conflict regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.Kind == t.Kind
}

// Fmt returns a copy of the error with its message formatted with args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Kind:    e.Kind,
		Message: fmt.Sprintf(e.Message, args...),
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error that wraps cause.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Kind:    e.Kind,
		Message: e.Message,
		Cause:   cause,
	}
}

var (
	ErrValidation   = &Error{Kind: KindValidation, Message: "invalid input"}
	ErrConflict     = &Error{Kind: KindConflict, Message: "conflict"}
	ErrNotFound     = &Error{Kind: KindNotFound, Message: "not found"}
	ErrInvalidState = &Error{Kind: KindInvalidState, Message: "invalid state"}
)

// KindOf returns the kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return KindInternal
}

// IsValidation reports whether err was caused by malformed input.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

// IsNotFound reports whether err is a not-found error. A transition requested
// from the wrong state is reported the same way.
func IsNotFound(err error) bool {
	k := KindOf(err)

	return k == KindNotFound || k == KindInvalidState
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}
