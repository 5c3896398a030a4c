package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrConflict              = errors.New("conflict")
	ErrNotFound              = errors.New("not found")
	ErrReferential           = errors.New("referential constraint")
	ErrCycleDetected         = errors.New("cycle detected")
	ErrAccessDenied          = errors.New("access denied")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrStore                 = errors.New("store failure")
	ErrAlreadyLinked         = errors.New("already linked")
	ErrIncompatibleVariation = errors.New("incompatible variation")
)

// Error carries a kind from the taxonomy above, a message safe to show to
// callers and an optional underlying cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error { return newf(ErrValidation, format, args...) }
func Conflict(format string, args ...any) error   { return newf(ErrConflict, format, args...) }
func NotFound(format string, args ...any) error   { return newf(ErrNotFound, format, args...) }
func Referential(format string, args ...any) error {
	return newf(ErrReferential, format, args...)
}
func Cycle(format string, args ...any) error { return newf(ErrCycleDetected, format, args...) }
func Unauthorized(format string, args ...any) error {
	return newf(ErrUnauthorized, format, args...)
}
func AlreadyLinked(format string, args ...any) error {
	return newf(ErrAlreadyLinked, format, args...)
}
func IncompatibleVariation(format string, args ...any) error {
	return newf(ErrIncompatibleVariation, format, args...)
}

func AccessDenied() error {
	return &Error{Kind: ErrAccessDenied, Message: "You do not have permission to perform this action."}
}

// Store wraps a persistence failure. The cause is kept for logging and never
// rendered to callers.
func Store(err error, message string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: ErrStore, Message: message, Err: err}
}

// Rephrase keeps the kind of err and replaces its caller-facing message.
// Errors outside the taxonomy are returned unchanged.
func Rephrase(err error, format string, args ...any) error {
	var ae *Error
	if !errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: ae.Kind, Message: fmt.Sprintf(format, args...), Err: ae.Err}
}

// Message returns the caller-facing message of err, or "" when err is not
// part of the taxonomy.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return ""
}

func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool     { return errors.Is(err, ErrConflict) }
func IsAccessDenied(err error) bool { return errors.Is(err, ErrAccessDenied) }
