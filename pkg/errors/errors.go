// Package errors defines the failures giab reports and how they map onto
// its process exit status.
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrTimeout matches any bounded wait that ran out of time.
var ErrTimeout = errors.New("operation timeout")

// Error is implemented by every typed failure in this package.
type Error interface {
	error
	Code() string
	Message() string
	Unwrap() error
}

// BaseError carries the code, message, cause and creation stack shared by
// the typed failures.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

func (e *BaseError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

// Code returns one of the Code* constants.
func (e *BaseError) Code() string { return e.code }

// Message returns the message without the cause.
func (e *BaseError) Message() string { return e.message }

// Unwrap returns the cause, if any.
func (e *BaseError) Unwrap() error { return e.cause }

// Stack returns the program counters captured at construction.
func (e *BaseError) Stack() []uintptr { return e.stack }

const maxStackDepth = 32

// captureStack records the caller of the constructor that calls it.
func captureStack(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// StackTrace renders the captured stack one "function\n\tfile:line" per
// frame, leaving out the Go runtime.
func (e *BaseError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		f, more := frames.Next()
		if !strings.HasPrefix(f.Function, "runtime.") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		}
		if !more {
			return b.String()
		}
	}
}

// ValidationError is an unusable setting from the config file or flags.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a validation error for field.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{
			code:    CodeValidation,
			message: message,
			stack:   captureStack(1),
		},
		Field: field,
		Value: value,
	}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid setting: " + e.message
	}
	return fmt.Sprintf("invalid setting %s: %s", e.Field, e.message)
}

// TimeoutError ends a wait that was given a deadline.
type TimeoutError struct {
	*BaseError
	Operation string
	Duration  string
}

// NewTimeoutError creates a timeout error for operation after duration.
func NewTimeoutError(operation, duration string) *TimeoutError {
	msg := "operation timeout"
	if operation != "" {
		msg = operation + " timeout"
	}
	return &TimeoutError{
		BaseError: &BaseError{
			code:    CodeTimeout,
			message: msg,
			cause:   ErrTimeout,
			stack:   captureStack(1),
		},
		Operation: operation,
		Duration:  duration,
	}
}

func (e *TimeoutError) Error() string {
	if e.Duration == "" {
		return e.message
	}
	return fmt.Sprintf("%s after %s", e.message, e.Duration)
}
