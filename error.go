package skim

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Extraction failures.
const (
	EINVALID     = "invalid"
	EFETCH       = "fetch_failed"
	ETIMEOUT     = "timeout"
	EUNREACHABLE = "unreachable"
	EEMPTY       = "empty_content"
	ENOTREADABLE = "not_readable"
)

// Summarization failures.
const (
	EEMPTYINPUT           = "empty_input"
	ENOTCONFIGURED        = "not_configured"
	ETOOSHORT             = "too_short"
	EINFERENCEUNREACHABLE = "inference_unreachable"
	EINFERENCEFAILED      = "inference_failed"
	EINFERENCEREJECTED    = "inference_rejected"
)

// EINTERNAL is reported for any failure that was not classified.
const EINTERNAL = "internal"

// Error represents an application-specific error. Message is meant to be
// shown to the end user as is.
type Error struct {
	Code    string
	Message string

	// Status is the HTTP status reported by a remote service, if any.
	Status int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("skim error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("skim error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorStatus unwraps an application error and returns the remote status
// attached to it, or zero.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
