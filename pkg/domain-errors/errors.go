// Package errors defines coded domain errors shared by services and transports.
//
// Services return these (usually wrapping an infrastructure error) and the
// HTTP layer maps the code to a status without inspecting messages.
package errors

import (
	stderrors "errors"
)

// Code classifies a domain error.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeValidation         Code = "validation_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeUnsupported        Code = "unsupported"
	CodeRateLimited        Code = "rate_limited"
	CodeTimeout            Code = "timeout"
	CodeUnavailable        Code = "unavailable"
	CodeInternal           Code = "internal_error"
)

// Error is a domain error carrying a Code and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying error.
// A nil err yields nil.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// As returns the outermost domain error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost domain error, or CodeInternal.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether any domain error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !stderrors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// Is reports whether the outermost domain error in err's chain has code.
func Is(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}
