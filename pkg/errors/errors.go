// Package errors defines the coded errors surfaced by conductor.
//
// Every failure that reaches the command line carries an ErrorCode so that
// tests and callers can match on the kind of failure rather than its text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Project discovery and materialization
	ErrProjectNotFound   ErrorCode = "PROJECT_NOT_FOUND"
	ErrNameResolution    ErrorCode = "NAME_RESOLUTION"
	ErrAliasDerivation   ErrorCode = "ALIAS_DERIVATION"
	ErrDestinationExists ErrorCode = "DESTINATION_EXISTS"
	ErrTransform         ErrorCode = "TRANSFORM"
	ErrComposeLoad       ErrorCode = "COMPOSE_LOAD"
	ErrExternalCommand   ErrorCode = "EXTERNAL_COMMAND"

	// FileSystem errors
	ErrDirRead   ErrorCode = "DIR_READ"
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// ConductorError represents a structured error with code and details
type ConductorError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ConductorError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ConductorError) Unwrap() error {
	return e.Wrapped
}

// Is matches any ConductorError carrying the same code.
func (e *ConductorError) Is(target error) bool {
	var targetErr *ConductorError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ConductorError with the given code and message
func New(code ErrorCode, message string) *ConductorError {
	return &ConductorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ConductorError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ConductorError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *ConductorError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ConductorError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *ConductorError) WithDetail(key string, value interface{}) *ConductorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if any error in the chain has the given code
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var ce *ConductorError
		if !errors.As(err, &ce) {
			return false
		}
		if ce.Code == code {
			return true
		}
		err = ce.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	var ce *ConductorError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ConductorError
func GetErrorDetails(err error) map[string]interface{} {
	var ce *ConductorError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
