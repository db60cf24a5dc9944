package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Code extracts the AppError code from an error chain, or CodeInternal
// when the error carries no code.
func Code(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Error code constants
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInvalidArg   = "INVALID_ARGUMENT"
	CodeExternal     = "EXTERNAL_ERROR"     // external service call failed
	CodeConflict     = "CONFLICT"           // Resource already exists (UNIQUE violation)
	CodeDependency   = "DEPENDENCY_ERROR"   // Foreign key constraint violation
	CodePrecondition = "PRECONDITION_FAILED" // entity not in a state that allows the operation
	CodeTimeout      = "TIMEOUT"            // bounded wait exceeded
	CodeUnavailable  = "UNAVAILABLE"        // service cannot accept work right now
)
