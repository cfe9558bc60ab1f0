package apperr

import (
	"errors"
	"fmt"
)

// 错误码定义
const (
	CodeAuthentication = "ERR_AUTHENTICATION"
	CodeAuthorization  = "ERR_AUTHORIZATION"
	CodeNotFound       = "ERR_NOT_FOUND"
	CodeValidation     = "ERR_VALIDATION"
	CodeBusinessRule   = "ERR_BUSINESS_RULE"
	CodeInternal       = "ERR_INTERNAL"
)

// Error is the error type surfaced to the command boundary.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NotFound builds the "<Entity> not found" error.
func NotFound(entity string) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity))
}

// Validation builds a validation error.
func Validation(format string, args ...any) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// BusinessRule builds a business rule violation.
func BusinessRule(message string) *Error {
	return New(CodeBusinessRule, message)
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return Wrap(CodeInternal, "", err)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}
