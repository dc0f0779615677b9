// Package errors defines the application error taxonomy shared by the
// ingestion, query and admin components. Every error carries a code and an
// optional user-facing hint; an empty hint means the failure is silent.
package errors

import (
	"errors"
	"fmt"
)

// Standard error codes for the application.
const (
	CodeUnknown      = "UNKNOWN"
	CodeDatabase     = "DATABASE"
	CodeValidation   = "VALIDATION"
	CodeQuerySyntax  = "QUERY_SYNTAX"
	CodeConfig       = "CONFIG"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNoContent    = "NO_CONTENT"
)

// ApplicationError is the interface that all our custom errors implement.
type ApplicationError interface {
	error
	Code() string
	Hint() string
	Unwrap() error
}

// Error represents a basic application error.
type Error struct {
	code    string
	message string
	hint    string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Code() string {
	return e.code
}

// Hint is the text shown to the actor, empty when the failure stays silent.
func (e *Error) Hint() string {
	return e.hint
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if it doesn't.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// Hint returns the user-facing hint carried by err, if any.
func Hint(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Hint()
	}

	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

// IsSilent reports whether err should be dropped without replying.
func IsSilent(err error) bool {
	switch Code(err) {
	case CodeUnauthorized, CodeNoContent:
		return Hint(err) == ""
	default:
		return false
	}
}

func NewDatabaseError(message string, cause error) error {
	return &Error{code: CodeDatabase, message: message, err: cause}
}

// NewValidationError reports malformed input. The hint tells the actor how to fix it.
func NewValidationError(message, hint string) error {
	return &Error{code: CodeValidation, message: message, hint: hint}
}

func NewQuerySyntaxError(hint string, cause error) error {
	return &Error{code: CodeQuerySyntax, message: "unparsable search query", hint: hint, err: cause}
}

func NewConfigError(message string, cause error) error {
	return &Error{code: CodeConfig, message: message, err: cause}
}

// NewUnauthorizedError reports a policy denial. Pass an empty hint for
// denials that must not be answered.
func NewUnauthorizedError(message, hint string) error {
	return &Error{code: CodeUnauthorized, message: message, hint: hint}
}

func NewNoContentError(message string) error {
	return &Error{code: CodeNoContent, message: message}
}
