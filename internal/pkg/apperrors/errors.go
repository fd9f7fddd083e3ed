package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors
	ErrStorageFailure = errors.New("storage failure")
)

// Student errors
var (
	ErrStudentNotFound        = fmt.Errorf("student not found: %w", ErrResourceNotFound)
	ErrStudentIDAlreadyExists = fmt.Errorf("student ID already exists: %w", ErrResourceAlreadyExists)
	ErrStudentHasBehaviors    = fmt.Errorf("student has behavior records and cannot be deleted: %w", ErrConflict)
)

// Behavior type errors
var (
	ErrBehaviorTypeNotFound      = fmt.Errorf("behavior type not found: %w", ErrResourceNotFound)
	ErrBehaviorTypeAlreadyExists = fmt.Errorf("behavior type with this name already exists: %w", ErrResourceAlreadyExists)
	ErrBehaviorTypeInUse         = fmt.Errorf("behavior type is referenced by behavior records and cannot be deleted: %w", ErrConflict)
)

// Behavior errors
var (
	ErrBehaviorNotFound = fmt.Errorf("behavior record not found: %w", ErrResourceNotFound)
)

// User errors
var (
	ErrUserNotFound = fmt.Errorf("user not found: %w", ErrResourceNotFound)
)

// Import errors
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumns    = errors.New("missing required columns")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a user-correctable validation error, optionally bound to a field
func NewValidationError(field, message string) error {
	ce := &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
	if field != "" {
		ce.Details = map[string]interface{}{"field": field}
	}
	return ce
}

// NewUnsupportedFormatError reports an upload whose extension is not recognized
func NewUnsupportedFormatError(filename string) error {
	return &CustomError{
		Err:     ErrUnsupportedFormat,
		Message: fmt.Sprintf("unsupported file format: %q (expected .xlsx or .csv)", filename),
	}
}

// NewMissingColumnsError names every required column absent from the header row
func NewMissingColumnsError(columns []string) error {
	return &CustomError{
		Err:     ErrMissingColumns,
		Message: "missing required columns: " + strings.Join(columns, ", "),
		Details: map[string]interface{}{"columns": columns},
	}
}

// NewStorageFailure wraps an unexpected persistence error
func NewStorageFailure(op string, err error) error {
	return &CustomError{
		Err:     errors.Join(ErrStorageFailure, err),
		Message: op + ": storage failure",
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// UserMessage returns the message safe to show to the caller, if err carries one.
func UserMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}
