package errors

import (
	"errors"
)

// Domain-specific error types
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrEmailNotFound indicates the email does not exist or is owned by someone else
	ErrEmailNotFound = errors.New("email not found")

	// ErrUserNotFound indicates the user was not found
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateEmail indicates the email address is already registered
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown users and wrong passwords
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized indicates a missing, malformed or expired token
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates forbidden access
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal server error")
)

// Error codes for API responses
const (
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// AppError represents an application error with context
type AppError struct {
	Err     error
	Message string
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(err error, message string, code string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}

// Validation builds an AppError for a rejected field. The message is safe to show to clients.
func Validation(message string) *AppError {
	return NewAppError(ErrInvalidInput, message, CodeInvalidInput)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrEmailNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// GetErrorCode returns the appropriate error code for an error
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != "" {
		return appErr.Code
	}

	switch {
	case IsNotFound(err):
		return CodeNotFound
	case IsInvalidInput(err):
		return CodeInvalidInput
	case errors.Is(err, ErrDuplicateEmail):
		return CodeDuplicateEmail
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternalError
	}
}

// PublicMessage returns the text that may be sent to a client for err.
// Internal failures collapse to a fixed message so store details never leak.
func PublicMessage(err error) string {
	code := GetErrorCode(err)
	if code == CodeInternalError {
		return ErrInternal.Error()
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	switch code {
	case CodeNotFound:
		if errors.Is(err, ErrEmailNotFound) {
			return ErrEmailNotFound.Error()
		}
		return ErrNotFound.Error()
	case CodeDuplicateEmail:
		return ErrDuplicateEmail.Error()
	case CodeInvalidCredentials:
		return ErrInvalidCredentials.Error()
	case CodeUnauthorized:
		return ErrUnauthorized.Error()
	case CodeForbidden:
		return ErrForbidden.Error()
	default:
		return ErrInvalidInput.Error()
	}
}
