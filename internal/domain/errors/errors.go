package errors

import (
	"errors"
	"fmt"
)

var (
	// Common errors
	ErrInternal       = errors.New("internal server error")
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")

	// Authentication errors. The messages are deliberately generic so a
	// response never reveals which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRequired      = errors.New("access token required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionInvalid     = errors.New("session expired or invalid")
	ErrAccountDeactivated = errors.New("account deactivated")

	// User errors
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailExists              = errors.New("email already in use")
	ErrEmailAlreadyVerified     = errors.New("email already verified")
	ErrVerificationTokenInvalid = errors.New("invalid or expired verification token")
	ErrResetTokenInvalid        = errors.New("invalid or expired reset token")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Trip errors
	ErrTripNotFound = errors.New("trip not found")

	// Rate limiting
	ErrRateLimited = errors.New("too many requests")
)

// AppError carries the original error together with a user-facing message,
// an HTTP status code and a machine-readable API code.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(err error, message string, statusCode int, code string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		StatusCode: statusCode,
		Code:       code,
	}
}

// IsNotFound reports whether err is a "not found" class error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrTripNotFound)
}

// IsUnauthorized reports whether err is an authentication class error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrTokenRequired) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrSessionInvalid) ||
		errors.Is(err, ErrAccountDeactivated)
}

// IsConflict reports whether err is a conflict class error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrEmailExists)
}

// IsBadRequest reports whether err is a client input class error.
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrVerificationTokenInvalid) ||
		errors.Is(err, ErrResetTokenInvalid)
}
