// Package errors provides the application error type returned by services
// and rendered by handlers. Messages are safe to show to clients; the wrapped
// internal error is only ever logged.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code so that wrapped copies of a sentinel compare
// equal to it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrInvalidToken       = &AppError{Code: "INVALID_TOKEN", Message: "Invalid or expired token", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrRateLimited    = &AppError{Code: "RATE_LIMITED", Message: "Too many requests, try again shortly", StatusCode: http.StatusTooManyRequests}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrSelfRoleChange = &AppError{Code: "SELF_ROLE_CHANGE", Message: "You cannot change your own role", StatusCode: http.StatusBadRequest}
)

// Emission errors.
var (
	ErrInvalidAmount     = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be a number greater than zero", StatusCode: http.StatusBadRequest}
	ErrUnknownCategory   = &AppError{Code: "UNKNOWN_CATEGORY", Message: "Unknown emission category", StatusCode: http.StatusBadRequest}
	ErrPersistenceFailed = &AppError{Code: "PERSISTENCE_FAILED", Message: "Could not save your emissions, please try again", StatusCode: http.StatusServiceUnavailable}
)

// Report and notification errors.
var (
	ErrInvalidEmail          = &AppError{Code: "INVALID_EMAIL", Message: "Please provide a valid email address", StatusCode: http.StatusBadRequest}
	ErrReportFailed          = &AppError{Code: "REPORT_FAILED", Message: "Could not generate the report, please try again", StatusCode: http.StatusInternalServerError}
	ErrDispatchFailed        = &AppError{Code: "DISPATCH_FAILED", Message: "Could not send the report, please try again", StatusCode: http.StatusBadGateway}
	ErrNotificationsDisabled = &AppError{Code: "NOTIFICATIONS_DISABLED", Message: "Sending reports by email is not available", StatusCode: http.StatusServiceUnavailable}
)
