// Package errors defines the application-level error vocabulary: a small
// AppError interface plus the predefined business errors the managers and
// the API client surface to callers.
package errors

import (
	"net/http"

	"bijou/internal/errors"
)

// AppError is the interface every user-surfaceable error implements.
type AppError interface {
	error
	HTTPCode() int     // HTTP status the remote API used, or the closest local equivalent
	ErrorCode() string // Stable business error code
	Message() string   // User-friendly message for toast-style notification
	Details() string   // Optional diagnostic detail, never shown to end users
}

// BaseError is the standard AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Is matches errors sharing the same business code, so a WithDetails copy
// still compares equal to its sentinel under errors.Is.
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Session errors. "Not logged in" is a normal state, not a failure: these
	// are returned only when an operation actually requires an identity.
	ErrNotAuthenticated = NewBaseError(
		http.StatusUnauthorized,
		"NOT_AUTHENTICATED",
		"Please sign in to continue",
		"",
	)

	ErrSessionResolving = NewBaseError(
		http.StatusServiceUnavailable,
		"SESSION_RESOLVING",
		"Your session is still loading, try again in a moment",
		"",
	)

	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Your session has expired, please sign in again",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password",
		"",
	)

	ErrAdminOnly = NewBaseError(
		http.StatusForbidden,
		"ADMIN_ONLY",
		"This action requires administrator access",
		"",
	)

	// Catalog and cart errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"This product is no longer available",
		"",
	)

	ErrOutOfStock = NewBaseError(
		http.StatusConflict,
		"OUT_OF_STOCK",
		"This item is currently out of stock",
		"",
	)

	ErrCartEmpty = NewBaseError(
		http.StatusUnprocessableEntity,
		"CART_EMPTY",
		"Your bag is empty",
		"",
	)

	// Coupon errors
	ErrCouponInvalid = NewBaseError(
		http.StatusUnprocessableEntity,
		"COUPON_INVALID",
		"This coupon code is not valid",
		"",
	)

	ErrCouponExpired = NewBaseError(
		http.StatusGone,
		"COUPON_EXPIRED",
		"This coupon has expired",
		"",
	)

	// General errors
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Some of the submitted fields are invalid",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested resource was not found",
		"",
	)

	ErrRemoteUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"REMOTE_UNAVAILABLE",
		"We could not reach the store right now, please try again",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong on our side",
		"",
	)
)

// RemoteCallError represents a failed round-trip to the remote commerce API,
// implementing the AppError interface. It keeps the transport error for
// diagnostics while presenting a retryable message to the user.
type RemoteCallError struct {
	err     error
	details string
}

// NewRemoteCallError creates a remote-call error wrapping the transport failure.
func NewRemoteCallError(err error, details string) AppError {
	return &RemoteCallError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *RemoteCallError) Error() string {
	return errors.Wrap(e.err, "remote commerce API call failed").Error()
}

// Unwrap exposes the transport error to errors.Is and errors.As.
func (e *RemoteCallError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code.
func (e *RemoteCallError) HTTPCode() int {
	return http.StatusServiceUnavailable
}

// ErrorCode returns the business error code.
func (e *RemoteCallError) ErrorCode() string {
	return "REMOTE_CALL_FAILED"
}

// Message returns the user-friendly error message.
func (e *RemoteCallError) Message() string {
	return "We could not reach the store right now, please try again"
}

// Details returns detailed error information.
func (e *RemoteCallError) Details() string {
	return e.details
}
