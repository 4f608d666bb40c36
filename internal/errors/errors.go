package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmployeeNotFound is returned when an employee record does not exist.
	ErrEmployeeNotFound = errors.New("Employee not found")
	// ErrEmailExists is returned when creating an employee with a taken email.
	ErrEmailExists = errors.New("Email already exists")
	// ErrEmailTaken is returned when updating an employee to an email owned by another record.
	ErrEmailTaken = errors.New("Email already exists for another employee")
	// ErrUsernameExists is returned when registering an existing username.
	ErrUsernameExists = errors.New("Username already exists")
	// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
	ErrInvalidCredentials = errors.New("Invalid login details")
	// ErrNoToken is returned when the Authorization header is absent.
	ErrNoToken = errors.New("No token provided")
	// ErrInvalidToken is returned for malformed, expired or revoked tokens.
	ErrInvalidToken = errors.New("Invalid token")
)

// ValidationError carries a client-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflict errors map
// to 400 rather than 409 to match the documented API contract.
func MapErrorToHTTP(err error) *HTTPError {
	if IsValidation(err) {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}
	switch err {
	case ErrEmailExists, ErrEmailTaken, ErrUsernameExists:
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case ErrInvalidCredentials, ErrInvalidToken:
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case ErrNoToken:
		return NewHTTPError(http.StatusForbidden, err.Error())
	case ErrEmployeeNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}
