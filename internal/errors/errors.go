package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailAlreadyRegistered is returned when registering an email that exists.
	ErrEmailAlreadyRegistered = errors.New("Email already registered")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrUserNotFound is returned when a user record is gone.
	ErrUserNotFound = errors.New("User not found")
	// ErrUserGone is returned by refresh when the token's user no longer exists.
	ErrUserGone = errors.New("User no longer exists")
	// ErrInvalidRefreshToken is returned when a refresh token fails verification.
	ErrInvalidRefreshToken = errors.New("Invalid refresh token")
	// ErrRefreshTokenRequired is returned when no refresh cookie was sent.
	ErrRefreshTokenRequired = errors.New("Refresh token required")
	// ErrAuthRequired is returned when a protected route is hit without a token.
	ErrAuthRequired = errors.New("Authentication token required")
	// ErrTokenExpired is returned when the access token has expired.
	ErrTokenExpired = errors.New("Token has expired")
	// ErrTokenInvalid is returned for malformed or tampered access tokens.
	ErrTokenInvalid = errors.New("Invalid token")
	// ErrTaskNotFound covers both missing tasks and tasks owned by someone else.
	ErrTaskNotFound = errors.New("Task not found")
	// ErrTitleRequired is returned when a task has no usable title.
	ErrTitleRequired = errors.New("Title is required")
	// ErrInvalidStatus is returned for a status outside the known set.
	ErrInvalidStatus = errors.New("Invalid status")
	// ErrInvalidPriority is returned for a priority outside the known set.
	ErrInvalidPriority = errors.New("Invalid priority")
	// ErrPasswordTooLong is returned for passwords bcrypt cannot hash (over 72 bytes).
	ErrPasswordTooLong = errors.New("Password must be at most 72 bytes")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// InternalMessage is the only text clients see for unexpected failures.
const InternalMessage = "Something went wrong!"

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrEmailAlreadyRegistered):
		return NewHTTPError(http.StatusBadRequest, ErrEmailAlreadyRegistered.Error(), "EMAIL_ALREADY_REGISTERED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrUserGone):
		return NewHTTPError(http.StatusUnauthorized, ErrUserGone.Error(), "USER_GONE")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidRefreshToken.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrRefreshTokenRequired):
		return NewHTTPError(http.StatusUnauthorized, ErrRefreshTokenRequired.Error(), "REFRESH_TOKEN_REQUIRED")
	case errors.Is(err, ErrAuthRequired):
		return NewHTTPError(http.StatusUnauthorized, ErrAuthRequired.Error(), "AUTH_REQUIRED")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenExpired.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusForbidden, ErrTokenInvalid.Error(), "TOKEN_INVALID")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, ErrTaskNotFound.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrTitleRequired):
		return NewHTTPError(http.StatusBadRequest, ErrTitleRequired.Error(), "TITLE_REQUIRED")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidStatus.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrPasswordTooLong):
		return NewHTTPError(http.StatusBadRequest, ErrPasswordTooLong.Error(), "PASSWORD_TOO_LONG")
	case errors.Is(err, ErrInvalidPriority):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPriority.Error(), "INVALID_PRIORITY")
	default:
		return NewHTTPError(http.StatusInternalServerError, InternalMessage, "INTERNAL_ERROR")
	}
}
