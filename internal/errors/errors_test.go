package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrEmailAlreadyRegistered, http.StatusBadRequest, "EMAIL_ALREADY_REGISTERED"},
		{ErrPasswordTooLong, http.StatusBadRequest, "PASSWORD_TOO_LONG"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrUserGone, http.StatusUnauthorized, "USER_GONE"},
		{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
		{ErrAuthRequired, http.StatusUnauthorized, "AUTH_REQUIRED"},
		{ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{ErrTokenInvalid, http.StatusForbidden, "TOKEN_INVALID"},
		{ErrTaskNotFound, http.StatusNotFound, "TASK_NOT_FOUND"},
		{ErrTitleRequired, http.StatusBadRequest, "TITLE_REQUIRED"},
		{fmt.Errorf("update task: %w", ErrTaskNotFound), http.StatusNotFound, "TASK_NOT_FOUND"},
		{errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("Error 1045: Access denied for user 'root'"))
	assert.Equal(t, InternalMessage, httpErr.Message)
	assert.Empty(t, httpErr.ToErrorResponse().Error)
}
