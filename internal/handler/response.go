package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/auth"
	"taskmanager/internal/errors"
)

// MessageResponse is the body of operations that only confirm success.
type MessageResponse struct {
	Message string `json:"message"`
}

// toHTTPError converts a service error into an echo error carrying an
// ErrorResponse. Unexpected failures keep the cause as the internal error.
func toHTTPError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	if httpErr.StatusCode >= http.StatusInternalServerError {
		return he.SetInternal(err)
	}
	return he
}

func badRequest(message, code string) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Message: message,
		Code:    code,
	})
}

// identity returns the caller attached by the auth gate.
func identity(c echo.Context) (auth.Identity, error) {
	id, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return auth.Identity{}, toHTTPError(errors.ErrAuthRequired)
	}
	return id, nil
}

// taskID parses the :id path parameter. Anything that is not a positive
// integer cannot name a task, so it reads as not found.
func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, toHTTPError(errors.ErrTaskNotFound)
	}
	return uint(id), nil
}
