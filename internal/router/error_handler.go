package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "taskmanager/internal/errors"
)

// NewHTTPErrorHandler renders every error as an ErrorResponse. The internal
// cause of a 5xx is logged, and echoed to the client only when exposeDetail
// is set.
func NewHTTPErrorHandler(log *slog.Logger, exposeDetail bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
		}

		resp := responseFor(he)
		if he.Code >= http.StatusInternalServerError {
			cause := he.Internal
			if cause == nil {
				cause = err
			}
			log.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("uri", c.Request().RequestURI),
				slog.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				slog.Any("error", cause),
			)
			if exposeDetail {
				resp.Error = cause.Error()
			}
		}
		if he.Code == http.StatusInternalServerError {
			resp.Message = apperrors.InternalMessage
			resp.Code = "INTERNAL_ERROR"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(he.Code)
		} else {
			err = c.JSON(he.Code, resp)
		}
		if err != nil {
			log.Error("write error response", slog.Any("error", err))
		}
	}
}

func responseFor(he *echo.HTTPError) apperrors.ErrorResponse {
	switch msg := he.Message.(type) {
	case apperrors.ErrorResponse:
		return msg
	case string:
		return apperrors.ErrorResponse{Message: msg, Code: statusCode(he.Code)}
	default:
		return apperrors.ErrorResponse{Message: http.StatusText(he.Code), Code: statusCode(he.Code)}
	}
}

func statusCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
