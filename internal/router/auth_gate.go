package router

import (
	"errors"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"taskmanager/internal/auth"
	apperrors "taskmanager/internal/errors"
	"taskmanager/internal/handler"
)

const claimsContextKey = "claims"

const bearerPrefix = "Bearer "

var (
	errEmptyToken = errors.New("empty token")
	errNoToken    = errors.New("no access token")
)

// AuthGate verifies the access token and attaches the caller's identity to the
// request context. A non-empty accessToken cookie is the only token looked
// at; the Authorization Bearer header is read only when there is no cookie.
//
// missing -> 401, expired -> 401 (distinct code), anything else -> 403.
func AuthGate(jwtService *auth.JWTService) []echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey:       claimsContextKey,
		TokenLookupFuncs: []middleware.ValuesExtractor{accessToken},
		// set so echo-jwt does not add its default header lookup; it can only
		// yield the cookie accessToken already chose
		TokenLookup: "cookie:" + handler.AccessTokenCookie,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			if token == "" {
				return nil, errEmptyToken
			}
			return jwtService.ValidateAccessToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				return gateError(apperrors.ErrTokenExpired)
			case errors.Is(err, auth.ErrTokenInvalid):
				return gateError(apperrors.ErrTokenInvalid)
			default:
				return gateError(apperrors.ErrAuthRequired)
			}
		},
	})

	return []echo.MiddlewareFunc{verify, attachIdentity}
}

// accessToken picks the cookie when present, otherwise the Bearer header.
func accessToken(c echo.Context) ([]string, error) {
	if ck, err := c.Cookie(handler.AccessTokenCookie); err == nil && ck.Value != "" {
		return []string{ck.Value}, nil
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return []string{header[len(bearerPrefix):]}, nil
	}
	return nil, errNoToken
}

// attachIdentity moves the verified claims into the typed request context.
func attachIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsContextKey).(*auth.Claims)
		if !ok || claims == nil {
			return gateError(apperrors.ErrAuthRequired)
		}
		req := c.Request()
		c.SetRequest(req.WithContext(auth.WithIdentity(req.Context(), claims.Identity())))
		return next(c)
	}
}

func gateError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
