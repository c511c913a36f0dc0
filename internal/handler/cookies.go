package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"taskmanager/internal/auth"
)

const (
	// AccessTokenCookie carries the short-lived access token on every request.
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie carries the refresh token, sent only to RefreshPath.
	RefreshTokenCookie = "refreshToken"
	// RefreshPath is the only path the refresh cookie is scoped to.
	RefreshPath = "/api/auth/refresh"
)

// CookieConfig controls the attributes of session cookies.
type CookieConfig struct {
	Secure bool
}

func (cc CookieConfig) build(name, value, path string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func (cc CookieConfig) setAccess(c echo.Context, token string) {
	c.SetCookie(cc.build(AccessTokenCookie, token, "/", auth.AccessTokenExpiry))
}

func (cc CookieConfig) setRefresh(c echo.Context, token string) {
	c.SetCookie(cc.build(RefreshTokenCookie, token, RefreshPath, auth.RefreshTokenExpiry))
}

// clear expires both cookies using the same paths they were set with.
func (cc CookieConfig) clear(c echo.Context) {
	for _, ck := range []*http.Cookie{
		cc.build(AccessTokenCookie, "", "/", 0),
		cc.build(RefreshTokenCookie, "", RefreshPath, 0),
	} {
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		c.SetCookie(ck)
	}
}
