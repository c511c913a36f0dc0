package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/model"
)

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, string, string, string) (*model.User, error) {
	return &model.User{ID: 1}, nil
}

func (stubAuthService) Login(context.Context, string, string) (string, string, *model.User, error) {
	return "access-jwt", "refresh-jwt", &model.User{ID: 1, Email: "a@x.com"}, nil
}

func (stubAuthService) RefreshToken(context.Context, string) (string, error) {
	return "access-jwt", nil
}

type structValidator struct{ v *validator.Validate }

func (sv structValidator) Validate(i interface{}) error { return sv.v.Struct(i) }

func serve(t *testing.T, h func(echo.Context) error, body string) []*http.Cookie {
	t.Helper()
	e := echo.New()
	e.Validator = structValidator{v: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Result().Cookies()
}

func byName(cookies []*http.Cookie) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie, len(cookies))
	for _, ck := range cookies {
		out[ck.Name] = ck
	}
	return out
}

func TestCookies_SecureFlag(t *testing.T) {
	paths := map[string]string{AccessTokenCookie: "/", RefreshTokenCookie: RefreshPath}

	for _, secure := range []bool{true, false} {
		h := NewAuthHandler(stubAuthService{}, CookieConfig{Secure: secure})

		login := byName(serve(t, h.Login, `{"email":"a@x.com","password":"pw"}`))
		logout := byName(serve(t, h.Logout, ""))

		for name, path := range paths {
			set := login[name]
			require.NotNil(t, set, name)
			assert.Equal(t, secure, set.Secure, "login %s", name)
			assert.True(t, set.HttpOnly)
			assert.Equal(t, http.SameSiteStrictMode, set.SameSite)
			assert.Equal(t, path, set.Path)
			assert.Positive(t, set.MaxAge)

			cleared := logout[name]
			require.NotNil(t, cleared, name)
			assert.Equal(t, secure, cleared.Secure, "logout %s", name)
			assert.True(t, cleared.HttpOnly)
			assert.Equal(t, path, cleared.Path)
			assert.Less(t, cleared.MaxAge, 0)
		}
	}
}

func TestCookies_RefreshOnlyRotatesAccess(t *testing.T) {
	h := NewAuthHandler(stubAuthService{}, CookieConfig{Secure: true})

	got := byName(serve(t, h.Refresh, ""))
	require.Len(t, got, 1)
	require.NotNil(t, got[AccessTokenCookie])
	assert.True(t, got[AccessTokenCookie].Secure)
	assert.Equal(t, "access-jwt", got[AccessTokenCookie].Value)
}
