package cookies_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-auth-gateway/cookies"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/stretchr/testify/require"
)

type storeConfig struct {
	secret string
}

func (c storeConfig) GetAuthSecret() string          { return c.secret }
func (c storeConfig) GetCookieMaxAge() time.Duration { return 30 * 24 * time.Hour }

func newStore(t *testing.T, env string) *cookies.Store {
	t.Helper()
	store, err := cookies.New(storeConfig{secret: "test-auth-secret-for-cookie-store"}, env)
	require.NoError(t, err)
	return store
}

func setCookie(t *testing.T, store *cookies.Store, token string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.SetRefreshToken(rec, token))
	cookieList := rec.Result().Cookies()
	require.Len(t, cookieList, 1)
	return cookieList[0]
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := cookies.New(storeConfig{}, "DEV")
	require.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestSetRefreshTokenAttributes(t *testing.T) {
	cookie := setCookie(t, newStore(t, "PROD"), "refresh-1")

	require.Equal(t, cookies.CookieName, cookie.Name)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, int((30 * 24 * time.Hour).Seconds()), cookie.MaxAge)
	require.NotContains(t, cookie.Value, "refresh-1", "refresh token must not appear in cleartext")
}

func TestSecureFlagDisabledInDev(t *testing.T) {
	cookie := setCookie(t, newStore(t, "DEV"), "refresh-1")
	require.False(t, cookie.Secure)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	store := newStore(t, "DEV")
	cookie := setCookie(t, store, "refresh-1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	token, err := store.RefreshToken(req)
	require.NoError(t, err)
	require.Equal(t, "refresh-1", token)
}

func TestRefreshTokenMissingCookie(t *testing.T) {
	store := newStore(t, "DEV")
	token, err := store.RefreshToken(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestRefreshTokenTamperedCookie(t *testing.T) {
	store := newStore(t, "DEV")
	cookie := setCookie(t, store, "refresh-1")
	cookie.Value = cookie.Value[:len(cookie.Value)-4] + "AAAA"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	token, err := store.RefreshToken(req)
	require.ErrorIs(t, err, apperrors.ErrAuthenticity)
	require.Empty(t, token)
}

func TestClearExpiresCookie(t *testing.T) {
	store := newStore(t, "DEV")
	rec := httptest.NewRecorder()
	store.Clear(rec)

	cookieList := rec.Result().Cookies()
	require.Len(t, cookieList, 1)
	require.Equal(t, cookies.CookieName, cookieList[0].Name)
	require.Empty(t, cookieList[0].Value)
	require.Negative(t, cookieList[0].MaxAge)
}
