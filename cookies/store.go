// Package cookies persists the sealed refresh token as an HTTP cookie with a
// fixed security posture: httpOnly, sameSite=lax, 30-day max age, root path,
// and secure outside of DEV. Callers cannot weaken these attributes.
package cookies

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-auth-gateway/internal/config"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/seal"
)

// CookieName matches the cookie the frontend apps already expect.
const CookieName = "session_cookies"

// Config is the slice of the application configuration the store needs.
type Config interface {
	GetAuthSecret() string
	GetCookieMaxAge() time.Duration
}

var _ Config = config.Security{}

// Store seals and persists the refresh token. Construction fails fast when
// the sealing secret is absent so misconfiguration surfaces at startup.
type Store struct {
	secret string
	secure bool
	maxAge time.Duration
}

func New(cfg Config, env string) (*Store, error) {
	if cfg.GetAuthSecret() == "" {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "AUTH_SECRET is not set")
	}
	return &Store{
		secret: cfg.GetAuthSecret(),
		secure: env != "DEV",
		maxAge: cfg.GetCookieMaxAge(),
	}, nil
}

// SetRefreshToken seals the refresh token and writes the session cookie.
func (s *Store) SetRefreshToken(w http.ResponseWriter, refreshToken string) error {
	sealed, err := seal.Seal(s.secret, refreshToken)
	if err != nil {
		return apperrors.Wrapf(err, "cookie seal")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// RefreshToken retrieves and unseals the refresh token from the request.
// A missing cookie returns ("", nil). A cookie that fails the authenticity
// check returns ErrAuthenticity; the caller must Clear it and treat the
// session as absent.
func (s *Store) RefreshToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", nil
	}

	var refreshToken string
	if err := seal.Unseal(s.secret, cookie.Value, &refreshToken); err != nil {
		return "", err
	}
	return refreshToken, nil
}

// Clear expires the session cookie.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
