package session

import (
	"context"
	"time"

	"github.com/jrsteele09/go-auth-gateway/cognito"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/rs/zerolog/log"
)

// TokenRefresher is the slice of the identity-provider client the manager
// needs. Kept narrow so tests can supply a fake.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (cognito.RefreshResult, error)
}

// Manager drives a Record through the session lifecycle:
// unauthenticated -> active -> refreshing -> active | expired.
type Manager struct {
	provider      TokenRefresher
	nowTime       func() time.Time
	fallbackValid time.Duration // token lifetime when the provider asserts none
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithFallbackValidity sets the token lifetime assumed when the provider
// returns no ExpiresIn and the token itself asserts no expiry.
func WithFallbackValidity(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.fallbackValid = d
	}
}

// NewManager initializes a Manager with its provider dependency.
func NewManager(provider TokenRefresher, options ...ManagerOption) (*Manager, error) {
	if provider == nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "[NewManager] provider is required")
	}

	m := &Manager{
		provider:      provider,
		nowTime:       time.Now,
		fallbackValid: time.Hour,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Resume brings a record up to date for the current request. A record whose
// access token is still valid is returned unchanged with no remote call. An
// expired record triggers exactly one refresh: on success the new tokens are
// merged and any prior error tag cleared, on failure the error tag is set and
// the stale tokens kept so the caller decides what to discard. A record
// already carrying an error tag is never silently re-refreshed.
//
// Refresh failure is recorded on the returned record, not returned as an
// error; Resume never fails a request by itself.
func (m *Manager) Resume(ctx context.Context, rec *Record) *Record {
	if rec == nil || rec.RefreshToken == "" {
		return rec
	}
	if rec.Err != "" {
		return rec
	}
	if !rec.Expired(m.nowTime()) {
		return rec
	}

	result, err := m.provider.Refresh(ctx, rec.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("session refresh failed")
		rec.Err = ErrRefreshAccessToken
		return rec
	}

	rec.AccessToken = result.AccessToken
	if result.IDToken != "" {
		rec.IDToken = result.IDToken
	}
	// Rotation: adopt a newly issued refresh token, the provider may have
	// invalidated the old one.
	if result.RefreshToken != "" {
		rec.RefreshToken = result.RefreshToken
	}
	rec.ExpiresAt = m.ExpiryFor(result.ExpiresIn, result.AccessToken)
	rec.Err = ""
	return rec
}

// NewRecord builds an Active session record from a completed authentication.
func (m *Manager) NewRecord(user User, result cognito.AuthResult) *Record {
	return &Record{
		User:         user,
		AccessToken:  result.AccessToken,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresAt:    m.ExpiryFor(result.ExpiresIn, result.AccessToken),
	}
}

// ExpiryFor computes the absolute access-token expiry (epoch milliseconds)
// from a provider result. Preference order: the provider's ExpiresIn, the
// expiry the token itself asserts, then the configured fallback.
func (m *Manager) ExpiryFor(expiresInSeconds int, accessToken string) int64 {
	now := m.nowTime()
	if expiresInSeconds > 0 {
		return now.Add(time.Duration(expiresInSeconds) * time.Second).UnixMilli()
	}
	if exp, ok := cognito.TokenExpiry(accessToken); ok {
		return exp.UnixMilli()
	}
	return now.Add(m.fallbackValid).UnixMilli()
}
