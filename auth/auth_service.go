// Package auth is the credential entry point of the gateway. It validates
// raw input, orchestrates the identity-provider calls and produces the
// initial session record. Failures stay typed, so the handler layer can tell
// wrong credentials from provider misconfiguration or a required challenge.
package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-auth-gateway/cognito"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/session"
)

// Service authenticates credentials and manages the provider-side account
// operations (sign-up, challenge completion, password reset, sign-out).
type Service struct {
	provider Provider
	sessions *session.Manager
}

// NewService initializes a new Service with required dependencies.
func NewService(provider Provider, sessions *session.Manager) (*Service, error) {
	if provider == nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "[NewService] provider is required")
	}
	if sessions == nil {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "[NewService] session manager is required")
	}
	return &Service{provider: provider, sessions: sessions}, nil
}

// Authenticate exchanges an email/password pair for a session record. Input
// is validated before any remote call. The profile lookup always uses the
// access token, never the ID token; when the lookup fails the record carries
// whatever identity the ID token claims assert, falling back to the submitted
// email.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*session.Record, error) {
	if fieldErrs := ValidateCredentials(email, password); fieldErrs != nil {
		return nil, fieldErrs
	}

	result, err := s.provider.Authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	profile := s.provider.FetchUserProfile(ctx, result.AccessToken)
	if profile == (cognito.UserProfile{}) && result.IDToken != "" {
		profile, _ = cognito.ProfileFromIDToken(result.IDToken)
	}
	if profile.Email == "" {
		profile.Email = strings.TrimSpace(email)
	}

	user := session.User{ID: profile.ID, Email: profile.Email, DisplayName: profile.Name}
	return s.sessions.NewRecord(user, result), nil
}

// Resume rebuilds a session from the refresh token persisted in the sealed
// cookie. The rebuilt record starts expired, so the lifecycle manager always
// performs one refresh; the caller inspects the returned record's error tag
// rather than an error return.
func (s *Service) Resume(ctx context.Context, refreshToken string) *session.Record {
	rec := s.sessions.Resume(ctx, &session.Record{RefreshToken: refreshToken})
	if rec.Err != "" {
		return rec
	}

	profile := s.provider.FetchUserProfile(ctx, rec.AccessToken)
	if profile == (cognito.UserProfile{}) && rec.IDToken != "" {
		profile, _ = cognito.ProfileFromIDToken(rec.IDToken)
	}
	rec.User = session.User{ID: profile.ID, Email: profile.Email, DisplayName: profile.Name}
	return rec
}

// SignUp validates the registration input locally and registers the user
// with the provider. Validation violations are FieldErrors and never reach
// the provider.
func (s *Service) SignUp(ctx context.Context, fullName, email, password string) error {
	if fieldErrs := ValidateSignUp(fullName, email, password); fieldErrs != nil {
		return fieldErrs
	}
	return s.provider.SignUp(ctx, strings.TrimSpace(fullName), strings.TrimSpace(email), password)
}

// CompleteNewPassword answers a NEW_PASSWORD_REQUIRED challenge and then
// performs a normal sign-in with the new password.
func (s *Service) CompleteNewPassword(ctx context.Context, username, newPassword, challengeSession string) (*session.Record, error) {
	fieldErrs := FieldErrors{}
	if strings.TrimSpace(username) == "" {
		fieldErrs["username"] = "Username is required"
	}
	if strings.TrimSpace(challengeSession) == "" {
		fieldErrs["session"] = "Challenge session is required"
	}
	if msg := ValidatePassword(newPassword); msg != "" {
		fieldErrs["password"] = msg
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if err := s.provider.CompleteNewPasswordChallenge(ctx, username, newPassword, challengeSession); err != nil {
		return nil, err
	}
	return s.Authenticate(ctx, username, newPassword)
}

// ForgotPassword starts the provider's reset flow.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return FieldErrors{"email": "Email is required"}
	}
	return s.provider.ForgotPassword(ctx, strings.TrimSpace(email))
}

// SignOut invalidates the principal's sessions at the provider, best-effort.
func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	return s.provider.SignOut(ctx, accessToken)
}
