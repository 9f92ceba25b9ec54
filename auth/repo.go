package auth

import (
	"context"

	"github.com/jrsteele09/go-auth-gateway/cognito"
)

// Provider is the identity-provider surface the gateway depends on. It is
// satisfied by *cognito.Client; tests supply the fake in providerfakes.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (cognito.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (cognito.RefreshResult, error)
	FetchUserProfile(ctx context.Context, accessToken string) cognito.UserProfile
	SignOut(ctx context.Context, accessToken string) error
	SignUp(ctx context.Context, fullName, email, password string) error
	CompleteNewPasswordChallenge(ctx context.Context, username, newPassword, session string) error
	ForgotPassword(ctx context.Context, username string) error
}

var _ Provider = (*cognito.Client)(nil)
