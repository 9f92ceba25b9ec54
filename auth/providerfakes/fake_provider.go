package providerfakes

import (
	"context"
	"sync"

	"github.com/jrsteele09/go-auth-gateway/auth"
	"github.com/jrsteele09/go-auth-gateway/cognito"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/pkg/errors"
)

var _ auth.Provider = (*FakeProvider)(nil)

// FakeProvider is a configurable in-memory identity provider for tests.
// Zero value behaves like a provider that accepts the configured user.
type FakeProvider struct {
	lock sync.Mutex

	Users map[string]string // email -> password

	AuthResult      cognito.AuthResult
	AuthErr         error
	RefreshResult   cognito.RefreshResult
	RefreshErr      error
	Profile         cognito.UserProfile
	SignUpErr       error
	ChallengeErr    error
	ForgotErr       error
	SignOutErr      error

	AuthenticateCalls int
	RefreshCalls      int
	ProfileCalls      int
	SignUpCalls       int
	ChallengeCalls    int
	ForgotCalls       int
	SignOutCalls      int

	LastSignOutToken string
}

func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Users: map[string]string{},
		AuthResult: cognito.AuthResult{
			AccessToken:  "fake-access-token",
			RefreshToken: "fake-refresh-token",
			IDToken:      "fake-id-token",
			ExpiresIn:    3600,
		},
		Profile: cognito.UserProfile{ID: "fake-user-id", Email: "user@x.com", Name: "Fake User"},
	}
}

func (f *FakeProvider) Authenticate(_ context.Context, username, password string) (cognito.AuthResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.AuthenticateCalls++

	if f.AuthErr != nil {
		return cognito.AuthResult{}, f.AuthErr
	}
	if expected, ok := f.Users[username]; ok && expected != password {
		return cognito.AuthResult{}, errors.Wrap(apperrors.ErrInvalidCredentials, "fake provider")
	}
	return f.AuthResult, nil
}

func (f *FakeProvider) Refresh(_ context.Context, _ string) (cognito.RefreshResult, error) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.RefreshCalls++

	if f.RefreshErr != nil {
		return cognito.RefreshResult{}, f.RefreshErr
	}
	return f.RefreshResult, nil
}

func (f *FakeProvider) FetchUserProfile(_ context.Context, _ string) cognito.UserProfile {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ProfileCalls++
	return f.Profile
}

func (f *FakeProvider) SignOut(_ context.Context, accessToken string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.SignOutCalls++
	f.LastSignOutToken = accessToken
	return f.SignOutErr
}

func (f *FakeProvider) SignUp(_ context.Context, _, _, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.SignUpCalls++
	return f.SignUpErr
}

func (f *FakeProvider) CompleteNewPasswordChallenge(_ context.Context, _, _, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ChallengeCalls++
	return f.ChallengeErr
}

func (f *FakeProvider) ForgotPassword(_ context.Context, _ string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.ForgotCalls++
	return f.ForgotErr
}
