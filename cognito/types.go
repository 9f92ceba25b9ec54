package cognito

// Normalized result shapes. Every component outside this package works with
// these; the provider's own field naming stays behind the wire types below.

// AuthResult is a completed credential authentication.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	ExpiresIn    int // seconds until the access token expires
}

// RefreshResult is a completed token refresh. RefreshToken is only set when
// the provider rotated the refresh token; callers should adopt it when present.
type RefreshResult struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	ExpiresIn    int
}

// UserProfile is the normalized user attribute set. All fields may be empty;
// a UserProfile is always well-formed.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Wire types for the Cognito Identity Provider JSON API
// (Content-Type application/x-amz-json-1.1). These never leave this package.

type initiateAuthRequest struct {
	AuthFlow       string            `json:"AuthFlow"`
	ClientID       string            `json:"ClientId"`
	AuthParameters map[string]string `json:"AuthParameters"`
}

type authenticationResult struct {
	AccessToken  string `json:"AccessToken"`
	RefreshToken string `json:"RefreshToken,omitempty"`
	IDToken      string `json:"IdToken"`
	ExpiresIn    int    `json:"ExpiresIn"`
}

type initiateAuthResponse struct {
	AuthenticationResult *authenticationResult `json:"AuthenticationResult"`
	ChallengeName        string                `json:"ChallengeName"`
	Session              string                `json:"Session"`
}

type getUserRequest struct {
	AccessToken string `json:"AccessToken"`
}

type userAttribute struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

type getUserResponse struct {
	Username       string          `json:"Username"`
	UserAttributes []userAttribute `json:"UserAttributes"`
}

type globalSignOutRequest struct {
	AccessToken string `json:"AccessToken"`
}

type signUpRequest struct {
	ClientID       string          `json:"ClientId"`
	Username       string          `json:"Username"`
	Password       string          `json:"Password"`
	UserAttributes []userAttribute `json:"UserAttributes"`
}

type signUpResponse struct {
	UserConfirmed bool   `json:"UserConfirmed"`
	UserSub       string `json:"UserSub"`
}

type respondToAuthChallengeRequest struct {
	ClientID           string            `json:"ClientId"`
	ChallengeName      string            `json:"ChallengeName"`
	Session            string            `json:"Session"`
	ChallengeResponses map[string]string `json:"ChallengeResponses"`
}

type forgotPasswordRequest struct {
	ClientID string `json:"ClientId"`
	Username string `json:"Username"`
}

type apiErrorResponse struct {
	Type    string `json:"__type"`
	Message string `json:"message"`
}
