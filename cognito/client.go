// Package cognito wraps the AWS Cognito Identity Provider JSON API for the
// credential flows the gateway needs: password sign-in, token refresh, user
// attribute lookup, sign-out, sign-up and the new-password challenge. It is
// the single translation boundary between the provider's field naming and the
// gateway's normalized shapes.
package cognito

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/jrsteele09/go-auth-gateway/internal/config"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/rs/zerolog/log"
)

const (
	amzJSONContentType = "application/x-amz-json-1.1"
	amzTargetPrefix    = "AWSCognitoIdentityProviderService."

	defaultCallTimeout = 10 * time.Second

	flowUserPassword = "USER_PASSWORD_AUTH"
	flowRefreshToken = "REFRESH_TOKEN_AUTH"

	challengeNewPasswordRequired = "NEW_PASSWORD_REQUIRED"

	attrSub   = "sub"
	attrEmail = "email"
	attrName  = "name"
)

// Client is an explicitly constructed, injectable provider client. Calls are
// at-most-once: no retries happen at this layer, retry policy belongs to
// callers.
type Client struct {
	endpoint   string
	clientID   string
	httpClient *http.Client
}

// ClientOption modifies a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient replaces the default pooled HTTP client (primarily for tests).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient builds a Client from the Cognito side of the configuration.
func NewClient(cfg config.CognitoConfig, options ...ClientOption) (*Client, error) {
	if cfg.GetCognitoClientID() == "" {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "COGNITO_CLIENT_ID is not set")
	}

	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = defaultCallTimeout

	c := &Client{
		endpoint:   cfg.GetCognitoEndpoint(),
		clientID:   cfg.GetCognitoClientID(),
		httpClient: httpClient,
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// Authenticate exchanges credentials for provider tokens. A provider challenge
// surfaces as *ChallengeError, a rejection as ErrInvalidCredentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) (AuthResult, error) {
	req := initiateAuthRequest{
		AuthFlow: flowUserPassword,
		ClientID: c.clientID,
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	}

	var resp initiateAuthResponse
	if err := c.call(ctx, "InitiateAuth", req, &resp); err != nil {
		return AuthResult{}, err
	}

	if resp.AuthenticationResult == nil {
		if resp.ChallengeName != "" {
			return AuthResult{}, &ChallengeError{Name: resp.ChallengeName, Session: resp.Session}
		}
		return AuthResult{}, apperrors.Wrapf(apperrors.ErrAuthentication, "no authentication result returned")
	}

	result := resp.AuthenticationResult
	if result.AccessToken == "" || result.RefreshToken == "" {
		return AuthResult{}, apperrors.Wrapf(apperrors.ErrAuthentication, "authentication result missing required tokens")
	}

	return AuthResult{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		IDToken:      result.IDToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// Refresh exchanges a refresh token for fresh access/ID tokens. When the
// provider rotates the refresh token the new one is included in the result.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (RefreshResult, error) {
	req := initiateAuthRequest{
		AuthFlow: flowRefreshToken,
		ClientID: c.clientID,
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	}

	var resp initiateAuthResponse
	if err := c.call(ctx, "InitiateAuth", req, &resp); err != nil {
		return RefreshResult{}, apperrors.Wrapf(apperrors.ErrRefresh, "%s", err.Error())
	}

	result := resp.AuthenticationResult
	if result == nil || result.AccessToken == "" {
		return RefreshResult{}, apperrors.Wrapf(apperrors.ErrRefresh, "no usable result from provider")
	}

	return RefreshResult{
		AccessToken:  result.AccessToken,
		IDToken:      result.IDToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
	}, nil
}

// FetchUserProfile looks up user attributes with an access token. Profile
// unavailability must not block an otherwise valid login, so any failure is
// logged and an empty-but-well-formed profile is returned.
func (c *Client) FetchUserProfile(ctx context.Context, accessToken string) UserProfile {
	var resp getUserResponse
	if err := c.call(ctx, "GetUser", getUserRequest{AccessToken: accessToken}, &resp); err != nil {
		log.Warn().Err(err).Msg("user profile lookup failed, continuing with empty profile")
		return UserProfile{}
	}

	attribute := func(name string) string {
		for _, attr := range resp.UserAttributes {
			if attr.Name == name {
				return attr.Value
			}
		}
		return ""
	}

	return UserProfile{
		ID:    attribute(attrSub),
		Email: attribute(attrEmail),
		Name:  attribute(attrName),
	}
}

// SignOut invalidates every session the provider holds for the principal.
// Best-effort: a missing access token is a no-op.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	return c.call(ctx, "GlobalSignOut", globalSignOutRequest{AccessToken: accessToken}, &struct{}{})
}

// SignUp registers a new user with the provider.
func (c *Client) SignUp(ctx context.Context, fullName, email, password string) error {
	req := signUpRequest{
		ClientID: c.clientID,
		Username: email,
		Password: password,
		UserAttributes: []userAttribute{
			{Name: attrName, Value: fullName},
			{Name: attrEmail, Value: email},
		},
	}
	var resp signUpResponse
	return c.call(ctx, "SignUp", req, &resp)
}

// CompleteNewPasswordChallenge answers a NEW_PASSWORD_REQUIRED challenge using
// the session returned alongside the original challenge.
func (c *Client) CompleteNewPasswordChallenge(ctx context.Context, username, newPassword, session string) error {
	req := respondToAuthChallengeRequest{
		ClientID:      c.clientID,
		ChallengeName: challengeNewPasswordRequired,
		Session:       session,
		ChallengeResponses: map[string]string{
			"USERNAME":     username,
			"NEW_PASSWORD": newPassword,
		},
	}
	var resp initiateAuthResponse
	return c.call(ctx, "RespondToAuthChallenge", req, &resp)
}

// ForgotPassword starts the provider's password reset flow for a user.
func (c *Client) ForgotPassword(ctx context.Context, username string) error {
	return c.call(ctx, "ForgotPassword", forgotPasswordRequest{ClientID: c.clientID, Username: username}, &struct{}{})
}

func (c *Client) call(ctx context.Context, target string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return apperrors.Wrapf(err, "cognito %s marshal", target)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrapf(err, "cognito %s request", target)
	}
	req.Header.Set("Content-Type", amzJSONContentType)
	req.Header.Set("X-Amz-Target", amzTargetPrefix+target)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, "cognito %s", target)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apperrors.Wrapf(err, "cognito %s read response", target)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Type == "" {
			log.Error().Str("target", target).Int("status", resp.StatusCode).Msg("unrecognised provider error response")
			return apperrors.Wrapf(apperrors.ErrAuthentication, "cognito %s status %d", target, resp.StatusCode)
		}
		log.Debug().Str("target", target).Str("type", apiErr.Type).Msg("provider call rejected")
		return translateAPIError(apiErr)
	}

	if len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return apperrors.Wrapf(err, "cognito %s decode response", target)
	}
	return nil
}
