package config

import (
	"fmt"
	"strconv"
	"time"
)

// CognitoConfig is the identity-provider side of the configuration. The
// gateway never talks to Cognito without going through these values.
type CognitoConfig interface {
	GetAWSRegion() string
	GetCognitoClientID() string
	GetCognitoUserPoolID() string
	GetCognitoEndpoint() string
	GetIDTokenExpiry() time.Duration
}

type Cognito struct{}

var _ CognitoConfig = Cognito{}

func (Cognito) GetAWSRegion() string {
	return GetEnv("AWS_REGION", "us-east-1")
}

func (Cognito) GetCognitoClientID() string {
	return GetEnv("COGNITO_CLIENT_ID", "")
}

// GetCognitoUserPoolID is only needed for local ID-token verification
// (the JWKS issuer URL embeds the pool ID). The credential flows work
// without it.
func (Cognito) GetCognitoUserPoolID() string {
	return GetEnv("COGNITO_USER_POOL_ID", "")
}

// GetCognitoEndpoint overrides the regional endpoint, used for local
// Cognito emulators and wire tests.
func (c Cognito) GetCognitoEndpoint() string {
	return GetEnv("COGNITO_ENDPOINT", fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/", c.GetAWSRegion()))
}

// GetIDTokenExpiry is the fallback token lifetime when the provider omits
// ExpiresIn from an authentication result. Override with ID_TOKEN_EXPIRY_SECONDS.
func (Cognito) GetIDTokenExpiry() time.Duration {
	seconds, err := strconv.Atoi(GetEnv("ID_TOKEN_EXPIRY_SECONDS", "3600"))
	if err != nil || seconds <= 0 {
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}
