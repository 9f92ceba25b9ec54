package cognito_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-auth-gateway/cognito"
	"github.com/stretchr/testify/require"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token := signedTestToken(t, jwt.MapClaims{"sub": "user-1", "exp": exp.Unix()})

	got, ok := cognito.TokenExpiry(token)
	require.True(t, ok)
	require.Equal(t, exp.Unix(), got.Unix())
}

func TestTokenExpiryMissingClaim(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"sub": "user-1"})
	_, ok := cognito.TokenExpiry(token)
	require.False(t, ok)
}

func TestTokenExpiryMalformedToken(t *testing.T) {
	_, ok := cognito.TokenExpiry("not-a-jwt")
	require.False(t, ok)
}

func TestProfileFromIDToken(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{
		"sub":   "user-id-1",
		"email": "user@x.com",
		"name":  "Jo User",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	profile, ok := cognito.ProfileFromIDToken(token)
	require.True(t, ok)
	require.Equal(t, cognito.UserProfile{ID: "user-id-1", Email: "user@x.com", Name: "Jo User"}, profile)
}

func TestProfileFromIDTokenEmptyClaims(t *testing.T) {
	token := signedTestToken(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	_, ok := cognito.ProfileFromIDToken(token)
	require.False(t, ok)
}
