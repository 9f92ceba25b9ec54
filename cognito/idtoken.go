package cognito

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry extracts the expiry claim from a provider-issued JWT without
// verifying its signature. Used as a fallback when the provider omits
// ExpiresIn from an authentication result; the token is only trusted as far
// as the provider call that returned it.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ProfileFromIDToken derives a UserProfile from an ID token's identity claims
// without signature verification. It backs up FetchUserProfile when the
// GetUser call is unavailable.
func ProfileFromIDToken(token string) (UserProfile, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return UserProfile{}, false
	}

	str := func(key string) string {
		if v, ok := claims[key].(string); ok {
			return v
		}
		return ""
	}

	profile := UserProfile{
		ID:    str(attrSub),
		Email: str(attrEmail),
		Name:  str(attrName),
	}
	return profile, profile != UserProfile{}
}
