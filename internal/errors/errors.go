package errors

import (
	"errors"
	"fmt"
)

// Common error types for the auth gateway
var (
	// Input errors
	ErrValidation = errors.New("validation failed")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthentication     = errors.New("authentication failed")
	ErrUserExists         = errors.New("user already exists")

	// Token errors
	ErrRefresh      = errors.New("refresh failed")
	ErrAuthenticity = errors.New("sealed value failed authenticity check")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Configuration errors
	ErrConfiguration = errors.New("configuration missing")

	// Rate limiting
	ErrTooManyRequests = errors.New("too many requests")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
