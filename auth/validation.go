package auth

import (
	"strings"
	"unicode"

	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
)

const minPasswordLength = 8

// FieldErrors maps input field names to user-facing validation messages.
// It is the errField payload of an error response.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	messages := make([]string, 0, len(fe))
	for field, msg := range fe {
		messages = append(messages, field+": "+msg)
	}
	return strings.Join(messages, "; ")
}

// Unwrap lets callers match FieldErrors against the validation sentinel.
func (fe FieldErrors) Unwrap() error {
	return apperrors.ErrValidation
}

// ValidateCredentials checks a sign-in request. Both fields are required;
// nothing is sent to the provider when either is missing.
func ValidateCredentials(email, password string) FieldErrors {
	fieldErrs := FieldErrors{}
	if strings.TrimSpace(email) == "" {
		fieldErrs["email"] = "Email is required"
	}
	if password == "" {
		fieldErrs["password"] = "Password is required"
	}
	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// ValidateSignUp checks a registration request against the same rules the
// frontend enforces, so weak input never reaches the provider.
func ValidateSignUp(fullName, email, password string) FieldErrors {
	fieldErrs := FieldErrors{}

	if strings.TrimSpace(fullName) == "" {
		fieldErrs["fullName"] = "Full name is required"
	}

	email = strings.TrimSpace(email)
	if email == "" {
		fieldErrs["email"] = "Email is required"
	} else if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		fieldErrs["email"] = "Invalid email address"
	}

	if msg := ValidatePassword(password); msg != "" {
		fieldErrs["password"] = msg
	}

	if len(fieldErrs) == 0 {
		return nil
	}
	return fieldErrs
}

// ValidatePassword enforces the password complexity rule: minimum 8
// characters with at least one uppercase letter, one lowercase letter, one
// digit and one special character. Returns a user-facing message, or "" when
// the password passes.
func ValidatePassword(password string) string {
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters long"
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return "Password must contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	}
	return ""
}
