package cognito

import (
	"fmt"
	"strings"

	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
)

// ChallengeError is returned when the provider refuses to complete an
// authentication without an extra step, such as a mandatory password change.
// Session carries the provider's challenge session so the caller can complete
// the step later.
type ChallengeError struct {
	Name    string
	Session string
}

func (e *ChallengeError) Error() string {
	return fmt.Sprintf("authentication requires additional step: %s", e.Name)
}

func (e *ChallengeError) Unwrap() error {
	return apperrors.ErrAuthentication
}

// translateAPIError maps a provider error identifier onto the gateway's error
// taxonomy. Provider identifiers must not escape this package, so everything
// unrecognised collapses to ErrAuthentication.
func translateAPIError(apiErr apiErrorResponse) error {
	// The __type field can be namespaced, e.g.
	// "com.amazonaws.cognito...#NotAuthorizedException".
	name := apiErr.Type
	if idx := strings.LastIndexByte(name, '#'); idx != -1 {
		name = name[idx+1:]
	}

	switch name {
	case "NotAuthorizedException", "UserNotFoundException":
		return apperrors.ErrInvalidCredentials
	case "UsernameExistsException":
		return apperrors.ErrUserExists
	case "InvalidPasswordException", "InvalidParameterException":
		return apperrors.Wrapf(apperrors.ErrValidation, "provider rejected input")
	case "TooManyRequestsException", "LimitExceededException":
		return apperrors.ErrTooManyRequests
	case "ResourceNotFoundException", "InvalidClientException":
		return apperrors.Wrapf(apperrors.ErrConfiguration, "provider rejected client configuration")
	case "PasswordResetRequiredException":
		return &ChallengeError{Name: "PASSWORD_RESET_REQUIRED"}
	default:
		return apperrors.Wrapf(apperrors.ErrAuthentication, "provider call failed")
	}
}
