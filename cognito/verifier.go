package cognito

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-auth-gateway/internal/config"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
)

// Verifier validates provider-issued ID tokens against the user pool's
// published JWKS. Unlike TokenExpiry/ProfileFromIDToken it performs full
// signature, issuer and audience verification, so its output can authenticate
// a bearer request on its own.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewVerifier discovers the user pool's OIDC configuration. It requires the
// user pool ID, since the issuer URL embeds it.
func NewVerifier(ctx context.Context, cfg config.CognitoConfig) (*Verifier, error) {
	if cfg.GetCognitoUserPoolID() == "" {
		return nil, apperrors.Wrapf(apperrors.ErrConfiguration, "COGNITO_USER_POOL_ID is not set")
	}

	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", cfg.GetAWSRegion(), cfg.GetCognitoUserPoolID())
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, apperrors.Wrapf(err, "cognito oidc discovery")
	}

	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.GetCognitoClientID()}),
	}, nil
}

// Verify checks a raw ID token and returns the identity it asserts.
func (v *Verifier) Verify(ctx context.Context, rawIDToken string) (UserProfile, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return UserProfile{}, apperrors.Wrapf(apperrors.ErrInvalidToken, "%s", err.Error())
	}

	var claims struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return UserProfile{}, apperrors.Wrapf(err, "id token claims")
	}

	return UserProfile{ID: claims.Sub, Email: claims.Email, Name: claims.Name}, nil
}
