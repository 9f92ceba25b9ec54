package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-auth-gateway/cognito"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyProfile stores the verified identity of the bearer token
const ContextKeyProfile ContextKey = "profile"

// RequireIDToken is middleware that validates a Bearer ID token against the
// user pool's JWKS and injects the asserted identity into the request
// context. Verification requires COGNITO_USER_POOL_ID.
func (s *Server) RequireIDToken() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.verifier == nil {
				writeError(w, http.StatusInternalServerError, "ID token verification is not configured")
				return
			}

			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Missing bearer token")
				return
			}

			profile, err := s.verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug().Err(err).Msg("bearer token rejected")
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyProfile, profile)
			next(w, r.WithContext(ctx))
		}
	}
}

func profileFromContext(ctx context.Context) (cognito.UserProfile, bool) {
	profile, ok := ctx.Value(ContextKeyProfile).(cognito.UserProfile)
	return profile, ok
}
