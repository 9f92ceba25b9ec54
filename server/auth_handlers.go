package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-gateway/auth"
	"github.com/jrsteele09/go-auth-gateway/cognito"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/session"
	"github.com/rs/zerolog/log"
)

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionData is the client-visible slice of a session record. The refresh
// token deliberately has no place here; it only ever travels inside the
// sealed cookie.
type sessionData struct {
	User        session.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   int64        `json:"expiresAt,omitempty"`
}

// SignInHandler authenticates an email/password pair, sets the sealed
// refresh-token cookie and returns the normalized user plus access token.
func (s *Server) SignInHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := s.limiter.AllowSignIn(r.Context(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later")
			return
		}

		rec, err := s.auth.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		if err := s.limiter.Reset(r.Context(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
			log.Warn().Err(err).Msg("failed to reset sign-in rate counter")
		}

		if err := s.cookies.SetRefreshToken(w, rec.RefreshToken); err != nil {
			log.Error().Err(err).Msg("failed to set session cookie")
			writeError(w, http.StatusInternalServerError, "Failed to establish session")
			return
		}

		writeSuccess(w, http.StatusOK, "User logged in successfully", sessionData{
			User:        rec.User,
			AccessToken: rec.AccessToken,
		})
	}
}

// SessionHandler rebuilds the session from the sealed cookie, refreshing the
// tokens when due, and reports the current principal. A tampered cookie is
// cleared and treated as absence; a failed refresh leaves the cookie alone,
// clearing it is the client's explicit decision via signout.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken, err := s.cookies.RefreshToken(r)
		if err != nil {
			s.cookies.Clear(w)
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if refreshToken == "" {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		rec := s.auth.Resume(r.Context(), refreshToken)
		if rec.Err != "" {
			writeJSON(w, http.StatusUnauthorized, ResponseBody{
				Status:  "error",
				Message: "Session expired, please sign in again",
				Data:    map[string]string{"error": rec.Err},
			})
			return
		}

		// Rotation: persist a newly issued refresh token
		if rec.RefreshToken != refreshToken {
			if err := s.cookies.SetRefreshToken(w, rec.RefreshToken); err != nil {
				log.Error().Err(err).Msg("failed to persist rotated refresh token")
			}
		}

		writeSuccess(w, http.StatusOK, "Session is active", sessionData{
			User:        rec.User,
			AccessToken: rec.AccessToken,
			ExpiresAt:   rec.ExpiresAt,
		})
	}
}

// SignOutHandler invalidates the provider-side sessions best-effort and
// always clears the cookie.
func (s *Server) SignOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accessToken := bearerToken(r)
		if accessToken == "" {
			if refreshToken, err := s.cookies.RefreshToken(r); err == nil && refreshToken != "" {
				if rec := s.auth.Resume(r.Context(), refreshToken); rec.Err == "" {
					accessToken = rec.AccessToken
				}
			}
		}

		if err := s.auth.SignOut(r.Context(), accessToken); err != nil {
			log.Warn().Err(err).Msg("provider sign-out failed")
		}

		s.cookies.Clear(w)
		writeSuccess(w, http.StatusOK, "User signed out successfully", nil)
	}
}

// MeHandler returns the identity asserted by a verified bearer ID token.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, ok := profileFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		writeSuccess(w, http.StatusOK, "", map[string]cognito.UserProfile{"user": profile})
	}
}

// writeAuthError maps an authentication failure onto the response envelope,
// telling "wrong credentials" apart from "try again later" causes.
func (s *Server) writeAuthError(w http.ResponseWriter, err error) {
	var fieldErrs auth.FieldErrors
	var challenge *cognito.ChallengeError

	switch {
	case apperrors.As(err, &fieldErrs):
		writeFieldErrors(w, fieldErrs.Error(), fieldErrs)
	case apperrors.As(err, &challenge):
		writeJSON(w, http.StatusUnauthorized, ResponseBody{
			Status:  "error",
			Message: challenge.Error(),
			Data: map[string]any{
				"challenge": map[string]string{"name": challenge.Name, "session": challenge.Session},
			},
		})
	case apperrors.Is(err, apperrors.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid input parameters")
	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later")
	case apperrors.Is(err, apperrors.ErrConfiguration):
		log.Error().Err(err).Msg("authentication misconfigured")
		writeError(w, http.StatusInternalServerError, "Authentication is not configured")
	default:
		log.Error().Err(err).Msg("authentication failed")
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
