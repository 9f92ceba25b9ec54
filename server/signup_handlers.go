package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-auth-gateway/auth"
	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/rs/zerolog/log"
)

type signUpRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type newPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
	Session     string `json:"session"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// SignUpHandler registers a new user with the provider after local
// validation. Weak input never leaves the gateway.
func (s *Server) SignUpHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := s.limiter.AllowSignUp(r.Context(), strings.ToLower(strings.TrimSpace(req.Email))); err != nil {
			writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later")
			return
		}

		if err := s.auth.SignUp(r.Context(), req.FullName, req.Email, req.Password); err != nil {
			s.writeSignUpError(w, err)
			return
		}

		writeSuccess(w, http.StatusCreated, "User created successfully. Please check your email to verify your account.", nil)
	}
}

// NewPasswordHandler completes a NEW_PASSWORD_REQUIRED challenge and signs
// the user in with the new password, mirroring the sign-in response.
func (s *Server) NewPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req newPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		rec, err := s.auth.CompleteNewPassword(r.Context(), req.Username, req.NewPassword, req.Session)
		if err != nil {
			s.writeAuthError(w, err)
			return
		}

		if err := s.cookies.SetRefreshToken(w, rec.RefreshToken); err != nil {
			log.Error().Err(err).Msg("failed to set session cookie")
			writeError(w, http.StatusInternalServerError, "Failed to establish session")
			return
		}

		writeSuccess(w, http.StatusOK, "Password updated successfully", sessionData{
			User:        rec.User,
			AccessToken: rec.AccessToken,
		})
	}
}

// ForgotPasswordHandler starts the provider's reset flow. The response never
// reveals whether the account exists.
func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusBadRequest, "Email is required")
			return
		}

		if err := s.auth.ForgotPassword(r.Context(), req.Email); err != nil {
			if apperrors.Is(err, apperrors.ErrTooManyRequests) {
				writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later")
				return
			}
			log.Warn().Err(err).Msg("forgot-password call failed")
		}

		writeSuccess(w, http.StatusOK, "If an account exists for that email, a reset code has been sent", nil)
	}
}

func (s *Server) writeSignUpError(w http.ResponseWriter, err error) {
	var fieldErrs auth.FieldErrors

	switch {
	case apperrors.As(err, &fieldErrs):
		writeFieldErrors(w, "Validation error", fieldErrs)
	case apperrors.Is(err, apperrors.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid input parameters")
	case apperrors.Is(err, apperrors.ErrUserExists):
		writeError(w, http.StatusBadRequest, "An account with this email already exists")
	case apperrors.Is(err, apperrors.ErrTooManyRequests):
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later")
	case apperrors.Is(err, apperrors.ErrConfiguration):
		log.Error().Err(err).Msg("sign-up misconfigured")
		writeError(w, http.StatusInternalServerError, "Sign up is not configured")
	default:
		log.Error().Err(err).Msg("sign-up failed")
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred during sign up")
	}
}
