// Package handler exposes the account service over HTTP: registration,
// activation, login, password reset, and the authenticated profile endpoint.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/userhub/userhub-api/services/account-service/internal/usecase"
	"github.com/userhub/userhub-api/shared/auth"
)

// Handler wires HTTP endpoints for the account lifecycle flows.
type Handler struct {
	logger            *zerolog.Logger
	registration      usecase.RegistrationUsecase
	auth              usecase.AuthUsecase
	passwordReset     usecase.PasswordResetUsecase
	jwtAuth           auth.JWTAuthenticator
	accessTokenSecret string
}

// New constructs a Handler instance.
func New(
	logger *zerolog.Logger,
	registration usecase.RegistrationUsecase,
	authUC usecase.AuthUsecase,
	passwordReset usecase.PasswordResetUsecase,
	jwtAuth auth.JWTAuthenticator,
	accessTokenSecret string,
) *Handler {
	return &Handler{
		logger:            logger,
		registration:      registration,
		auth:              authUC,
		passwordReset:     passwordReset,
		jwtAuth:           jwtAuth,
		accessTokenSecret: accessTokenSecret,
	}
}

// MountRoutes registers the account routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register/", h.handleRegister)
	r.Post("/activate/{token}/", h.handleActivate)
	r.Post("/login/", h.handleLogin)
	r.Post("/password-reset/", h.handleRequestPasswordReset)
	r.Post("/password-reset/{token}/", h.handleResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAccessToken)
		r.Get("/me", h.handleMe)
	})

	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeUsecaseError maps a use case failure to its HTTP status and
// user-facing message.
func (h *Handler) writeUsecaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrPasswordMismatch):
		writeError(w, http.StatusBadRequest, "Passwords do not match.")
	case errors.Is(err, usecase.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "This email already exists!")
	case errors.Is(err, usecase.ErrUsernameTaken):
		writeError(w, http.StatusBadRequest, "This username already exists!")
	case errors.Is(err, usecase.ErrNotificationFailed):
		writeError(w, http.StatusInternalServerError, "An error occurred while sending the verification email")
	case errors.Is(err, usecase.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "Invalid token!")
	case errors.Is(err, usecase.ErrTokenExpired):
		writeError(w, http.StatusBadRequest, "Token has expired!")
	case errors.Is(err, usecase.ErrMissingCredentials):
		writeError(w, http.StatusBadRequest, "Please provide both email and password")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, usecase.ErrAccountNotActivated):
		writeError(w, http.StatusBadRequest, "Your account is not activated yet!")
	default:
		h.logger.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
