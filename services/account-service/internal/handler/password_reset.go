package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/userhub/userhub-api/services/account-service/internal/usecase"
)

type passwordResetRequest struct {
	Email string `json:"email"`
}

func (h *Handler) handleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req passwordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.passwordReset.RequestPasswordReset(r.Context(), req.Email, requestOrigin(r)); err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	// Same response whether or not the email is registered.
	writeJSON(w, http.StatusOK, map[string]string{
		"details": "If the email is registered, a password reset link has been sent.",
	})
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var params usecase.ResetPasswordParams
	if !decodeJSON(w, r, &params) {
		return
	}

	if err := h.passwordReset.ResetPassword(r.Context(), token, params); err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"details": "Your password has been reset successfully!",
	})
}
