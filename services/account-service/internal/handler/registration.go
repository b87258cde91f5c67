package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/userhub/userhub-api/services/account-service/internal/usecase"
)

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var params usecase.RegisterParams
	if !decodeJSON(w, r, &params) {
		return
	}
	params.Origin = requestOrigin(r)

	if err := h.registration.Register(r.Context(), params); err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"details": "Please check your email to activate your account.",
	})
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.registration.Activate(r.Context(), token); err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"details": "Your account has been activated successfully!",
	})
}
