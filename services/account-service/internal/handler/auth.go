package handler

import (
	"net/http"

	"github.com/userhub/userhub-api/services/account-service/internal/usecase"
)

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var params usecase.LoginParams
	if !decodeJSON(w, r, &params) {
		return
	}

	tokens, err := h.auth.Login(r.Context(), params)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid token claims")
		return
	}

	user, err := h.auth.GetUser(r.Context(), claims.UserID)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
