package handler

import (
	"net/http"

	"userhub/internal/auth"
	"userhub/internal/http/response"
)

type MeHandler struct{}

// Me must sit behind auth.RequireAuth.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		response.Fail(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	response.OK(w, "", map[string]any{"user": u.Public()})
}
