package handlers

import (
	"net/http"

	"github.com/andrewpaige1/promptdec-api/middleware"
	"github.com/andrewpaige1/promptdec-api/schemas"
)

// Me returns the caller's profile.
func (h *DBHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUser(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		h.writeError(w, r, "user", err)
		return
	}
	writeJSON(w, http.StatusOK, schemas.NewUserResponse(user))
}
