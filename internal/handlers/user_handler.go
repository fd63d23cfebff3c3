package handlers

import (
	"net/http"

	"revealhub/internal/models"
	"revealhub/internal/service"
)

// UserHandler handles the current-user API
type UserHandler struct {
	revealService *service.RevealService
}

// NewUserHandler creates a new user handler
func NewUserHandler(revealService *service.RevealService) *UserHandler {
	return &UserHandler{revealService: revealService}
}

// Me handles GET /api/users/me: returns the caller's GitHub id as plain
// text, or the anonymous marker when not signed in.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := models.AnonymousGithubID
	if user := GetUserFromContext(r.Context()); user != nil {
		identity = user.Identity()
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(identity))
}

// MeDetails handles GET /api/users/me/details
func (h *UserHandler) MeDetails(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// MyReveals handles GET /api/users/me/my-reveals
func (h *UserHandler) MyReveals(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	reveals, err := h.revealService.GetRevealsForGithubUser(user.Identity())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load user's reveals", err)
		return
	}
	writeJSON(w, http.StatusOK, reveals)
}
