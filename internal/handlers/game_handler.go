package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"revealhub/internal/game"
	"revealhub/internal/models"
	"revealhub/internal/security"
)

// GameHandler exposes the play-screen engine over the REST API. Sessions are
// keyed by the authenticated user when present, or by an anonymous player
// cookie otherwise.
type GameHandler struct {
	engine *game.Manager
}

// NewGameHandler creates a new game handler
func NewGameHandler(engine *game.Manager) *GameHandler {
	return &GameHandler{engine: engine}
}

// playerKey identifies the caller for session ownership, issuing a player
// cookie for anonymous guessers.
func (h *GameHandler) playerKey(w http.ResponseWriter, r *http.Request) string {
	if user := GetUserFromContext(r.Context()); user != nil {
		return "user:" + strconv.FormatInt(user.ID, 10)
	}

	if cookie, err := r.Cookie(PlayerCookieName); err == nil && cookie.Value != "" {
		return "anon:" + cookie.Value
	}
	id := security.GenerateSessionID()
	http.SetCookie(w, security.CreateSessionCookie(r, PlayerCookieName, id, time.Now().Add(24*time.Hour)))
	return "anon:" + id
}

// Snapshot handles GET /api/reveal-hub/play
func (h *GameHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Snapshot(h.playerKey(w, r)))
}

// SelectCategory handles POST /api/reveal-hub/play/category
func (h *GameHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	// Unknown category values are a silent no-op, like inactive ones
	category, err := models.ParseCategory(req.Category)
	if err != nil {
		writeJSON(w, http.StatusOK, h.engine.Snapshot(h.playerKey(w, r)))
		return
	}

	snap, err := h.engine.SelectCategory(h.playerKey(w, r), category)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Category selection failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SelectRandomCategory handles POST /api/reveal-hub/play/random-category
func (h *GameHandler) SelectRandomCategory(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.SelectRandomCategory(h.playerKey(w, r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Random category selection failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ToggleMode handles POST /api/reveal-hub/play/mode
func (h *GameHandler) ToggleMode(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.ToggleMode(h.playerKey(w, r))
	if err != nil {
		if errors.Is(err, game.ErrSessionActive) {
			respondWithError(w, http.StatusConflict, "Cannot change mode during a game", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Mode toggle failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Start handles POST /api/reveal-hub/play/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	snap, err := h.engine.StartGame(h.playerKey(w, r))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Game start failed", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
}

// Reveal handles POST /api/reveal-hub/play/reveal (click mode)
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	snap, err := h.engine.RevealTile(h.playerKey(w, r), req.SessionID)
	if err != nil {
		h.respondGameError(w, err, "Tile reveal failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Guess handles POST /api/reveal-hub/play/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	_, snap, err := h.engine.Guess(h.playerKey(w, r), req.SessionID, req.Guess)
	if err != nil {
		h.respondGameError(w, err, "Guess failed")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Reset handles POST /api/reveal-hub/play/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Reset(h.playerKey(w, r)))
}

func (h *GameHandler) respondGameError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, game.ErrStaleSession):
		respondWithError(w, http.StatusConflict, "Game session has changed", "", nil)
	case errors.Is(err, game.ErrNoActiveSession):
		respondWithError(w, http.StatusConflict, "No game in progress", "", nil)
	case errors.Is(err, game.ErrRevealUnavailable):
		respondWithError(w, http.StatusConflict, "No reveals available", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
