package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"revealhub/internal/models"
	"revealhub/internal/service"
	"revealhub/internal/validation"
)

// HighScoreHandler handles the leaderboard API
type HighScoreHandler struct {
	highScoreService *service.HighScoreService
}

// NewHighScoreHandler creates a new high score handler
func NewHighScoreHandler(highScoreService *service.HighScoreService) *HighScoreHandler {
	return &HighScoreHandler{highScoreService: highScoreService}
}

// GetByTime handles GET /api/high-score/reveal-over-time
func (h *HighScoreHandler) GetByTime(w http.ResponseWriter, r *http.Request) {
	h.respondLeaderboard(w, models.RevealOverTime)
}

// GetByClicks handles GET /api/high-score/reveal-with-clicks
func (h *HighScoreHandler) GetByClicks(w http.ResponseWriter, r *http.Request) {
	h.respondLeaderboard(w, models.RevealWithClicks)
}

func (h *HighScoreHandler) respondLeaderboard(w http.ResponseWriter, mode models.GameMode) {
	board, err := h.highScoreService.GetLeaderboard(mode)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

type submitScoreRequest struct {
	PlayerName     string          `json:"playerName"`
	Category       models.Category `json:"category"`
	GameMode       string          `json:"gameMode"`
	ScoreTime      float64         `json:"scoreTime"`
	NumberOfClicks int             `json:"numberOfClicks"`
}

// Submit handles POST /api/high-score. The submitter's identity comes from
// the authenticated user when present, never from the request body.
func (h *HighScoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	mode, err := models.ParseGameMode(req.GameMode)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown game mode", "", nil)
		return
	}
	if !req.Category.Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown category", "", nil)
		return
	}

	githubID := ""
	if user := GetUserFromContext(r.Context()); user != nil {
		githubID = user.Identity()
	}

	score, err := h.highScoreService.AddHighScore(req.PlayerName, githubID, req.Category, mode, req.ScoreTime, req.NumberOfClicks)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		case errors.Is(err, service.ErrScoreNotEligible):
			respondWithError(w, http.StatusConflict, "Score does not qualify for the leaderboard", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to save high score", err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, score)
}

// Delete handles DELETE /api/high-score/{id} (admin only)
func (h *HighScoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.highScoreService.DeleteHighScore(r.PathValue("id")); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to delete high score", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
