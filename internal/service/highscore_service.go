package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"revealhub/internal/models"
	"revealhub/internal/repository"
	"revealhub/internal/validation"
)

// LeaderboardSize is how many entries each game mode leaderboard holds
const LeaderboardSize = 10

var ErrScoreNotEligible = errors.New("score does not qualify for the leaderboard")

// HighScoreService maintains the per-mode top-10 leaderboards
type HighScoreService struct {
	highScoreRepo *repository.HighScoreRepository
}

// NewHighScoreService creates a new high score service
func NewHighScoreService(highScoreRepo *repository.HighScoreRepository) *HighScoreService {
	return &HighScoreService{highScoreRepo: highScoreRepo}
}

// GetLeaderboard returns the top entries for a mode, best first
func (s *HighScoreService) GetLeaderboard(mode models.GameMode) ([]models.HighScore, error) {
	switch mode {
	case models.RevealWithClicks:
		return s.highScoreRepo.GetByModeOrderedByClicks(mode, LeaderboardSize)
	default:
		return s.highScoreRepo.GetByModeOrderedByTime(mode, LeaderboardSize)
	}
}

// Qualifies reports whether a candidate score would enter the leaderboard.
// A score on a full board must be strictly better than the current worst.
func (s *HighScoreService) Qualifies(mode models.GameMode, scoreTime float64, clicks int) (bool, error) {
	board, err := s.GetLeaderboard(mode)
	if err != nil {
		return false, err
	}
	if len(board) < LeaderboardSize {
		return true, nil
	}

	worst := board[len(board)-1]
	if mode == models.RevealWithClicks {
		return clicks < worst.NumberOfClicks, nil
	}
	return scoreTime < worst.ScoreTime, nil
}

// AddHighScore records a qualifying score and evicts the displaced worst
// entry. Returns ErrScoreNotEligible when the score does not make the board.
func (s *HighScoreService) AddHighScore(playerName, githubID string, category models.Category, mode models.GameMode, scoreTime float64, clicks int) (*models.HighScore, error) {
	if err := validation.ValidatePlayerName(playerName); err != nil {
		return nil, err
	}

	ok, err := s.Qualifies(mode, scoreTime, clicks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrScoreNotEligible
	}

	board, err := s.GetLeaderboard(mode)
	if err != nil {
		return nil, err
	}
	if len(board) >= LeaderboardSize {
		worst := board[len(board)-1]
		if err := s.highScoreRepo.Delete(worst.ID); err != nil {
			return nil, err
		}
	}

	if githubID == "" {
		githubID = models.AnonymousGithubID
	}

	score := &models.HighScore{
		ID:             uuid.New().String(),
		PlayerName:     playerName,
		GithubID:       githubID,
		Category:       category,
		GameMode:       mode,
		ScoreTime:      scoreTime,
		NumberOfClicks: clicks,
		Date:           time.Now().UTC(),
	}
	if err := s.highScoreRepo.Create(score); err != nil {
		return nil, err
	}
	return score, nil
}

// DeleteHighScore removes a leaderboard entry
func (s *HighScoreService) DeleteHighScore(id string) error {
	return s.highScoreRepo.Delete(id)
}
