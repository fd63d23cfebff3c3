package repository

import (
	"fmt"
	"time"

	"revealhub/internal/database"
	"revealhub/internal/models"
)

// HighScoreRepository handles database operations for leaderboard entries
type HighScoreRepository struct {
	db *database.DB
}

// NewHighScoreRepository creates a new high-score repository
func NewHighScoreRepository(db *database.DB) *HighScoreRepository {
	return &HighScoreRepository{db: db}
}

const highScoreColumns = `id, player_name, github_id, category, game_mode,
	score_time, number_of_clicks, date`

// Create inserts a new high-score entry
func (r *HighScoreRepository) Create(score *models.HighScore) error {
	query := `
		INSERT INTO high_scores (id, player_name, github_id, category, game_mode, score_time, number_of_clicks, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		score.ID, score.PlayerName, score.GithubID, string(score.Category),
		string(score.GameMode), score.ScoreTime, score.NumberOfClicks, score.Date)
	if err != nil {
		return fmt.Errorf("failed to create high score: %w", err)
	}
	return nil
}

// GetByModeOrderedByTime retrieves entries for a mode, best (lowest) time first
func (r *HighScoreRepository) GetByModeOrderedByTime(mode models.GameMode, limit int) ([]models.HighScore, error) {
	query := "SELECT " + highScoreColumns + ` FROM high_scores
		WHERE game_mode = ? ORDER BY score_time ASC, date ASC LIMIT ?`
	return r.queryHighScores(query, string(mode), limit)
}

// GetByModeOrderedByClicks retrieves entries for a mode, fewest clicks first
func (r *HighScoreRepository) GetByModeOrderedByClicks(mode models.GameMode, limit int) ([]models.HighScore, error) {
	query := "SELECT " + highScoreColumns + ` FROM high_scores
		WHERE game_mode = ? ORDER BY number_of_clicks ASC, date ASC LIMIT ?`
	return r.queryHighScores(query, string(mode), limit)
}

// Delete removes a high-score entry
func (r *HighScoreRepository) Delete(id string) error {
	query := "DELETE FROM high_scores WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete high score: %w", err)
	}
	return nil
}

func (r *HighScoreRepository) queryHighScores(query string, args ...interface{}) ([]models.HighScore, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	scores := []models.HighScore{}
	for rows.Next() {
		var score models.HighScore
		var category, mode string
		var date time.Time
		if err := rows.Scan(
			&score.ID,
			&score.PlayerName,
			&score.GithubID,
			&category,
			&mode,
			&score.ScoreTime,
			&score.NumberOfClicks,
			&date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan high score: %w", err)
		}
		score.Category = models.Category(category)
		score.GameMode = models.GameMode(mode)
		score.Date = date
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
