package repository

import (
	"fmt"

	"revealhub/internal/database"
)

// FavoriteRepository handles database operations for per-user favorite reveals
type FavoriteRepository struct {
	db *database.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *database.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// GetFavoriteIDs retrieves the reveal IDs a user has favorited, newest first
func (r *FavoriteRepository) GetFavoriteIDs(userID int64) ([]string, error) {
	query := "SELECT reveal_id FROM favorites WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add marks a reveal as a favorite of the user. Adding an existing favorite
// is a no-op.
func (r *FavoriteRepository) Add(userID int64, revealID string) error {
	// Keep the insert idempotent across dialects with a pre-check
	exists, err := r.exists(userID, revealID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	query := "INSERT INTO favorites (user_id, reveal_id) VALUES (?, ?)"
	if _, err := r.db.Exec(query, userID, revealID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove unmarks a reveal as a favorite of the user
func (r *FavoriteRepository) Remove(userID int64, revealID string) error {
	query := "DELETE FROM favorites WHERE user_id = ? AND reveal_id = ?"
	if _, err := r.db.Exec(query, userID, revealID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

// RemoveAllForReveal clears a deleted reveal out of every favorites list
func (r *FavoriteRepository) RemoveAllForReveal(revealID string) error {
	query := "DELETE FROM favorites WHERE reveal_id = ?"
	if _, err := r.db.Exec(query, revealID); err != nil {
		return fmt.Errorf("failed to clear favorites for reveal: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) exists(userID int64, revealID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM favorites WHERE user_id = ? AND reveal_id = ?"
	if err := r.db.QueryRow(query, userID, revealID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
