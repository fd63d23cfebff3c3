package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"revealhub/internal/database"
	"revealhub/internal/models"
)

// RevealRepository handles database operations for reveal catalog entries
type RevealRepository struct {
	db *database.DB
}

// NewRevealRepository creates a new reveal repository
func NewRevealRepository(db *database.DB) *RevealRepository {
	return &RevealRepository{db: db}
}

const revealColumns = `id, name, solution_words, close_solution_words, category,
	description, is_active, github_id, image_url, created_at, updated_at`

// Create inserts a new reveal
func (r *RevealRepository) Create(reveal *models.Reveal) error {
	solutionJSON, err := json.Marshal(reveal.SolutionWords)
	if err != nil {
		return fmt.Errorf("failed to encode solution words: %w", err)
	}
	closeJSON, err := json.Marshal(reveal.CloseSolutionWords)
	if err != nil {
		return fmt.Errorf("failed to encode close solution words: %w", err)
	}

	query := `
		INSERT INTO reveals (id, name, solution_words, close_solution_words, category, description, is_active, github_id, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		reveal.ID, reveal.Name, string(solutionJSON), string(closeJSON),
		string(reveal.Category), reveal.Description, reveal.IsActive,
		reveal.GithubID, reveal.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to create reveal: %w", err)
	}
	return nil
}

// GetByID retrieves a reveal by ID, or nil when it does not exist
func (r *RevealRepository) GetByID(id string) (*models.Reveal, error) {
	query := "SELECT " + revealColumns + " FROM reveals WHERE id = ?"
	reveal, err := scanReveal(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reveal: %w", err)
	}
	return reveal, nil
}

// GetAll retrieves every reveal in the catalog
func (r *RevealRepository) GetAll() ([]models.Reveal, error) {
	query := "SELECT " + revealColumns + " FROM reveals ORDER BY created_at DESC"
	return r.queryReveals(query)
}

// GetAllActive retrieves every active reveal
func (r *RevealRepository) GetAllActive() ([]models.Reveal, error) {
	query := "SELECT " + revealColumns + " FROM reveals WHERE is_active = ? ORDER BY created_at DESC"
	return r.queryReveals(query, true)
}

// GetActiveByCategory retrieves active reveals in one category
func (r *RevealRepository) GetActiveByCategory(category models.Category) ([]models.Reveal, error) {
	query := "SELECT " + revealColumns + " FROM reveals WHERE is_active = ? AND category = ? ORDER BY created_at DESC"
	return r.queryReveals(query, true, string(category))
}

// GetActiveCategories retrieves the distinct categories that have active reveals
func (r *RevealRepository) GetActiveCategories() ([]models.Category, error) {
	query := "SELECT DISTINCT category FROM reveals WHERE is_active = ?"
	rows, err := r.db.Query(query, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query active categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		category, err := models.ParseCategory(raw)
		if err != nil {
			// Skip rows that predate the closed enum rather than failing the listing
			continue
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// GetByGithubUser retrieves all reveals owned by a GitHub user
func (r *RevealRepository) GetByGithubUser(githubID string) ([]models.Reveal, error) {
	query := "SELECT " + revealColumns + " FROM reveals WHERE github_id = ? ORDER BY created_at DESC"
	return r.queryReveals(query, githubID)
}

// GetByIDs retrieves the reveals matching the given IDs, skipping missing ones
func (r *RevealRepository) GetByIDs(ids []string) ([]models.Reveal, error) {
	if len(ids) == 0 {
		return []models.Reveal{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	query := "SELECT " + revealColumns + " FROM reveals WHERE id IN (" + placeholders + ")"

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.queryReveals(query, args...)
}

// Update replaces the stored fields of an existing reveal
func (r *RevealRepository) Update(reveal *models.Reveal) error {
	solutionJSON, err := json.Marshal(reveal.SolutionWords)
	if err != nil {
		return fmt.Errorf("failed to encode solution words: %w", err)
	}
	closeJSON, err := json.Marshal(reveal.CloseSolutionWords)
	if err != nil {
		return fmt.Errorf("failed to encode close solution words: %w", err)
	}

	query := `
		UPDATE reveals
		SET name = ?, solution_words = ?, close_solution_words = ?, category = ?,
			description = ?, is_active = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err = r.db.Exec(query,
		reveal.Name, string(solutionJSON), string(closeJSON), string(reveal.Category),
		reveal.Description, reveal.IsActive, reveal.ImageURL, reveal.ID)
	if err != nil {
		return fmt.Errorf("failed to update reveal: %w", err)
	}
	return nil
}

// Delete removes a reveal
func (r *RevealRepository) Delete(id string) error {
	query := "DELETE FROM reveals WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete reveal: %w", err)
	}
	return nil
}

func (r *RevealRepository) queryReveals(query string, args ...interface{}) ([]models.Reveal, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reveals: %w", err)
	}
	defer rows.Close()

	reveals := []models.Reveal{}
	for rows.Next() {
		reveal, err := scanReveal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reveal: %w", err)
		}
		reveals = append(reveals, *reveal)
	}
	return reveals, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReveal(row rowScanner) (*models.Reveal, error) {
	var reveal models.Reveal
	var solutionJSON, closeJSON, category string
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&reveal.ID,
		&reveal.Name,
		&solutionJSON,
		&closeJSON,
		&category,
		&reveal.Description,
		&reveal.IsActive,
		&reveal.GithubID,
		&reveal.ImageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(solutionJSON), &reveal.SolutionWords); err != nil {
		return nil, fmt.Errorf("failed to decode solution words: %w", err)
	}
	if closeJSON != "" {
		if err := json.Unmarshal([]byte(closeJSON), &reveal.CloseSolutionWords); err != nil {
			return nil, fmt.Errorf("failed to decode close solution words: %w", err)
		}
	}

	reveal.Category = models.Category(category)
	reveal.CreatedAt = createdAt
	reveal.UpdatedAt = updatedAt
	return &reveal, nil
}
