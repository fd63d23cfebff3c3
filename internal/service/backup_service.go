package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"revealhub/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Users      []UserBackup      `json:"users"`
	Reveals    []RevealBackup    `json:"reveals"`
	Favorites  []FavoriteBackup  `json:"favorites"`
	HighScores []HighScoreBackup `json:"high_scores"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	GithubID     string    `json:"github_id"`
	Username     string    `json:"username"`
	AvatarURL    string    `json:"avatar_url"`
	GithubURL    string    `json:"github_url"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RevealBackup represents a catalog entry for backup. Word lists stay in
// their stored JSON form so the import can write them back verbatim.
type RevealBackup struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SolutionWords      string    `json:"solution_words"`
	CloseSolutionWords string    `json:"close_solution_words"`
	Category           string    `json:"category"`
	Description        string    `json:"description"`
	IsActive           bool      `json:"is_active"`
	GithubID           string    `json:"github_id"`
	ImageURL           string    `json:"image_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FavoriteBackup represents a favorite link for backup
type FavoriteBackup struct {
	UserID   int64  `json:"user_id"`
	RevealID string `json:"reveal_id"`
}

// HighScoreBackup represents a leaderboard entry for backup
type HighScoreBackup struct {
	ID             string    `json:"id"`
	PlayerName     string    `json:"player_name"`
	GithubID       string    `json:"github_id"`
	Category       string    `json:"category"`
	GameMode       string    `json:"game_mode"`
	ScoreTime      float64   `json:"score_time"`
	NumberOfClicks int       `json:"number_of_clicks"`
	Date           time.Time `json:"date"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportReveals(backup); err != nil {
		return fmt.Errorf("failed to export reveals: %w", err)
	}
	if err := s.exportFavorites(backup); err != nil {
		return fmt.Errorf("failed to export favorites: %w", err)
	}
	if err := s.exportHighScores(backup); err != nil {
		return fmt.Errorf("failed to export high scores: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d reveals, %d favorites, %d high scores",
		len(backup.Users), len(backup.Reveals), len(backup.Favorites), len(backup.HighScores))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file
// uploads). The whole restore runs in one transaction so a failed import
// leaves no partial data behind.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	// Import in dependency order: favorites reference users and reveals
	if err := s.importUsers(tx, backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importReveals(tx, backup.Reveals); err != nil {
		return fmt.Errorf("failed to import reveals: %w", err)
	}
	if err := s.importFavorites(tx, backup.Favorites); err != nil {
		return fmt.Errorf("failed to import favorites: %w", err)
	}
	if err := s.importHighScores(tx, backup.HighScores); err != nil {
		return fmt.Errorf("failed to import high scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, email, password_hash, name,
		COALESCE(github_id, ''), COALESCE(username, ''), COALESCE(avatar_url, ''), COALESCE(github_url, ''),
		is_admin, created_at, updated_at FROM users ORDER BY id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name,
			&u.GithubID, &u.Username, &u.AvatarURL, &u.GithubURL,
			&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportReveals(backup *BackupData) error {
	query := `SELECT id, name, solution_words, close_solution_words, category,
		description, is_active, github_id, image_url, created_at, updated_at
		FROM reveals ORDER BY created_at`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r RevealBackup
		if err := rows.Scan(&r.ID, &r.Name, &r.SolutionWords, &r.CloseSolutionWords, &r.Category,
			&r.Description, &r.IsActive, &r.GithubID, &r.ImageURL, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return err
		}
		backup.Reveals = append(backup.Reveals, r)
	}
	return rows.Err()
}

func (s *BackupService) exportFavorites(backup *BackupData) error {
	query := "SELECT user_id, reveal_id FROM favorites ORDER BY user_id, reveal_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var f FavoriteBackup
		if err := rows.Scan(&f.UserID, &f.RevealID); err != nil {
			return err
		}
		backup.Favorites = append(backup.Favorites, f)
	}
	return rows.Err()
}

func (s *BackupService) exportHighScores(backup *BackupData) error {
	query := `SELECT id, player_name, github_id, category, game_mode,
		score_time, number_of_clicks, date FROM high_scores ORDER BY date`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var h HighScoreBackup
		if err := rows.Scan(&h.ID, &h.PlayerName, &h.GithubID, &h.Category, &h.GameMode,
			&h.ScoreTime, &h.NumberOfClicks, &h.Date); err != nil {
			return err
		}
		backup.HighScores = append(backup.HighScores, h)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(tx database.DBTX, users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := `INSERT INTO users (id, email, password_hash, name, github_id, username, avatar_url, github_url, is_admin, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name,
			nullIfEmpty(u.GithubID), nullIfEmpty(u.Username), nullIfEmpty(u.AvatarURL), nullIfEmpty(u.GithubURL),
			u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importReveals(tx database.DBTX, reveals []RevealBackup) error {
	log.Printf("Importing %d reveals...", len(reveals))
	for _, r := range reveals {
		query := `INSERT INTO reveals (id, name, solution_words, close_solution_words, category, description, is_active, github_id, image_url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.Exec(query, r.ID, r.Name, r.SolutionWords, r.CloseSolutionWords, r.Category,
			r.Description, r.IsActive, r.GithubID, r.ImageURL, r.CreatedAt, r.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import reveal %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importFavorites(tx database.DBTX, favorites []FavoriteBackup) error {
	log.Printf("Importing %d favorites...", len(favorites))
	for _, f := range favorites {
		query := "INSERT INTO favorites (user_id, reveal_id) VALUES (?, ?)"
		if _, err := tx.Exec(query, f.UserID, f.RevealID); err != nil {
			return fmt.Errorf("failed to import favorite %d/%s: %w", f.UserID, f.RevealID, err)
		}
	}
	return nil
}

func (s *BackupService) importHighScores(tx database.DBTX, scores []HighScoreBackup) error {
	log.Printf("Importing %d high scores...", len(scores))
	for _, h := range scores {
		query := `INSERT INTO high_scores (id, player_name, github_id, category, game_mode, score_time, number_of_clicks, date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := tx.Exec(query, h.ID, h.PlayerName, h.GithubID, h.Category, h.GameMode,
			h.ScoreTime, h.NumberOfClicks, h.Date)
		if err != nil {
			return fmt.Errorf("failed to import high score %s: %w", h.ID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
