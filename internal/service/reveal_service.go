package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"revealhub/internal/models"
	"revealhub/internal/repository"
	"revealhub/internal/validation"
)

var (
	ErrRevealNotFound = errors.New("reveal not found")
	ErrNotOwner       = errors.New("not the owner of this reveal")
)

// ImageStore abstracts the storage backing uploaded reveal images
type ImageStore interface {
	Delete(imageURL string) error
}

// RevealService handles catalog business logic
type RevealService struct {
	revealRepo   *repository.RevealRepository
	favoriteRepo *repository.FavoriteRepository
	images       ImageStore
}

// NewRevealService creates a new reveal service
func NewRevealService(revealRepo *repository.RevealRepository, favoriteRepo *repository.FavoriteRepository, images ImageStore) *RevealService {
	return &RevealService{
		revealRepo:   revealRepo,
		favoriteRepo: favoriteRepo,
		images:       images,
	}
}

// GetAllReveals returns the full catalog
func (s *RevealService) GetAllReveals() ([]models.Reveal, error) {
	return s.revealRepo.GetAll()
}

// GetActiveReveals returns only playable entries
func (s *RevealService) GetActiveReveals() ([]models.Reveal, error) {
	return s.revealRepo.GetAllActive()
}

// GetActiveCategories returns the categories that currently have active reveals
func (s *RevealService) GetActiveCategories() ([]models.Category, error) {
	return s.revealRepo.GetActiveCategories()
}

// GetActiveRevealsByCategory returns the session candidate pool for a category
func (s *RevealService) GetActiveRevealsByCategory(category models.Category) ([]models.Reveal, error) {
	return s.revealRepo.GetActiveByCategory(category)
}

// GetRevealByID returns one reveal or ErrRevealNotFound
func (s *RevealService) GetRevealByID(id string) (*models.Reveal, error) {
	reveal, err := s.revealRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reveal == nil {
		return nil, fmt.Errorf("%w: %s", ErrRevealNotFound, id)
	}
	return reveal, nil
}

// GetRevealsForGithubUser returns all reveals owned by a GitHub user
func (s *RevealService) GetRevealsForGithubUser(githubID string) ([]models.Reveal, error) {
	return s.revealRepo.GetByGithubUser(githubID)
}

// AddReveal validates and stores a new catalog entry with a fresh ID
func (s *RevealService) AddReveal(input models.RevealInput) (*models.Reveal, error) {
	if err := validation.ValidateReveal(input); err != nil {
		return nil, err
	}

	reveal := &models.Reveal{
		ID:                 uuid.New().String(),
		Name:               input.Name,
		SolutionWords:      input.SolutionWords,
		CloseSolutionWords: input.CloseSolutionWords,
		Category:           input.Category,
		Description:        input.Description,
		IsActive:           input.IsActive,
		GithubID:           input.GithubID,
		ImageURL:           input.ImageURL,
	}

	if err := s.revealRepo.Create(reveal); err != nil {
		return nil, err
	}
	return reveal, nil
}

// UpdateReveal validates and replaces an existing entry. The owner and ID
// are kept from the stored reveal.
func (s *RevealService) UpdateReveal(id string, input models.RevealInput) (*models.Reveal, error) {
	if err := validation.ValidateReveal(input); err != nil {
		return nil, err
	}

	existing, err := s.GetRevealByID(id)
	if err != nil {
		return nil, err
	}

	updated := &models.Reveal{
		ID:                 id,
		Name:               input.Name,
		SolutionWords:      input.SolutionWords,
		CloseSolutionWords: input.CloseSolutionWords,
		Category:           input.Category,
		Description:        input.Description,
		IsActive:           input.IsActive,
		GithubID:           existing.GithubID,
		ImageURL:           input.ImageURL,
	}

	if err := s.revealRepo.Update(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ToggleRevealActive flips the active flag of a reveal
func (s *RevealService) ToggleRevealActive(id string) (*models.Reveal, error) {
	reveal, err := s.GetRevealByID(id)
	if err != nil {
		return nil, err
	}

	reveal.IsActive = !reveal.IsActive
	if err := s.revealRepo.Update(reveal); err != nil {
		return nil, err
	}
	return reveal, nil
}

// DeleteReveal removes an entry, its stored image and its favorites references
func (s *RevealService) DeleteReveal(id string) error {
	reveal, err := s.GetRevealByID(id)
	if err != nil {
		return err
	}

	if reveal.ImageURL != "" && s.images != nil {
		if err := s.images.Delete(reveal.ImageURL); err != nil {
			// The catalog row wins over the asset; report and continue
			log.Printf("Failed to delete image for reveal %s: %v", id, err)
		}
	}

	if err := s.favoriteRepo.RemoveAllForReveal(id); err != nil {
		return err
	}
	return s.revealRepo.Delete(id)
}

// GetFavorites returns the reveals a user has favorited
func (s *RevealService) GetFavorites(userID int64) ([]models.Reveal, error) {
	ids, err := s.favoriteRepo.GetFavoriteIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.revealRepo.GetByIDs(ids)
}

// AddFavorite marks a reveal as a favorite of the user
func (s *RevealService) AddFavorite(userID int64, revealID string) error {
	if _, err := s.GetRevealByID(revealID); err != nil {
		return err
	}
	return s.favoriteRepo.Add(userID, revealID)
}

// RemoveFavorite unmarks a reveal as a favorite of the user
func (s *RevealService) RemoveFavorite(userID int64, revealID string) error {
	return s.favoriteRepo.Remove(userID, revealID)
}

// CheckOwnership returns ErrNotOwner unless githubID owns the reveal
func (s *RevealService) CheckOwnership(id, githubID string) (*models.Reveal, error) {
	reveal, err := s.GetRevealByID(id)
	if err != nil {
		return nil, err
	}
	if reveal.GithubID != githubID {
		return nil, ErrNotOwner
	}
	return reveal, nil
}
