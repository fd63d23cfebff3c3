package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"revealhub/internal/images"
	"revealhub/internal/models"
	"revealhub/internal/service"
	"revealhub/internal/validation"
)

// RevealHandler handles the reveal catalog and favorites API
type RevealHandler struct {
	revealService *service.RevealService
	imageStore    *images.Store
	uploadMaxSize int64
}

// NewRevealHandler creates a new reveal handler
func NewRevealHandler(revealService *service.RevealService, imageStore *images.Store, uploadMaxSize int64) *RevealHandler {
	return &RevealHandler{
		revealService: revealService,
		imageStore:    imageStore,
		uploadMaxSize: uploadMaxSize,
	}
}

// GetAll handles GET /api/reveal-hub
func (h *RevealHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	reveals, err := h.revealService.GetAllReveals()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load reveals", err)
		return
	}
	writeJSON(w, http.StatusOK, reveals)
}

// GetActive handles GET /api/reveal-hub/active
func (h *RevealHandler) GetActive(w http.ResponseWriter, r *http.Request) {
	reveals, err := h.revealService.GetActiveReveals()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load active reveals", err)
		return
	}
	writeJSON(w, http.StatusOK, reveals)
}

// GetActiveCategories handles GET /api/reveal-hub/active/categories
func (h *RevealHandler) GetActiveCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.revealService.GetActiveCategories()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load categories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetActiveByCategory handles GET /api/reveal-hub/active/category/{category}
func (h *RevealHandler) GetActiveByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(r.PathValue("category"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Unknown category", "", nil)
		return
	}
	reveals, err := h.revealService.GetActiveRevealsByCategory(category)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load reveals by category", err)
		return
	}
	writeJSON(w, http.StatusOK, reveals)
}

// GetByID handles GET /api/reveal-hub/{id}
func (h *RevealHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	reveal, err := h.revealService.GetRevealByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrRevealNotFound) {
			respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load reveal", err)
		return
	}
	writeJSON(w, http.StatusOK, reveal)
}

// Create handles POST /api/reveal-hub (multipart: revealModelDto JSON + optional image)
func (h *RevealHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	input, imageFile, imageHeader, err := h.parseMultipartReveal(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if imageFile != nil {
		defer imageFile.Close()
	}

	input.GithubID = user.Identity()
	if imageFile != nil {
		imageURL, err := h.imageStore.Save(imageFile, imageHeader)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Image upload failed", "", err)
			return
		}
		input.ImageURL = imageURL
	}

	reveal, err := h.revealService.AddReveal(input)
	if err != nil {
		h.respondRevealError(w, err, "Failed to create reveal")
		return
	}
	writeJSON(w, http.StatusCreated, reveal)
}

// Update handles PUT /api/reveal-hub/{id}
func (h *RevealHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id := r.PathValue("id")

	existing, err := h.revealService.CheckOwnership(id, user.Identity())
	if err != nil {
		h.respondRevealError(w, err, "Failed to update reveal")
		return
	}

	input, imageFile, imageHeader, err := h.parseMultipartReveal(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}
	if imageFile != nil {
		defer imageFile.Close()
	}

	input.ImageURL = existing.ImageURL
	if imageFile != nil {
		imageURL, err := h.imageStore.Save(imageFile, imageHeader)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Image upload failed", "", err)
			return
		}
		if existing.ImageURL != "" {
			_ = h.imageStore.Delete(existing.ImageURL)
		}
		input.ImageURL = imageURL
	}

	reveal, err := h.revealService.UpdateReveal(id, input)
	if err != nil {
		h.respondRevealError(w, err, "Failed to update reveal")
		return
	}
	writeJSON(w, http.StatusOK, reveal)
}

// ToggleActive handles PUT /api/reveal-hub/{id}/toggle-active
func (h *RevealHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id := r.PathValue("id")

	if _, err := h.revealService.CheckOwnership(id, user.Identity()); err != nil {
		h.respondRevealError(w, err, "Failed to toggle reveal")
		return
	}

	reveal, err := h.revealService.ToggleRevealActive(id)
	if err != nil {
		h.respondRevealError(w, err, "Failed to toggle reveal")
		return
	}
	writeJSON(w, http.StatusOK, reveal)
}

// Delete handles DELETE /api/reveal-hub/{id}
func (h *RevealHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	id := r.PathValue("id")

	if _, err := h.revealService.CheckOwnership(id, user.Identity()); err != nil {
		h.respondRevealError(w, err, "Failed to delete reveal")
		return
	}

	if err := h.revealService.DeleteReveal(id); err != nil {
		h.respondRevealError(w, err, "Failed to delete reveal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFavorites handles GET /api/reveal-hub/favorites
func (h *RevealHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	reveals, err := h.revealService.GetFavorites(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load favorites", err)
		return
	}
	writeJSON(w, http.StatusOK, reveals)
}

// AddFavorite handles POST /api/reveal-hub/favorites/{revealId}
func (h *RevealHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.revealService.AddFavorite(user.ID, r.PathValue("revealId")); err != nil {
		h.respondRevealError(w, err, "Failed to add favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/reveal-hub/favorites/{revealId}
func (h *RevealHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	if err := h.revealService.RemoveFavorite(user.ID, r.PathValue("revealId")); err != nil {
		h.respondRevealError(w, err, "Failed to remove favorite")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseMultipartReveal extracts the JSON metadata part and the optional
// image part of a reveal create/update request.
func (h *RevealHandler) parseMultipartReveal(r *http.Request) (models.RevealInput, multipart.File, *multipart.FileHeader, error) {
	var input models.RevealInput

	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		return input, nil, nil, err
	}

	dto := r.FormValue("revealModelDto")
	if dto == "" {
		return input, nil, nil, errors.New("missing revealModelDto part")
	}
	if err := json.Unmarshal([]byte(dto), &input); err != nil {
		return input, nil, nil, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, nil, nil, nil
		}
		return input, nil, nil, err
	}
	return input, file, header, nil
}

func (h *RevealHandler) respondRevealError(w http.ResponseWriter, err error, logMsg string) {
	var validationErr validation.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
	case errors.Is(err, service.ErrRevealNotFound):
		respondWithError(w, http.StatusNotFound, ErrNotFound, "", nil)
	case errors.Is(err, service.ErrNotOwner):
		respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}
