package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"revealhub/internal/models"
	"revealhub/internal/security"
	"revealhub/internal/service"
	"revealhub/internal/validation"
)

// AuthHandler handles registration, login and password reset
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	oauthConfig          *oauth2.Config
	oauthRedirectBaseURL string
	appBaseURL           string
	jwtSecret            []byte
	tokenLifetime        time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService,
	oauthConfig *oauth2.Config, oauthRedirectBaseURL, appBaseURL string,
	jwtSecret []byte, tokenLifetime time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		oauthConfig:          oauthConfig,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
		appBaseURL:           appBaseURL,
		jwtSecret:            jwtSecret,
		tokenLifetime:        tokenLifetime,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, "An account with this email already exists", "", nil)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Registration failed", err)
		}
		return
	}

	if h.emailService != nil && h.emailService.IsEnabled() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			_ = h.emailService.SendWelcomeEmail(ctx, user.Email, user.Name)
		}()
	}

	h.respondWithLogin(w, r, user, nil, http.StatusCreated)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Login failed", err)
		return
	}

	h.respondWithLogin(w, r, user, session, http.StatusOK)
}

// Token handles POST /api/auth/token: exchanges credentials for a bearer
// token without creating a cookie session.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password", "", nil)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Token issuance failed", err)
		return
	}

	token, exp, err := security.SignToken(h.jwtSecret, security.TokenClaims{
		UserID:   user.ID,
		GithubID: user.GithubID,
		Name:     user.Name,
	}, h.tokenLifetime)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Token signing failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":     token,
		"expiresAt": exp,
	})
}

// Logout handles POST /api/users/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Logout failed", err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	if _, err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Password reset request failed", err)
		return
	}

	// Same response whether or not the address exists
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for that address, a reset link has been sent",
	})
}

// ValidateResetToken handles GET /api/auth/reset-password/validate
func (h *AuthHandler) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	valid, err := h.authService.ValidatePasswordResetToken(token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Reset token validation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", err)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			respondWithError(w, http.StatusBadRequest, validationErr.Error(), "", nil)
			return
		}
		respondWithError(w, http.StatusBadRequest, err.Error(), "", nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

// respondWithLogin issues a bearer token, sets the session cookie when a
// session exists, and writes the login response.
func (h *AuthHandler) respondWithLogin(w http.ResponseWriter, r *http.Request, user *models.User, session *models.Session, status int) {
	token, _, err := security.SignToken(h.jwtSecret, security.TokenClaims{
		UserID:   user.ID,
		GithubID: user.GithubID,
		Name:     user.Name,
	}, h.tokenLifetime)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Token signing failed", err)
		return
	}

	if session != nil {
		http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	}
	writeJSON(w, status, authResponse{User: user, Token: token})
}
