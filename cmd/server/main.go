package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"

	"revealhub/internal/config"
	"revealhub/internal/database"
	"revealhub/internal/game"
	"revealhub/internal/handlers"
	"revealhub/internal/images"
	"revealhub/internal/repository"
	"revealhub/internal/security"
	"revealhub/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Image storage under the static files dir
	imageStore, err := images.NewStore(filepath.Join(cfg.StaticFilesPath, "images"), "/static/images", cfg.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	revealRepo := repository.NewRevealRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	highScoreRepo := repository.NewHighScoreRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionDuration)
	revealService := service.NewRevealService(revealRepo, favoriteRepo, imageStore)
	highScoreService := service.NewHighScoreService(highScoreRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Game session engine
	engine := game.NewManager(revealService)

	githubOAuth := &oauth2.Config{
		ClientID:     cfg.GithubClientID,
		ClientSecret: cfg.GithubClientSecret,
		Endpoint:     oauthgithub.Endpoint,
		Scopes:       []string{"read:user", "user:email"},
	}

	// Initialize handlers
	jwtSecret := []byte(cfg.JWTSecret)
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, jwtSecret, limiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, githubOAuth,
		cfg.OAuthRedirectBaseURL, cfg.AppBaseURL, jwtSecret, cfg.SessionDuration)
	revealHandler := handlers.NewRevealHandler(revealService, imageStore, cfg.UploadMaxSize)
	highScoreHandler := handlers.NewHighScoreHandler(highScoreService)
	gameHandler := handlers.NewGameHandler(engine)
	userHandler := handlers.NewUserHandler(revealService)

	// Setup routes
	mux := http.NewServeMux()

	// Static files (uploaded images)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Auth
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/token", middleware.RateLimit(authHandler.Token))
	mux.HandleFunc("GET /api/auth/github/start", authHandler.StartGithubOAuth)
	mux.HandleFunc("GET /api/auth/github/callback", authHandler.GithubCallback)
	mux.HandleFunc("POST /api/auth/request-password-reset", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /api/auth/reset-password/validate", authHandler.ValidateResetToken)
	mux.HandleFunc("POST /api/auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	// Users
	mux.HandleFunc("GET /api/users/me", middleware.OptionalAuth(userHandler.Me))
	mux.HandleFunc("GET /api/users/me/details", middleware.RequireAuth(userHandler.MeDetails))
	mux.HandleFunc("GET /api/users/me/my-reveals", middleware.RequireAuth(userHandler.MyReveals))
	mux.HandleFunc("POST /api/users/logout", authHandler.Logout)

	// Reveal catalog
	mux.HandleFunc("GET /api/reveal-hub", revealHandler.GetAll)
	mux.HandleFunc("GET /api/reveal-hub/active", revealHandler.GetActive)
	mux.HandleFunc("GET /api/reveal-hub/active/categories", revealHandler.GetActiveCategories)
	mux.HandleFunc("GET /api/reveal-hub/active/category/{category}", revealHandler.GetActiveByCategory)
	mux.HandleFunc("GET /api/reveal-hub/{id}", revealHandler.GetByID)
	mux.HandleFunc("POST /api/reveal-hub", middleware.RequireAuth(revealHandler.Create))
	mux.HandleFunc("PUT /api/reveal-hub/{id}", middleware.RequireAuth(revealHandler.Update))
	mux.HandleFunc("PUT /api/reveal-hub/{id}/toggle-active", middleware.RequireAuth(revealHandler.ToggleActive))
	mux.HandleFunc("DELETE /api/reveal-hub/{id}", middleware.RequireAuth(revealHandler.Delete))

	// Favorites
	mux.HandleFunc("GET /api/reveal-hub/favorites", middleware.RequireAuth(revealHandler.GetFavorites))
	mux.HandleFunc("POST /api/reveal-hub/favorites/{revealId}", middleware.RequireAuth(revealHandler.AddFavorite))
	mux.HandleFunc("DELETE /api/reveal-hub/favorites/{revealId}", middleware.RequireAuth(revealHandler.RemoveFavorite))

	// Game
	mux.HandleFunc("GET /api/reveal-hub/play", middleware.OptionalAuth(gameHandler.Snapshot))
	mux.HandleFunc("POST /api/reveal-hub/play/category", middleware.OptionalAuth(gameHandler.SelectCategory))
	mux.HandleFunc("POST /api/reveal-hub/play/random-category", middleware.OptionalAuth(gameHandler.SelectRandomCategory))
	mux.HandleFunc("POST /api/reveal-hub/play/mode", middleware.OptionalAuth(gameHandler.ToggleMode))
	mux.HandleFunc("POST /api/reveal-hub/play/start", middleware.OptionalAuth(gameHandler.Start))
	mux.HandleFunc("POST /api/reveal-hub/play/reveal", middleware.OptionalAuth(gameHandler.Reveal))
	mux.HandleFunc("POST /api/reveal-hub/play/guess", middleware.OptionalAuth(gameHandler.Guess))
	mux.HandleFunc("POST /api/reveal-hub/play/reset", middleware.OptionalAuth(gameHandler.Reset))

	// High scores
	mux.HandleFunc("GET /api/high-score/reveal-over-time", highScoreHandler.GetByTime)
	mux.HandleFunc("GET /api/high-score/reveal-with-clicks", highScoreHandler.GetByClicks)
	mux.HandleFunc("POST /api/high-score", middleware.OptionalAuth(highScoreHandler.Submit))
	mux.HandleFunc("DELETE /api/high-score/{id}", middleware.RequireAdmin(highScoreHandler.Delete))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup of expired sessions and reset tokens
	go cleanupExpired(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpired periodically removes expired sessions and reset tokens
func cleanupExpired(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
		if err := authService.CleanupExpiredPasswordResetTokens(); err != nil {
			log.Printf("Reset token cleanup failed: %v", err)
		}
	}
}
