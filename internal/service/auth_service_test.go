package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"revealhub/internal/database"
	"revealhub/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "auth.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewAuthService(repository.NewUserRepository(db), time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register("player@example.com", "supersecret", "Player One")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "player@example.com" {
		t.Errorf("email = %q, want player@example.com", user.Email)
	}
	if user.PasswordHash == "supersecret" {
		t.Error("password must be stored hashed")
	}
	if !user.IsAdmin {
		t.Error("first registered user should be admin")
	}

	session, loggedIn, err := svc.Login("player@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user id = %d, want %d", loggedIn.ID, user.ID)
	}
	if session.ID == "" {
		t.Error("expected a session id")
	}

	validated, err := svc.ValidateSession(session.ID)
	if err != nil {
		t.Fatalf("ValidateSession failed: %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("validated user id = %d, want %d", validated.ID, user.ID)
	}
}

func TestSecondUserIsNotAdmin(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("first@example.com", "supersecret", "First"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	second, err := svc.Register("second@example.com", "supersecret", "Second")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if second.IsAdmin {
		t.Error("second user should not be admin")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("player@example.com", "supersecret", "Player"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register("player@example.com", "othersecret", "Other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("player@example.com", "supersecret", "Player"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, _, err := svc.Login("player@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login("unknown@example.com", "supersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("player@example.com", "supersecret", "Player"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	session, _, err := svc.Login("player@example.com", "supersecret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(session.ID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := svc.ValidateSession(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
}

func TestGithubLoginCreatesAndReusesAccount(t *testing.T) {
	svc := newAuthService(t)

	profile := GithubProfile{
		ID:        99,
		Login:     "octocat",
		Name:      "The Octocat",
		AvatarURL: "https://avatars.example.com/octocat",
		HTMLURL:   "https://github.com/octocat",
	}

	_, created, err := svc.GithubLogin(profile)
	if err != nil {
		t.Fatalf("GithubLogin failed: %v", err)
	}
	if created.GithubID != "99" {
		t.Errorf("GithubID = %q, want 99", created.GithubID)
	}
	if created.Username != "octocat" {
		t.Errorf("Username = %q, want octocat", created.Username)
	}

	_, again, err := svc.GithubLogin(profile)
	if err != nil {
		t.Fatalf("second GithubLogin failed: %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("expected the same account on repeat login, got %d and %d", created.ID, again.ID)
	}
}

func TestGithubLoginLinksExistingEmailAccount(t *testing.T) {
	svc := newAuthService(t)

	local, err := svc.Register("dev@example.com", "supersecret", "Dev")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, linked, err := svc.GithubLogin(GithubProfile{ID: 7, Login: "dev", Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("GithubLogin failed: %v", err)
	}
	if linked.ID != local.ID {
		t.Errorf("expected link to existing account %d, got %d", local.ID, linked.ID)
	}
	if linked.GithubID != "7" {
		t.Errorf("GithubID = %q, want 7", linked.GithubID)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Register("player@example.com", "supersecret", "Player"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Unknown addresses are silently accepted
	token, err := svc.RequestPasswordReset(context.Background(), nil, "nobody@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset for unknown email failed: %v", err)
	}
	if token != "" {
		t.Error("unknown address should not yield a token")
	}

	token, err = svc.RequestPasswordReset(context.Background(), nil, "player@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a reset token")
	}

	valid, err := svc.ValidatePasswordResetToken(token)
	if err != nil {
		t.Fatalf("ValidatePasswordResetToken failed: %v", err)
	}
	if !valid {
		t.Fatal("fresh token should be valid")
	}

	if err := svc.ResetPassword(token, "newpassword"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, _, err := svc.Login("player@example.com", "supersecret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password should no longer work")
	}
	if _, _, err := svc.Login("player@example.com", "newpassword"); err != nil {
		t.Errorf("new password should work: %v", err)
	}

	// Tokens are single use
	if err := svc.ResetPassword(token, "anotherpassword"); err == nil {
		t.Error("used token should be rejected")
	}
}
