package models

import "time"

// User represents an account in the system. Accounts are created either by
// GitHub OAuth login (GithubID set) or by local email/password registration.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	GithubID     string    `json:"githubId"`
	Username     string    `json:"username"`
	AvatarURL    string    `json:"avatarUrl"`
	GithubURL    string    `json:"githubUrl"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity returns the GitHub id used to tag content and scores, or the
// anonymous marker for local-only accounts.
func (u *User) Identity() string {
	if u == nil || u.GithubID == "" {
		return AnonymousGithubID
	}
	return u.GithubID
}

// Session represents an authenticated session
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordResetToken represents a token for password reset
type PasswordResetToken struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
