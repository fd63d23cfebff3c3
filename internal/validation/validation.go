package validation

import (
	"fmt"
	"regexp"
	"strings"

	"revealhub/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidatePlayerName checks the name attached to a high-score entry.
// Entries with shorter names are rejected locally and never persisted.
func ValidatePlayerName(playerName string) error {
	if len(strings.TrimSpace(playerName)) < 3 {
		return ValidationError{Field: "playerName", Message: "player name must be at least 3 characters"}
	}
	return nil
}

// ValidateReveal checks the client-supplied fields of a reveal
func ValidateReveal(input models.RevealInput) error {
	if len(strings.TrimSpace(input.Name)) < 3 {
		return ValidationError{Field: "name", Message: "name must be at least 3 characters"}
	}
	if len(input.SolutionWords) == 0 {
		return ValidationError{Field: "solutionWords", Message: "solution words cannot be empty"}
	}
	for _, word := range input.SolutionWords {
		if strings.TrimSpace(word) == "" {
			return ValidationError{Field: "solutionWords", Message: "solution words cannot be blank"}
		}
	}
	if !input.Category.Valid() {
		return ValidationError{Field: "category", Message: "unknown category"}
	}
	return nil
}
