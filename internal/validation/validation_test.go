package validation

import (
	"errors"
	"testing"

	"revealhub/internal/models"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "player@example.com", wantErr: false},
		{name: "valid with plus", email: "player+tag@example.com", wantErr: false},
		{name: "empty", email: "", wantErr: true},
		{name: "missing at", email: "playerexample.com", wantErr: true},
		{name: "missing domain", email: "player@", wantErr: true},
		{name: "missing tld", email: "player@example", wantErr: true},
		{name: "whitespace only", email: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("longenough"); err != nil {
		t.Errorf("valid password rejected: %v", err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password should be rejected")
	}
	if err := ValidatePassword(""); err == nil {
		t.Error("empty password should be rejected")
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Jo"); err != nil {
		t.Errorf("two character name rejected: %v", err)
	}
	if err := ValidateName("J"); err == nil {
		t.Error("one character name should be rejected")
	}
	if err := ValidateName("   "); err == nil {
		t.Error("blank name should be rejected")
	}
}

func TestValidatePlayerName(t *testing.T) {
	tests := []struct {
		name       string
		playerName string
		wantErr    bool
	}{
		{name: "three characters", playerName: "Ace", wantErr: false},
		{name: "longer name", playerName: "PuzzleMaster", wantErr: false},
		{name: "two characters", playerName: "Ab", wantErr: true},
		{name: "whitespace padding does not count", playerName: " Ab ", wantErr: true},
		{name: "empty", playerName: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlayerName(tt.playerName)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlayerName(%q) error = %v, wantErr %v", tt.playerName, err, tt.wantErr)
			}
		})
	}
}

func TestValidateReveal(t *testing.T) {
	valid := models.RevealInput{
		Name:          "Eiffel Tower",
		SolutionWords: []string{"eiffel tower", "tour eiffel"},
		Category:      models.CategoryBuilding,
	}
	if err := ValidateReveal(valid); err != nil {
		t.Fatalf("valid reveal rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*models.RevealInput)
		field  string
	}{
		{
			name:   "short name",
			mutate: func(in *models.RevealInput) { in.Name = "ab" },
			field:  "name",
		},
		{
			name:   "no solution words",
			mutate: func(in *models.RevealInput) { in.SolutionWords = nil },
			field:  "solutionWords",
		},
		{
			name:   "blank solution word",
			mutate: func(in *models.RevealInput) { in.SolutionWords = []string{"ok", "  "} },
			field:  "solutionWords",
		},
		{
			name:   "unknown category",
			mutate: func(in *models.RevealInput) { in.Category = "DINOSAUR" },
			field:  "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			err := ValidateReveal(input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var vErr ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("error field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}
