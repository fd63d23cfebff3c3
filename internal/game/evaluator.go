package game

import (
	"strings"

	"revealhub/internal/models"
)

// GuessResult classifies a submitted guess
type GuessResult string

const (
	GuessExact GuessResult = "EXACT"
	GuessNear  GuessResult = "NEAR"
	GuessMiss  GuessResult = "MISS"
)

// Evaluate classifies a guess against a reveal's solution word sets. The
// guess is trimmed and compared case-insensitively. Pure and total: any
// input, including the empty string, yields a result.
func Evaluate(guess string, item *models.Reveal) GuessResult {
	if item == nil {
		return GuessMiss
	}
	normalized := strings.TrimSpace(guess)
	if normalized == "" {
		return GuessMiss
	}

	if matchesAny(normalized, item.SolutionWords) {
		return GuessExact
	}
	if matchesAny(normalized, item.CloseSolutionWords) {
		return GuessNear
	}
	return GuessMiss
}

func matchesAny(normalized string, words []string) bool {
	for _, w := range words {
		if strings.EqualFold(normalized, strings.TrimSpace(w)) {
			return true
		}
	}
	return false
}
