package models

import (
	"fmt"
	"strings"
)

// GameMode is the scoring discipline for a game session.
type GameMode string

const (
	// RevealOverTime scores by elapsed time; tiles uncover automatically.
	RevealOverTime GameMode = "REVEAL_OVER_TIME"
	// RevealWithClicks scores by manual reveals; tiles uncover on demand.
	RevealWithClicks GameMode = "REVEAL_WITH_CLICKS"
)

// ParseGameMode converts a wire value into a GameMode, rejecting unknown values.
func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(strings.ToUpper(strings.TrimSpace(s))) {
	case RevealOverTime:
		return RevealOverTime, nil
	case RevealWithClicks:
		return RevealWithClicks, nil
	default:
		return "", fmt.Errorf("unknown game mode: %q", s)
	}
}

// DisplayName returns the human-readable name for the game mode.
func (m GameMode) DisplayName() string {
	switch m {
	case RevealOverTime:
		return "Reveal Over Time"
	case RevealWithClicks:
		return "Reveal With Clicks"
	default:
		return string(m)
	}
}

// Valid reports whether m is one of the two supported modes.
func (m GameMode) Valid() bool {
	return m == RevealOverTime || m == RevealWithClicks
}
