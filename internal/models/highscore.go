package models

import "time"

// AnonymousGithubID marks high scores submitted without a GitHub login.
const AnonymousGithubID = "anonymousUser"

// HighScore is a leaderboard entry for one finished game session.
type HighScore struct {
	ID             string    `json:"id"`
	PlayerName     string    `json:"playerName"`
	GithubID       string    `json:"githubId"`
	Category       Category  `json:"category"`
	GameMode       GameMode  `json:"gameMode"`
	ScoreTime      float64   `json:"scoreTime"`
	NumberOfClicks int       `json:"numberOfClicks"`
	Date           time.Time `json:"date"`
}

// ScoreValue returns the metric the leaderboard ranks by for the entry's mode.
// Lower is better in both modes.
func (h HighScore) ScoreValue() float64 {
	if h.GameMode == RevealWithClicks {
		return float64(h.NumberOfClicks)
	}
	return h.ScoreTime
}
