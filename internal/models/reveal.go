package models

import "time"

// Reveal is an entry in the content catalog: an image plus the words that
// count as guessing it.
type Reveal struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	SolutionWords      []string  `json:"solutionWords"`
	CloseSolutionWords []string  `json:"closeSolutionWords"`
	Category           Category  `json:"category"`
	Description        string    `json:"description"`
	IsActive           bool      `json:"isActive"`
	GithubID           string    `json:"githubId"`
	ImageURL           string    `json:"imageUrl"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// RevealInput is the client-supplied part of a reveal (create and update).
type RevealInput struct {
	Name               string   `json:"name"`
	SolutionWords      []string `json:"solutionWords"`
	CloseSolutionWords []string `json:"closeSolutionWords"`
	Category           Category `json:"category"`
	Description        string   `json:"description"`
	IsActive           bool     `json:"isActive"`
	GithubID           string   `json:"githubId"`
	ImageURL           string   `json:"imageUrl"`
}
