package game

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"revealhub/internal/models"
)

// TotalTiles is the number of mosaic tiles covering a reveal image
const TotalTiles = 36

// Status is the lifecycle state of a game session
type Status string

const (
	StatusPlaying Status = "PLAYING"
	StatusSolved  Status = "SOLVED"
)

// Session is one play attempt against a single reveal. It is not safe for
// concurrent use; the Manager serializes all access.
type Session struct {
	ID             string
	Item           models.Reveal
	Mode           models.GameMode
	Status         Status
	ClickCount     int
	ElapsedSeconds float64

	revealed map[int]bool
}

// NewSession creates a fresh session for an item with no tiles revealed
func NewSession(item models.Reveal, mode models.GameMode) *Session {
	return &Session{
		ID:       uuid.New().String(),
		Item:     item,
		Mode:     mode,
		Status:   StatusPlaying,
		revealed: make(map[int]bool, TotalTiles),
	}
}

// RevealedCount returns how many tiles are uncovered
func (s *Session) RevealedCount() int {
	return len(s.revealed)
}

// RevealedTiles returns the uncovered tile indices in ascending order
func (s *Session) RevealedTiles() []int {
	tiles := make([]int, 0, len(s.revealed))
	for idx := range s.revealed {
		tiles = append(tiles, idx)
	}
	sort.Ints(tiles)
	return tiles
}

// RevealNext uncovers one uniformly chosen hidden tile. It reports the
// revealed index and false when every tile is already uncovered.
func (s *Session) RevealNext() (int, bool) {
	hidden := make([]int, 0, TotalTiles-len(s.revealed))
	for i := 0; i < TotalTiles; i++ {
		if !s.revealed[i] {
			hidden = append(hidden, i)
		}
	}
	if len(hidden) == 0 {
		return 0, false
	}
	idx := hidden[rand.Intn(len(hidden))]
	s.revealed[idx] = true
	return idx, true
}

// RevealAll uncovers every tile; used when the session is solved
func (s *Session) RevealAll() {
	for i := 0; i < TotalTiles; i++ {
		s.revealed[i] = true
	}
}

// Solve freezes the session in its won state and uncovers the full image
func (s *Session) Solve() {
	s.Status = StatusSolved
	s.RevealAll()
}
