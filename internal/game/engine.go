package game

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"revealhub/internal/models"
)

const (
	// DefaultTickInterval advances the elapsed-time clock
	DefaultTickInterval = 100 * time.Millisecond
	// DefaultRevealInterval uncovers one tile in timed mode
	DefaultRevealInterval = 3 * time.Second

	// idle player states are dropped after this long without activity
	playerTTL = time.Hour
)

var (
	ErrSessionActive     = errors.New("cannot change mode while a game is in progress")
	ErrNoActiveSession   = errors.New("no active game session")
	ErrStaleSession      = errors.New("request refers to a previous game session")
	ErrRevealUnavailable = errors.New("no further reveals available")
)

// Phase is the player-visible state of the play screen
type Phase string

const (
	PhasePreview Phase = "PREVIEW"
	PhasePlaying Phase = "PLAYING"
	PhaseSolved  Phase = "SOLVED"
)

// CatalogSource supplies the active catalog the engine draws sessions from
type CatalogSource interface {
	GetActiveCategories() ([]models.Category, error)
	GetActiveRevealsByCategory(category models.Category) ([]models.Reveal, error)
}

// Snapshot is the full play-screen state returned by every engine operation.
// SessionID identifies the session a client must echo back on session-bound
// requests so responses to a discarded session can be told apart.
type Snapshot struct {
	Phase          Phase           `json:"phase"`
	SessionID      string          `json:"sessionId,omitempty"`
	Category       models.Category `json:"category,omitempty"`
	Mode           models.GameMode `json:"mode"`
	PoolSize       int             `json:"poolSize"`
	RevealedTiles  []int           `json:"revealedTiles"`
	ClickCount     int             `json:"clickCount"`
	ElapsedSeconds float64         `json:"elapsedSeconds"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	ItemID         string          `json:"itemId,omitempty"`
	ItemName       string          `json:"itemName,omitempty"`
	LastGuess      GuessResult     `json:"lastGuess,omitempty"`
}

type playerState struct {
	pool         []models.Reveal
	poolCategory models.Category
	mode         models.GameMode
	session      *Session
	stopTicker   chan struct{}
	lastActive   time.Time
}

// Manager owns all live game sessions, keyed by player identity. All state
// access is serialized through its mutex; ticker goroutines re-check the
// session they were started for before touching it, so a tick from a
// discarded session can never mutate a newer one.
type Manager struct {
	catalog        CatalogSource
	tickInterval   time.Duration
	revealInterval time.Duration

	mu      sync.Mutex
	players map[string]*playerState
}

// NewManager creates a session manager with production tick intervals
func NewManager(catalog CatalogSource) *Manager {
	return NewManagerWithIntervals(catalog, DefaultTickInterval, DefaultRevealInterval)
}

// NewManagerWithIntervals creates a session manager with explicit tick
// intervals; tests use short ones.
func NewManagerWithIntervals(catalog CatalogSource, tick, reveal time.Duration) *Manager {
	m := &Manager{
		catalog:        catalog,
		tickInterval:   tick,
		revealInterval: reveal,
		players:        make(map[string]*playerState),
	}
	go m.cleanupLoop()
	return m
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		m.mu.Lock()
		for owner, st := range m.players {
			if time.Since(st.lastActive) > playerTTL {
				m.stopTickerLocked(st)
				delete(m.players, owner)
			}
		}
		m.mu.Unlock()
	}
}

func (m *Manager) state(owner string) *playerState {
	st, ok := m.players[owner]
	if !ok {
		st = &playerState{mode: models.RevealOverTime}
		m.players[owner] = st
	}
	st.lastActive = time.Now()
	return st
}

// SelectCategory loads the active items of a category as the candidate pool.
// Unknown or inactive categories are silently ignored and the current state
// is returned unchanged.
func (m *Manager) SelectCategory(owner string, category models.Category) (Snapshot, error) {
	active, err := m.catalog.GetActiveCategories()
	if err != nil {
		return Snapshot{}, err
	}
	found := false
	for _, c := range active {
		if c == category {
			found = true
			break
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(owner)
	if !found {
		return m.snapshotLocked(st), nil
	}

	pool, err := m.catalog.GetActiveRevealsByCategory(category)
	if err != nil {
		return Snapshot{}, err
	}
	st.pool = pool
	st.poolCategory = category
	return m.snapshotLocked(st), nil
}

// SelectRandomCategory picks one active category uniformly at random and
// selects it. A no-op when no categories are active.
func (m *Manager) SelectRandomCategory(owner string) (Snapshot, error) {
	active, err := m.catalog.GetActiveCategories()
	if err != nil {
		return Snapshot{}, err
	}
	if len(active) == 0 {
		m.mu.Lock()
		defer m.mu.Unlock()
		return m.snapshotLocked(m.state(owner)), nil
	}
	return m.SelectCategory(owner, active[rand.Intn(len(active))])
}

// ToggleMode flips the scoring mode. Rejected while a game is in progress.
func (m *Manager) ToggleMode(owner string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(owner)
	if st.session != nil && st.session.Status == StatusPlaying {
		return m.snapshotLocked(st), ErrSessionActive
	}
	if st.mode == models.RevealOverTime {
		st.mode = models.RevealWithClicks
	} else {
		st.mode = models.RevealOverTime
	}
	return m.snapshotLocked(st), nil
}

// StartGame begins a session with one item picked uniformly at random from
// the candidate pool. A no-op when the pool is empty. Starting over an
// existing session discards it.
func (m *Manager) StartGame(owner string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(owner)
	if len(st.pool) == 0 {
		return m.snapshotLocked(st), nil
	}

	m.stopTickerLocked(st)
	item := st.pool[rand.Intn(len(st.pool))]
	st.session = NewSession(item, st.mode)

	if st.mode == models.RevealOverTime {
		stop := make(chan struct{})
		st.stopTicker = stop
		go m.runTicker(owner, st.session.ID, stop)
	}
	return m.snapshotLocked(st), nil
}

// RevealTile uncovers one tile in click mode, charging one click. The
// sessionID must match the live session.
func (m *Manager) RevealTile(owner, sessionID string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.liveSessionLocked(owner, sessionID)
	if err != nil {
		return m.snapshotLocked(m.state(owner)), err
	}
	if st.session.Mode != models.RevealWithClicks || st.session.ClickCount >= TotalTiles {
		return m.snapshotLocked(st), ErrRevealUnavailable
	}
	if _, ok := st.session.RevealNext(); !ok {
		return m.snapshotLocked(st), ErrRevealUnavailable
	}
	st.session.ClickCount++
	return m.snapshotLocked(st), nil
}

// Guess evaluates a submitted answer against the live session's item. An
// exact match solves the session, freezes its counters and uncovers the
// full image.
func (m *Manager) Guess(owner, sessionID, text string) (GuessResult, Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, err := m.liveSessionLocked(owner, sessionID)
	if err != nil {
		return GuessMiss, m.snapshotLocked(m.state(owner)), err
	}

	result := Evaluate(text, &st.session.Item)
	if result == GuessExact {
		m.stopTickerLocked(st)
		st.session.Solve()
	}
	snap := m.snapshotLocked(st)
	snap.LastGuess = result
	return result, snap, nil
}

// Reset discards the session and candidate pool and returns to the preview
// state. Always succeeds.
func (m *Manager) Reset(owner string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.state(owner)
	m.stopTickerLocked(st)
	st.session = nil
	st.pool = nil
	st.poolCategory = ""
	return m.snapshotLocked(st)
}

// Snapshot returns the current play-screen state without changing it
func (m *Manager) Snapshot(owner string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(m.state(owner))
}

func (m *Manager) liveSessionLocked(owner, sessionID string) (*playerState, error) {
	st := m.state(owner)
	if st.session == nil {
		return nil, ErrNoActiveSession
	}
	if st.session.ID != sessionID {
		return nil, ErrStaleSession
	}
	if st.session.Status != StatusPlaying {
		return nil, ErrNoActiveSession
	}
	return st, nil
}

func (m *Manager) stopTickerLocked(st *playerState) {
	if st.stopTicker != nil {
		close(st.stopTicker)
		st.stopTicker = nil
	}
}

// runTicker drives a timed-mode session: elapsed time advances every tick
// and one tile is uncovered per reveal interval until all are shown. The
// goroutine exits when stopped or when the session it was started for is
// no longer the live one.
func (m *Manager) runTicker(owner, sessionID string, stop <-chan struct{}) {
	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	ticksPerReveal := int(m.revealInterval / m.tickInterval)
	if ticksPerReveal < 1 {
		ticksPerReveal = 1
	}
	ticks := 0

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			st, ok := m.players[owner]
			if !ok || st.session == nil || st.session.ID != sessionID || st.session.Status != StatusPlaying {
				m.mu.Unlock()
				return
			}
			st.session.ElapsedSeconds += m.tickInterval.Seconds()
			ticks++
			if ticks%ticksPerReveal == 0 {
				st.session.RevealNext()
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) snapshotLocked(st *playerState) Snapshot {
	snap := Snapshot{
		Phase:    PhasePreview,
		Mode:     st.mode,
		PoolSize: len(st.pool),
		Category: st.poolCategory,
	}
	if st.session == nil {
		snap.RevealedTiles = []int{}
		return snap
	}

	s := st.session
	snap.SessionID = s.ID
	snap.Mode = s.Mode
	snap.RevealedTiles = s.RevealedTiles()
	snap.ClickCount = s.ClickCount
	snap.ElapsedSeconds = s.ElapsedSeconds
	snap.ImageURL = s.Item.ImageURL
	snap.ItemID = s.Item.ID
	switch s.Status {
	case StatusSolved:
		snap.Phase = PhaseSolved
		snap.ItemName = s.Item.Name
	default:
		snap.Phase = PhasePlaying
	}
	return snap
}
