package game

import (
	"errors"
	"testing"
	"time"

	"revealhub/internal/models"
)

type fakeCatalog struct {
	categories []models.Category
	pools      map[models.Category][]models.Reveal
}

func (f *fakeCatalog) GetActiveCategories() ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalog) GetActiveRevealsByCategory(category models.Category) ([]models.Reveal, error) {
	return f.pools[category], nil
}

func animalCatalog() *fakeCatalog {
	return &fakeCatalog{
		categories: []models.Category{models.CategoryAnimal},
		pools: map[models.Category][]models.Reveal{
			models.CategoryAnimal: {
				{ID: "r1", Name: "Cat", SolutionWords: []string{"cat"}, Category: models.CategoryAnimal},
				{ID: "r2", Name: "Dog", SolutionWords: []string{"dog"}, Category: models.CategoryAnimal},
				{ID: "r3", Name: "Fox", SolutionWords: []string{"fox"}, Category: models.CategoryAnimal},
			},
		},
	}
}

func newTestManager(catalog CatalogSource) *Manager {
	return NewManagerWithIntervals(catalog, 5*time.Millisecond, 15*time.Millisecond)
}

func TestSelectRandomCategorySingleActive(t *testing.T) {
	m := newTestManager(animalCatalog())

	for i := 0; i < 100; i++ {
		snap, err := m.SelectRandomCategory("player")
		if err != nil {
			t.Fatalf("SelectRandomCategory failed: %v", err)
		}
		if snap.Category != models.CategoryAnimal {
			t.Fatalf("Category = %v, want %v", snap.Category, models.CategoryAnimal)
		}
		if snap.PoolSize != 3 {
			t.Fatalf("PoolSize = %d, want 3", snap.PoolSize)
		}
	}
}

func TestSelectRandomCategoryEmptySet(t *testing.T) {
	m := newTestManager(&fakeCatalog{})

	snap, err := m.SelectRandomCategory("player")
	if err != nil {
		t.Fatalf("SelectRandomCategory failed: %v", err)
	}
	if snap.Phase != PhasePreview || snap.PoolSize != 0 {
		t.Errorf("empty active set should be a no-op, got phase=%v poolSize=%d", snap.Phase, snap.PoolSize)
	}
}

func TestSelectCategoryUnknownIsNoOp(t *testing.T) {
	m := newTestManager(animalCatalog())

	snap, err := m.SelectCategory("player", models.CategoryVehicle)
	if err != nil {
		t.Fatalf("SelectCategory failed: %v", err)
	}
	if snap.PoolSize != 0 {
		t.Errorf("PoolSize = %d after inactive category selection, want 0", snap.PoolSize)
	}
}

func TestStartGameEmptyPoolIsNoOp(t *testing.T) {
	m := newTestManager(animalCatalog())

	snap, err := m.StartGame("player")
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if snap.Phase != PhasePreview || snap.SessionID != "" {
		t.Errorf("StartGame with empty pool should stay in preview, got %+v", snap)
	}
}

func TestStartGamePicksFromPool(t *testing.T) {
	m := newTestManager(animalCatalog())

	if _, err := m.SelectCategory("player", models.CategoryAnimal); err != nil {
		t.Fatal(err)
	}
	if _, err := m.ToggleMode("player"); err != nil {
		t.Fatal(err)
	}
	snap, err := m.StartGame("player")
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if snap.Phase != PhasePlaying {
		t.Fatalf("Phase = %v, want PLAYING", snap.Phase)
	}
	if snap.SessionID == "" {
		t.Error("SessionID empty for live session")
	}
	if snap.Mode != models.RevealWithClicks {
		t.Errorf("Mode = %v, want %v", snap.Mode, models.RevealWithClicks)
	}
	if len(snap.RevealedTiles) != 0 || snap.ClickCount != 0 || snap.ElapsedSeconds != 0 {
		t.Errorf("fresh session has non-zero state: %+v", snap)
	}
	if snap.ItemName != "" {
		t.Errorf("ItemName = %q leaked during play", snap.ItemName)
	}
}

func TestToggleModeRejectedDuringPlay(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	m.ToggleMode("player")
	m.StartGame("player")

	if _, err := m.ToggleMode("player"); !errors.Is(err, ErrSessionActive) {
		t.Errorf("ToggleMode during play = %v, want ErrSessionActive", err)
	}
}

func TestRevealTileClickMode(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	m.ToggleMode("player")
	snap, _ := m.StartGame("player")

	for i := 1; i <= TotalTiles; i++ {
		next, err := m.RevealTile("player", snap.SessionID)
		if err != nil {
			t.Fatalf("RevealTile %d failed: %v", i, err)
		}
		if next.ClickCount != i {
			t.Fatalf("ClickCount = %d after %d reveals", next.ClickCount, i)
		}
		if len(next.RevealedTiles) != i {
			t.Fatalf("len(RevealedTiles) = %d after %d reveals", len(next.RevealedTiles), i)
		}
	}

	if _, err := m.RevealTile("player", snap.SessionID); !errors.Is(err, ErrRevealUnavailable) {
		t.Errorf("RevealTile past cap = %v, want ErrRevealUnavailable", err)
	}
}

func TestRevealTileRejectedInTimedMode(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	snap, _ := m.StartGame("player")

	if _, err := m.RevealTile("player", snap.SessionID); !errors.Is(err, ErrRevealUnavailable) {
		t.Errorf("RevealTile in timed mode = %v, want ErrRevealUnavailable", err)
	}
	m.Reset("player")
}

func TestGuessSolvesWithWhitespaceAndCase(t *testing.T) {
	catalog := &fakeCatalog{
		categories: []models.Category{models.CategoryAnimal},
		pools: map[models.Category][]models.Reveal{
			models.CategoryAnimal: {
				{ID: "r1", Name: "Cat", SolutionWords: []string{"cat"}, Category: models.CategoryAnimal},
			},
		},
	}
	m := newTestManager(catalog)
	m.SelectCategory("player", models.CategoryAnimal)
	m.ToggleMode("player")
	snap, _ := m.StartGame("player")

	result, next, err := m.Guess("player", snap.SessionID, "  CAT  ")
	if err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if result != GuessExact {
		t.Fatalf("Guess result = %v, want EXACT", result)
	}
	if next.Phase != PhaseSolved {
		t.Errorf("Phase = %v after exact guess, want SOLVED", next.Phase)
	}
	if len(next.RevealedTiles) != TotalTiles {
		t.Errorf("solved session shows %d tiles, want %d", len(next.RevealedTiles), TotalTiles)
	}
	if next.ItemName != "Cat" {
		t.Errorf("ItemName = %q after solve, want Cat", next.ItemName)
	}

	// Terminal state: no further guesses against this session
	if _, _, err := m.Guess("player", snap.SessionID, "cat"); !errors.Is(err, ErrNoActiveSession) {
		t.Errorf("Guess after solve = %v, want ErrNoActiveSession", err)
	}
}

func TestGuessMissKeepsPlaying(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	m.ToggleMode("player")
	snap, _ := m.StartGame("player")

	result, next, err := m.Guess("player", snap.SessionID, "submarine")
	if err != nil {
		t.Fatalf("Guess failed: %v", err)
	}
	if result != GuessMiss {
		t.Errorf("Guess result = %v, want MISS", result)
	}
	if next.Phase != PhasePlaying {
		t.Errorf("Phase = %v after miss, want PLAYING", next.Phase)
	}
}

func TestStaleSessionRejected(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	m.ToggleMode("player")
	m.StartGame("player")
	m.SelectCategory("player", models.CategoryAnimal)
	next, _ := m.StartGame("player")

	if _, err := m.RevealTile("player", "old-session-id"); !errors.Is(err, ErrStaleSession) {
		t.Errorf("RevealTile with stale id = %v, want ErrStaleSession", err)
	}
	if _, err := m.RevealTile("player", next.SessionID); err != nil {
		t.Errorf("RevealTile with live id failed: %v", err)
	}
}

func TestTimedModeTicksAndReveals(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	snap, _ := m.StartGame("player")
	if snap.Mode != models.RevealOverTime {
		t.Fatalf("default mode = %v, want %v", snap.Mode, models.RevealOverTime)
	}

	time.Sleep(100 * time.Millisecond)

	next := m.Snapshot("player")
	if next.ElapsedSeconds <= 0 {
		t.Error("ElapsedSeconds did not advance in timed mode")
	}
	if len(next.RevealedTiles) == 0 {
		t.Error("no tiles revealed in timed mode after several reveal intervals")
	}
	m.Reset("player")
}

func TestResetStopsTimers(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("player", models.CategoryAnimal)
	m.StartGame("player")
	time.Sleep(30 * time.Millisecond)

	snap := m.Reset("player")
	if snap.Phase != PhasePreview || snap.SessionID != "" || snap.PoolSize != 0 {
		t.Errorf("Reset did not return to an empty preview state: %+v", snap)
	}

	// No tick may mutate state after reset
	before := m.Snapshot("player")
	time.Sleep(50 * time.Millisecond)
	after := m.Snapshot("player")
	if after.ElapsedSeconds != before.ElapsedSeconds || len(after.RevealedTiles) != len(before.RevealedTiles) {
		t.Errorf("state changed after reset: before=%+v after=%+v", before, after)
	}
}

func TestSolveStopsTimers(t *testing.T) {
	catalog := &fakeCatalog{
		categories: []models.Category{models.CategoryAnimal},
		pools: map[models.Category][]models.Reveal{
			models.CategoryAnimal: {
				{ID: "r1", Name: "Cat", SolutionWords: []string{"cat"}, Category: models.CategoryAnimal},
			},
		},
	}
	m := newTestManager(catalog)
	m.SelectCategory("player", models.CategoryAnimal)
	snap, _ := m.StartGame("player")
	time.Sleep(20 * time.Millisecond)

	_, solved, err := m.Guess("player", snap.SessionID, "cat")
	if err != nil {
		t.Fatalf("Guess failed: %v", err)
	}

	time.Sleep(50 * time.Millisecond)
	after := m.Snapshot("player")
	if after.ElapsedSeconds != solved.ElapsedSeconds {
		t.Errorf("ElapsedSeconds advanced after solve: %v -> %v", solved.ElapsedSeconds, after.ElapsedSeconds)
	}
}

func TestPlayersAreIsolated(t *testing.T) {
	m := newTestManager(animalCatalog())
	m.SelectCategory("alice", models.CategoryAnimal)
	m.ToggleMode("alice")
	aliceSnap, _ := m.StartGame("alice")

	bobSnap := m.Snapshot("bob")
	if bobSnap.Phase != PhasePreview || bobSnap.SessionID != "" {
		t.Errorf("bob sees alice's session: %+v", bobSnap)
	}
	if aliceSnap.SessionID == "" {
		t.Error("alice's session missing")
	}
}
