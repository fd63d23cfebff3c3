package game

import (
	"testing"

	"revealhub/internal/models"
)

func TestRevealNextNeverRepeats(t *testing.T) {
	session := NewSession(models.Reveal{Name: "test"}, models.RevealWithClicks)

	seen := make(map[int]bool)
	for i := 0; i < TotalTiles; i++ {
		idx, ok := session.RevealNext()
		if !ok {
			t.Fatalf("RevealNext returned false after %d reveals, want %d", i, TotalTiles)
		}
		if idx < 0 || idx >= TotalTiles {
			t.Fatalf("revealed tile %d outside [0, %d)", idx, TotalTiles)
		}
		if seen[idx] {
			t.Fatalf("tile %d revealed twice", idx)
		}
		seen[idx] = true

		if got := session.RevealedCount(); got != i+1 {
			t.Fatalf("RevealedCount() = %d after %d reveals", got, i+1)
		}
	}

	if _, ok := session.RevealNext(); ok {
		t.Error("RevealNext succeeded past the tile cap")
	}
	if got := session.RevealedCount(); got != TotalTiles {
		t.Errorf("RevealedCount() = %d, want %d", got, TotalTiles)
	}
}

func TestRevealedTilesSorted(t *testing.T) {
	session := NewSession(models.Reveal{}, models.RevealWithClicks)
	for i := 0; i < 10; i++ {
		session.RevealNext()
	}

	tiles := session.RevealedTiles()
	if len(tiles) != 10 {
		t.Fatalf("len(RevealedTiles()) = %d, want 10", len(tiles))
	}
	for i := 1; i < len(tiles); i++ {
		if tiles[i] <= tiles[i-1] {
			t.Errorf("RevealedTiles not strictly ascending: %v", tiles)
			break
		}
	}
}

func TestSolveRevealsFullImage(t *testing.T) {
	session := NewSession(models.Reveal{}, models.RevealOverTime)
	session.RevealNext()
	session.Solve()

	if session.Status != StatusSolved {
		t.Errorf("Status = %v, want %v", session.Status, StatusSolved)
	}
	if got := session.RevealedCount(); got != TotalTiles {
		t.Errorf("RevealedCount() after solve = %d, want %d", got, TotalTiles)
	}
}
