package store

import (
	"context"
	"testing"

	"github.com/gravitas-games/idlecore/internal/engine"
)

func newState(revision int64) *engine.PlayerState {
	return &engine.PlayerState{
		PlayerID: "player1",
		GameID:   "aviary",
		Revision: revision,
		Balance:  100,
		Home:     engine.Inventory{"egg": 5},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Load(ctx, "aviary", "player1"); err != ErrNotFound {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	if err := s.Save(ctx, newState(1), 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	st, err := s.Load(ctx, "aviary", "player1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Balance != 100 || st.Home.Count("egg") != 5 {
		t.Fatalf("Round trip lost data: %+v", st)
	}
}

func TestMemoryStoreLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, newState(1), 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	st, err := s.Load(ctx, "aviary", "player1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	st.Balance = 9999

	again, err := s.Load(ctx, "aviary", "player1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if again.Balance != 100 {
		t.Fatalf("Mutating a loaded copy must not leak into the store")
	}
}

func TestMemoryStoreRevisionConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, newState(1), 0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Two callers load revision 1; both apply operations.
	first := newState(2)
	second := newState(2)

	if err := s.Save(ctx, first, 1); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := s.Save(ctx, second, 1); err != ErrRevisionConflict {
		t.Fatalf("Expected ErrRevisionConflict, got %v", err)
	}

	// The loser reloads and retries against the new revision.
	st, err := s.Load(ctx, "aviary", "player1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	st.Revision++
	if err := s.Save(ctx, st, 2); err != nil {
		t.Fatalf("Retry save failed: %v", err)
	}
}

func TestMemoryStoreNewPlayerNeedsZeroExpected(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Save(ctx, newState(1), 5); err != ErrRevisionConflict {
		t.Fatalf("Expected ErrRevisionConflict for missing key, got %v", err)
	}
}

func TestMemoryStorePlayerIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	a := newState(1)
	b := newState(1)
	b.PlayerID = "player2"
	c := newState(1)
	c.GameID = "orchard"

	for _, st := range []*engine.PlayerState{a, b, c} {
		if err := s.Save(ctx, st, 0); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	ids, err := s.PlayerIDs(ctx, "aviary")
	if err != nil {
		t.Fatalf("PlayerIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Expected 2 aviary players, got %d: %v", len(ids), ids)
	}
}
