package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gravitas-games/idlecore/internal/engine"
)

// MemoryStore is an in-process PlayerStore with the same CAS semantics as
// the redis implementation. Used in tests and single-node development.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]snapshot
}

type snapshot struct {
	data     []byte
	revision int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]snapshot)}
}

func memKey(gameID, playerID string) string {
	return gameID + ":" + playerID
}

// Load retrieves the snapshot for one player in one game.
func (s *MemoryStore) Load(ctx context.Context, gameID, playerID string) (*engine.PlayerState, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[memKey(gameID, playerID)]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	var st engine.PlayerState
	if err := json.Unmarshal(snap.data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode player state: %w", err)
	}
	return &st, nil
}

// Save writes the aggregate, succeeding only if the stored revision still
// equals expected.
func (s *MemoryStore) Save(ctx context.Context, st *engine.PlayerState, expected int64) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode player state: %w", err)
	}

	key := memKey(st.GameID, st.PlayerID)

	s.mu.Lock()
	defer s.mu.Unlock()

	snap, exists := s.snapshots[key]
	if exists && snap.revision != expected {
		return ErrRevisionConflict
	}
	if !exists && expected != 0 {
		return ErrRevisionConflict
	}

	s.snapshots[key] = snapshot{data: data, revision: st.Revision}
	return nil
}

// PlayerIDs lists every player with a snapshot in one game.
func (s *MemoryStore) PlayerIDs(ctx context.Context, gameID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := gameID + ":"
	var ids []string
	for key := range s.snapshots {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			ids = append(ids, key[len(prefix):])
		}
	}
	return ids, nil
}
