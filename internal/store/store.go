// Package store persists PlayerState aggregates. The engine itself performs
// no I/O: callers load a snapshot, run engine operations against it, and
// save the result back through this package.
//
// Saves are guarded by optimistic concurrency control on the aggregate's
// revision stamp, so two racing requests for the same player cannot both
// apply: the loser gets ErrRevisionConflict and retries from a fresh load.
package store

import (
	"context"
	"errors"

	"github.com/gravitas-games/idlecore/internal/engine"
)

// ErrNotFound indicates no snapshot exists for the player yet.
var ErrNotFound = errors.New("player state not found")

// ErrRevisionConflict indicates the stored snapshot moved past the revision
// the caller loaded; the caller must reload and retry.
var ErrRevisionConflict = errors.New("player state revision conflict")

// PlayerStore loads and saves per-game player aggregates.
type PlayerStore interface {
	// Load retrieves the snapshot for one player in one game.
	Load(ctx context.Context, gameID, playerID string) (*engine.PlayerState, error)

	// Save writes the aggregate, succeeding only if the stored revision
	// still equals expected. Use expected == 0 for a brand-new player.
	Save(ctx context.Context, st *engine.PlayerState, expected int64) error

	// PlayerIDs lists every player with a snapshot in one game, for the
	// housekeeping sweep.
	PlayerIDs(ctx context.Context, gameID string) ([]string, error)
}
