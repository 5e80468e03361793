package server

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gravitas-games/idlecore/internal/store"
)

// runSweeper periodically reconciles dormant players so that externally
// consumed aggregates (leaderboard totals, platform dashboards) do not grow
// arbitrarily stale. It is pure housekeeping: the lazy reconcile-on-read in
// the request path is always the authority, and a conflict with a live
// request simply means the sweep was not needed for that player.
func (s *Server) runSweeper(interval time.Duration) {
	log.Printf("Housekeeping sweep enabled, interval %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.ctx.Done():
			return
		}
	}
}

// sweepOnce reconciles every stored player across all games
func (s *Server) sweepOnce() {
	ctx, cancel := context.WithTimeout(s.ctx, time.Minute)
	defer cancel()

	var swept, conflicts int
	for gameID, game := range s.games {
		eng := s.engines[gameID]

		ids, err := s.store.PlayerIDs(ctx, gameID)
		if err != nil {
			log.Printf("Sweep failed to list %s players: %v", gameID, err)
			continue
		}

		for _, playerID := range ids {
			st, err := s.store.Load(ctx, gameID, playerID)
			if err != nil {
				continue
			}
			st.Normalize(game.Catalog)
			loaded := st.Revision

			eng.ReconcileAll(st)

			err = s.store.Save(ctx, st, loaded)
			switch {
			case err == nil:
				swept++
			case errors.Is(err, store.ErrRevisionConflict):
				// A live request advanced the player meanwhile.
				conflicts++
			default:
				log.Printf("Sweep failed to save %s/%s: %v", gameID, playerID, err)
			}
		}
	}

	if swept > 0 || conflicts > 0 {
		log.Printf("Sweep reconciled %d players (%d skipped on conflict)", swept, conflicts)
	}
}
