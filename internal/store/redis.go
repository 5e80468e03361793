package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"github.com/gravitas-games/idlecore/internal/engine"
)

// RedisStore keeps one JSON snapshot per player per game. The revision check
// runs inside a WATCH transaction, so a concurrent save invalidates the
// transaction and surfaces as ErrRevisionConflict.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store over an existing client. The prefix
// namespaces keys, e.g. "idlecore:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "idlecore:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(gameID, playerID string) string {
	return s.prefix + gameID + ":" + playerID
}

// Load retrieves the snapshot for one player in one game.
func (s *RedisStore) Load(ctx context.Context, gameID, playerID string) (*engine.PlayerState, error) {
	data, err := s.client.Get(ctx, s.key(gameID, playerID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player state: %w", err)
	}

	var st engine.PlayerState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to decode player state: %w", err)
	}
	return &st, nil
}

// Save writes the aggregate under optimistic concurrency control.
func (s *RedisStore) Save(ctx context.Context, st *engine.PlayerState, expected int64) error {
	key := s.key(st.GameID, st.PlayerID)

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode player state: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
			if expected != 0 {
				return ErrRevisionConflict
			}
		case err != nil:
			return fmt.Errorf("failed to read current state: %w", err)
		default:
			var stored engine.PlayerState
			if err := json.Unmarshal(current, &stored); err != nil {
				return fmt.Errorf("failed to decode current state: %w", err)
			}
			if stored.Revision != expected {
				return ErrRevisionConflict
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	if err == redis.TxFailedErr {
		// The key changed between WATCH and EXEC.
		return ErrRevisionConflict
	}
	return err
}

// PlayerIDs scans for every player snapshot in one game.
func (s *RedisStore) PlayerIDs(ctx context.Context, gameID string) ([]string, error) {
	pattern := s.prefix + gameID + ":*"
	cut := s.prefix + gameID + ":"

	var ids []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), cut))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan player states: %w", err)
	}
	return ids, nil
}
