package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gravitas-games/idlecore/internal/engine"
	"github.com/gravitas-games/idlecore/internal/network"
	"github.com/gravitas-games/idlecore/internal/store"
)

// How many times a request is retried when a concurrent save wins the
// revision race before giving up.
const maxSaveRetries = 3

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeStatus:
		c.apply(func(st *engine.PlayerState) error { return nil })

	case network.MsgTypeCollect:
		var p network.CollectPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			_, err := c.engine.Collect(st, p.ProducerID)
			return err
		})

	case network.MsgTypeBuyProducer:
		var p network.BuyProducerPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			_, err := c.engine.BuyProducer(st, engine.ResourceType(p.Resource))
			return err
		})

	case network.MsgTypeSellProducer:
		var p network.SellProducerPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			return c.engine.SellProducerSlot(st, p.ProducerID)
		})

	case network.MsgTypeLoad:
		var p network.TransferPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			moved, err := c.engine.LoadCrate(st, p.VehicleID, engine.ResourceType(p.Resource), p.Amount)
			if err != nil {
				return err
			}
			c.sendTransferResult(p.VehicleID, p.Resource, moved)
			return nil
		})

	case network.MsgTypeUnload:
		var p network.TransferPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			moved, err := c.engine.UnloadCrate(st, p.VehicleID, engine.ResourceType(p.Resource), p.Amount)
			if err != nil {
				return err
			}
			c.sendTransferResult(p.VehicleID, p.Resource, moved)
			return nil
		})

	case network.MsgTypeTravel:
		var p network.TravelPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		direction, ok := parseDirection(p.Direction)
		if !ok {
			c.SendError("invalid_direction", "Direction must be to_market or to_home")
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			return c.engine.BeginTravel(st, p.VehicleID, direction)
		})

	case network.MsgTypeSell:
		var p network.SellPayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			var err error
			if p.VehicleID != "" {
				_, err = c.engine.SellCargo(st, p.VehicleID, engine.ResourceType(p.Resource))
			} else {
				_, err = c.engine.SellFromMarket(st, engine.ResourceType(p.Resource))
			}
			return err
		})

	case network.MsgTypeUnlockVehicle:
		var p network.UnlockVehiclePayload
		if !c.parse(msg.Payload, &p) {
			return
		}
		c.apply(func(st *engine.PlayerState) error {
			return c.engine.UnlockVehicle(st, engine.VehicleKind(p.Kind))
		})

	case network.MsgTypeAutoCollect:
		c.apply(func(st *engine.PlayerState) error {
			return c.engine.EnableAutoCollect(st)
		})

	case network.MsgTypePing:
		c.SendMessage(&network.ServerMessage{
			Type:    network.MsgTypePong,
			Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
		})

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// apply runs one engine action inside a load → mutate → save cycle under
// optimistic concurrency control, then returns the post-action view to the
// client. A revision conflict means another request for the same player won
// the race; the whole cycle is retried from a fresh load.
func (c *Connection) apply(action func(st *engine.PlayerState) error) {
	ctx, cancel := context.WithTimeout(c.server.ctx, 5*time.Second)
	defer cancel()

	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		st, err := c.loadState(ctx)
		if err != nil {
			log.Printf("Failed to load state for %s: %v", c.player.ID, err)
			c.SendError("storage_error", "Failed to load player state")
			return
		}
		loaded := st.Revision

		if err := action(st); err != nil {
			c.SendError(errorCode(err), err.Error())
			return
		}

		// Render the view before saving so the persisted revision matches
		// what the client sees.
		view := c.engine.Snapshot(st)

		err = c.server.store.Save(ctx, st, loaded)
		if err == nil {
			c.SendMessage(&network.ServerMessage{
				Type:    network.MsgTypeState,
				Payload: view,
			})
			return
		}
		if !errors.Is(err, store.ErrRevisionConflict) {
			log.Printf("Failed to save state for %s: %v", c.player.ID, err)
			c.SendError("storage_error", "Failed to save player state")
			return
		}
		// Lost the race; reload and retry.
	}

	c.SendError("conflict", "Concurrent update, please retry")
}

// loadState fetches and normalizes the player's aggregate, creating a fresh
// one on first contact.
func (c *Connection) loadState(ctx context.Context) (*engine.PlayerState, error) {
	st, err := c.server.store.Load(ctx, c.player.GameID, c.player.ID)
	if errors.Is(err, store.ErrNotFound) {
		now := time.Now().Unix()
		st = engine.NewPlayerState(c.game.Catalog, c.player.ID, c.game.Def.StartingBalance, now)
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	st.Normalize(c.game.Catalog)
	return st, nil
}

// parse unmarshals a payload, reporting a client error on failure
func (c *Connection) parse(raw json.RawMessage, v interface{}) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("Failed to parse payload: %v", err)
		c.SendError("invalid_payload", "Failed to parse payload")
		return false
	}
	return true
}

func (c *Connection) sendTransferResult(vehicleID, resource string, moved int64) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeTransfer,
		Payload: network.TransferResultPayload{
			VehicleID: vehicleID,
			Resource:  resource,
			Moved:     moved,
		},
	})
}

func parseDirection(s string) (engine.TravelDirection, bool) {
	switch s {
	case "to_market":
		return engine.ToMarket, true
	case "to_home":
		return engine.ToHome, true
	default:
		return 0, false
	}
}

// errorCode maps engine errors onto wire error codes
func errorCode(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, engine.ErrNoSourceResource):
		return "no_source_resource"
	case errors.Is(err, engine.ErrCrateFull):
		return "crate_full"
	case errors.Is(err, engine.ErrCrateEmpty):
		return "crate_empty"
	case errors.Is(err, engine.ErrNotReady):
		return "not_ready"
	case errors.Is(err, engine.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, engine.ErrVehicleLocked):
		return "vehicle_locked"
	case errors.Is(err, engine.ErrUnknownResourceType):
		return "unknown_resource"
	case errors.Is(err, engine.ErrNothingSellable):
		return "nothing_sellable"
	case errors.Is(err, engine.ErrUnknownProducer):
		return "unknown_producer"
	case errors.Is(err, engine.ErrUnknownVehicle):
		return "unknown_vehicle"
	case errors.Is(err, engine.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal_error"
	}
}
