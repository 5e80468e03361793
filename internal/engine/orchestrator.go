package engine

import (
	"github.com/google/uuid"
)

// Engine orchestrates every player-facing operation for one game. Each
// operation first reconciles all producers and vehicles in the aggregate to
// "now", then applies the requested mutation against the current state.
// This pull-based design needs no background scheduler: state advances
// exactly as far as "now" dictates whenever it is next observed.
//
// Operations are synchronous timestamp-and-integer arithmetic; nothing
// blocks. The engine performs no I/O and no logging, and assumes the caller
// serializes requests per player (see PlayerState.Revision).
type Engine struct {
	catalog *Catalog
	clock   Clock
	bus     EventBus
}

// New creates an engine over a validated catalog.
func New(catalog *Catalog, clock Clock, bus EventBus) *Engine {
	if bus == nil {
		bus = NullEventBus{}
	}
	return &Engine{catalog: catalog, clock: clock, bus: bus}
}

// Catalog returns the engine's parameter table.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// ReconcileAll drives every producer and vehicle in the aggregate forward
// to now. It never fails; reconciliation always advances state as far as
// physically consistent.
func (e *Engine) ReconcileAll(st *PlayerState) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)
	st.touch(now)
}

// reconcile advances all timers to now without stamping a revision.
func (e *Engine) reconcile(st *PlayerState, now int64) {
	for _, p := range st.Producers {
		cfg := e.catalog.Recipe(p.Resource)
		if cfg == nil {
			continue
		}
		drained := p.Reconcile(cfg, now, st.AutoCollect, st.Home)
		if drained > 0 {
			e.bus.Publish(Event{
				Type:      EventCollected,
				GameID:    st.GameID,
				PlayerID:  st.PlayerID,
				Resource:  p.Resource,
				Amount:    drained,
				Timestamp: now,
			})
		}
	}
	for _, v := range st.Vehicles {
		cfg := e.catalog.Vehicle(v.Kind)
		if cfg == nil {
			continue
		}
		v.ReconcileTravel(cfg, now)
	}
}

// Collect moves a ready producer's pending yield into the home inventory.
func (e *Engine) Collect(st *PlayerState, producerID string) (int64, error) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	p := st.Producer(producerID)
	if p == nil {
		return 0, ErrUnknownProducer
	}
	cfg := e.catalog.Recipe(p.Resource)
	if cfg == nil {
		return 0, ErrUnknownResourceType
	}

	collected, err := p.Collect(cfg, now, st.Home)
	if err != nil {
		return 0, err
	}
	st.touch(now)

	e.bus.Publish(Event{
		Type:      EventCollected,
		GameID:    st.GameID,
		PlayerID:  st.PlayerID,
		Resource:  p.Resource,
		Amount:    collected,
		Timestamp: now,
	})
	return collected, nil
}

// BuyProducer purchases a new production slot for a resource type.
func (e *Engine) BuyProducer(st *PlayerState, resource ResourceType) (*Producer, error) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	cfg := e.catalog.Recipe(resource)
	if cfg == nil {
		return nil, ErrUnknownResourceType
	}
	if st.Balance < cfg.SlotCost {
		return nil, ErrInsufficientFunds
	}

	st.Balance -= cfg.SlotCost
	p := NewProducer(uuid.NewString(), cfg, now)
	st.Producers = append(st.Producers, p)
	st.touch(now)
	return p, nil
}

// SellProducerSlot removes a production slot. The slot's state, including
// any uncollected yield, is discarded; nothing carries over.
func (e *Engine) SellProducerSlot(st *PlayerState, producerID string) error {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	if !st.RemoveProducer(producerID) {
		return ErrUnknownProducer
	}
	st.touch(now)
	return nil
}

// BeginTravel departs a vehicle toward the requested destination.
func (e *Engine) BeginTravel(st *PlayerState, vehicleID string, direction TravelDirection) error {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	v, cfg, err := e.vehicle(st, vehicleID)
	if err != nil {
		return err
	}
	if e.locked(st, cfg) {
		return ErrVehicleLocked
	}

	if err := v.BeginTravel(direction, now); err != nil {
		return err
	}
	st.touch(now)
	return nil
}

// LoadCrate moves resources from the home inventory into a vehicle crate.
// The vehicle must be parked at home. The transfer clips to availability and
// remaining capacity; the returned amount is what actually moved.
func (e *Engine) LoadCrate(st *PlayerState, vehicleID string, resource ResourceType, amount int64) (int64, error) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	v, vcfg, err := e.vehicle(st, vehicleID)
	if err != nil {
		return 0, err
	}
	if e.locked(st, vcfg) {
		return 0, ErrVehicleLocked
	}
	rcfg := e.catalog.Recipe(resource)
	if rcfg == nil {
		return 0, ErrUnknownResourceType
	}
	if v.Location != AtHome {
		return 0, ErrInvalidState
	}

	moved, err := v.Crate(rcfg).Load(st.Home, amount, vcfg.CapacityMultiplier)
	if err != nil {
		return 0, err
	}
	st.touch(now)
	return moved, nil
}

// UnloadCrate moves resources from a vehicle crate into the inventory at the
// vehicle's current location. A zero amount unloads the whole crate.
func (e *Engine) UnloadCrate(st *PlayerState, vehicleID string, resource ResourceType, amount int64) (int64, error) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	v, _, err := e.vehicle(st, vehicleID)
	if err != nil {
		return 0, err
	}
	rcfg := e.catalog.Recipe(resource)
	if rcfg == nil {
		return 0, ErrUnknownResourceType
	}

	var dest Inventory
	switch v.Location {
	case AtHome:
		dest = st.Home
	case AtMarket:
		dest = st.Market
	default:
		return 0, ErrInvalidState
	}

	crate, ok := v.Crates[resource]
	if !ok {
		return 0, ErrCrateEmpty
	}
	moved, err := crate.Unload(dest, amount)
	if err != nil {
		return 0, err
	}
	st.touch(now)
	return moved, nil
}

// SellCargo converts a crate's content into currency. The vehicle must be
// parked at the market. The remainder below one conversion unit stays in
// the crate.
func (e *Engine) SellCargo(st *PlayerState, vehicleID string, resource ResourceType) (int64, error) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	v, _, err := e.vehicle(st, vehicleID)
	if err != nil {
		return 0, err
	}
	rcfg := e.catalog.Recipe(resource)
	if rcfg == nil {
		return 0, ErrUnknownResourceType
	}
	if v.Location != AtMarket {
		return 0, ErrInvalidState
	}

	crate, ok := v.Crates[resource]
	if !ok {
		return 0, ErrNothingSellable
	}
	coins, err := crate.Sell(rcfg)
	if err != nil {
		return 0, err
	}
	st.Balance += coins
	st.touch(now)

	e.bus.Publish(Event{
		Type:      EventSold,
		GameID:    st.GameID,
		PlayerID:  st.PlayerID,
		Resource:  resource,
		Amount:    coins * rcfg.SaleRatio,
		Coins:     coins,
		Timestamp: now,
	})
	return coins, nil
}

// SellFromMarket converts resources held in the market inventory into
// currency, with the same rounding rules as SellCargo.
func (e *Engine) SellFromMarket(st *PlayerState, resource ResourceType) (int64, error) {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	rcfg := e.catalog.Recipe(resource)
	if rcfg == nil {
		return 0, ErrUnknownResourceType
	}
	coins, err := SellFromInventory(st.Market, rcfg)
	if err != nil {
		return 0, err
	}
	st.Balance += coins
	st.touch(now)

	e.bus.Publish(Event{
		Type:      EventSold,
		GameID:    st.GameID,
		PlayerID:  st.PlayerID,
		Resource:  resource,
		Amount:    coins * rcfg.SaleRatio,
		Coins:     coins,
		Timestamp: now,
	})
	return coins, nil
}

// UnlockVehicle purchases access to a locked vehicle kind.
func (e *Engine) UnlockVehicle(st *PlayerState, kind VehicleKind) error {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	cfg := e.catalog.Vehicle(kind)
	if cfg == nil {
		return ErrUnknownVehicle
	}
	if !cfg.Locked || st.Unlocked[kind] {
		return ErrInvalidState
	}
	if st.Balance < cfg.UnlockCost {
		return ErrInsufficientFunds
	}

	st.Balance -= cfg.UnlockCost
	st.Unlocked[kind] = true
	st.touch(now)
	return nil
}

// EnableAutoCollect turns on the auto-collect upgrade, after which
// reconciliation alone drains ready producers into the home inventory.
func (e *Engine) EnableAutoCollect(st *PlayerState) error {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)

	if st.AutoCollect {
		return ErrInvalidState
	}
	st.AutoCollect = true
	st.touch(now)
	return nil
}

// vehicle resolves a vehicle and its kind config.
func (e *Engine) vehicle(st *PlayerState, id string) (*Vehicle, *VehicleConfig, error) {
	v := st.Vehicle(id)
	if v == nil {
		return nil, nil, ErrUnknownVehicle
	}
	cfg := e.catalog.Vehicle(v.Kind)
	if cfg == nil {
		return nil, nil, ErrUnknownVehicle
	}
	return v, cfg, nil
}

// locked reports whether a vehicle kind is still locked for this player.
func (e *Engine) locked(st *PlayerState, cfg *VehicleConfig) bool {
	return cfg.Locked && !st.Unlocked[cfg.Kind]
}
