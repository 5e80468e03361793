package engine

// PlayerState is the full simulation aggregate for one player in one game:
// producers, vehicles, the two location inventories and the currency
// balance. It is owned exclusively by its player; the engine never reads
// across aggregates.
//
// Revision increases on every mutating operation. The persistence layer
// compares it on write so that two racing requests for the same player
// cannot both apply (optimistic concurrency control).
type PlayerState struct {
	PlayerID string `json:"player_id"`
	GameID   string `json:"game_id"`
	Revision int64  `json:"revision"`

	Balance     int64 `json:"balance"`
	AutoCollect bool  `json:"auto_collect,omitempty"`

	Home   Inventory `json:"home"`
	Market Inventory `json:"market"`

	Producers []*Producer `json:"producers"`
	Vehicles  []*Vehicle  `json:"vehicles"`

	// Unlocked records which locked vehicle kinds the player has purchased.
	Unlocked map[VehicleKind]bool `json:"unlocked,omitempty"`

	// UpdatedUnix is the timestamp of the last applied operation.
	UpdatedUnix int64 `json:"updated_at"`
}

// NewPlayerState creates a fresh aggregate with one parked vehicle per
// catalog kind, empty inventories and the game's starting balance.
func NewPlayerState(cat *Catalog, playerID string, balance int64, now int64) *PlayerState {
	st := &PlayerState{
		PlayerID:    playerID,
		GameID:      cat.GameID(),
		Balance:     balance,
		Home:        NewInventory(),
		Market:      NewInventory(),
		Unlocked:    make(map[VehicleKind]bool),
		UpdatedUnix: now,
	}
	for _, kind := range cat.VehicleKinds() {
		st.Vehicles = append(st.Vehicles, NewVehicle(string(kind)+"-1", kind))
	}
	return st
}

// Producer finds a producer by ID. Returns nil if absent.
func (st *PlayerState) Producer(id string) *Producer {
	for _, p := range st.Producers {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Vehicle finds a vehicle by ID. Returns nil if absent.
func (st *PlayerState) Vehicle(id string) *Vehicle {
	for _, v := range st.Vehicles {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// RemoveProducer discards a producer slot. The slot's state is dropped
// wholesale; nothing carries over. Reports whether the producer existed.
func (st *PlayerState) RemoveProducer(id string) bool {
	for i, p := range st.Producers {
		if p.ID == id {
			st.Producers = append(st.Producers[:i], st.Producers[i+1:]...)
			return true
		}
	}
	return false
}

// ResourceTotal sums one resource type across the home inventory, every
// vehicle crate and the market inventory. Transfer operations never change
// this total; only production (+) and sale (-) do.
func (st *PlayerState) ResourceTotal(r ResourceType) int64 {
	total := st.Home.Count(r) + st.Market.Count(r)
	for _, v := range st.Vehicles {
		if c, ok := v.Crates[r]; ok {
			total += c.Amount
		}
	}
	return total
}

// Normalize repairs an aggregate loaded from an untrusted snapshot: missing
// maps are created, negative counts clamped, producers referencing resources
// absent from the catalog dropped. It runs once at load time so the engine
// operations can assume a well-formed aggregate.
func (st *PlayerState) Normalize(cat *Catalog) {
	if st.Home == nil {
		st.Home = NewInventory()
	}
	if st.Market == nil {
		st.Market = NewInventory()
	}
	if st.Unlocked == nil {
		st.Unlocked = make(map[VehicleKind]bool)
	}
	st.Home.normalize()
	st.Market.normalize()
	if st.Balance < 0 {
		st.Balance = 0
	}

	kept := st.Producers[:0]
	for _, p := range st.Producers {
		if p == nil {
			continue
		}
		cfg := cat.Recipe(p.Resource)
		if cfg == nil {
			continue
		}
		p.normalize(cfg)
		kept = append(kept, p)
	}
	st.Producers = kept

	keptV := st.Vehicles[:0]
	for _, v := range st.Vehicles {
		if v == nil || cat.Vehicle(v.Kind) == nil {
			continue
		}
		v.normalize()
		keptV = append(keptV, v)
	}
	st.Vehicles = keptV
}

// touch stamps a completed mutation: bump the revision, record the time.
func (st *PlayerState) touch(now int64) {
	st.Revision++
	st.UpdatedUnix = now
}
