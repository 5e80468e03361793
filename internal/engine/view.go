package engine

// View is the read-only snapshot of a reconciled PlayerState returned to
// the client after every operation.
type View struct {
	GameID      string           `json:"game_id"`
	PlayerID    string           `json:"player_id"`
	Revision    int64            `json:"revision"`
	Balance     int64            `json:"balance"`
	AutoCollect bool             `json:"auto_collect"`
	Home        map[string]int64 `json:"home"`
	Market      map[string]int64 `json:"market"`
	Producers   []ProducerView   `json:"producers"`
	Vehicles    []VehicleView    `json:"vehicles"`
}

// ProducerView describes one production slot.
type ProducerView struct {
	ID               string `json:"id"`
	Resource         string `json:"resource"`
	State            string `json:"state"`
	SecondsRemaining int64  `json:"seconds_remaining"`
	PendingYield     int64  `json:"pending_yield"`
	Multiplier       int64  `json:"multiplier"`
}

// VehicleView describes one vehicle and its cargo.
type VehicleView struct {
	ID               string           `json:"id"`
	Kind             string           `json:"kind"`
	Location         string           `json:"location"`
	Locked           bool             `json:"locked"`
	SecondsRemaining int64            `json:"seconds_remaining"`
	Cargo            map[string]int64 `json:"cargo"`
}

// Snapshot reconciles the aggregate to now and renders the client view.
func (e *Engine) Snapshot(st *PlayerState) *View {
	now := e.clock.Now().Unix()
	e.reconcile(st, now)
	st.touch(now)

	view := &View{
		GameID:      st.GameID,
		PlayerID:    st.PlayerID,
		Revision:    st.Revision,
		Balance:     st.Balance,
		AutoCollect: st.AutoCollect,
		Home:        inventoryView(st.Home),
		Market:      inventoryView(st.Market),
	}

	for _, p := range st.Producers {
		view.Producers = append(view.Producers, ProducerView{
			ID:               p.ID,
			Resource:         string(p.Resource),
			State:            p.State.String(),
			SecondsRemaining: p.PhaseRemaining,
			PendingYield:     p.PendingYield,
			Multiplier:       p.Multiplier,
		})
	}

	for _, v := range st.Vehicles {
		cfg := e.catalog.Vehicle(v.Kind)
		if cfg == nil {
			continue
		}
		var remaining int64
		if v.Location.Traveling() {
			remaining = cfg.TravelSeconds - (now - v.DepartedUnix)
			if remaining < 0 {
				remaining = 0
			}
		}
		cargo := make(map[string]int64, len(v.Crates))
		for r, c := range v.Crates {
			if c.Amount > 0 {
				cargo[string(r)] = c.Amount
			}
		}
		view.Vehicles = append(view.Vehicles, VehicleView{
			ID:               v.ID,
			Kind:             string(v.Kind),
			Location:         v.Location.String(),
			Locked:           e.locked(st, cfg),
			SecondsRemaining: remaining,
			Cargo:            cargo,
		})
	}

	return view
}

func inventoryView(inv Inventory) map[string]int64 {
	result := make(map[string]int64, len(inv))
	for r, n := range inv {
		result[string(r)] = n
	}
	return result
}
