package engine

// VehicleLocation represents where a vehicle is, or which way it is moving.
type VehicleLocation int

const (
	// AtHome indicates the vehicle is parked at the home location.
	AtHome VehicleLocation = iota
	// AtMarket indicates the vehicle is parked at the market location.
	AtMarket
	// TravelingToMarket indicates the vehicle is en route home → market.
	TravelingToMarket
	// TravelingToHome indicates the vehicle is en route market → home.
	TravelingToHome
)

// String returns a human-readable representation of the location.
func (l VehicleLocation) String() string {
	switch l {
	case AtHome:
		return "AtHome"
	case AtMarket:
		return "AtMarket"
	case TravelingToMarket:
		return "TravelingToMarket"
	case TravelingToHome:
		return "TravelingToHome"
	default:
		return "Unknown"
	}
}

// Traveling reports whether the location is one of the two en-route states.
func (l VehicleLocation) Traveling() bool {
	return l == TravelingToMarket || l == TravelingToHome
}

// TravelDirection selects the destination for BeginTravel.
type TravelDirection int

const (
	// ToMarket departs from home toward the market.
	ToMarket TravelDirection = iota
	// ToHome departs from the market toward home.
	ToHome
)

// Vehicle is one mobile carrier. Travel is modeled as data: a departure
// timestamp plus a per-kind duration, resolved on reconcile.
type Vehicle struct {
	ID       string          `json:"id"`
	Kind     VehicleKind     `json:"kind"`
	Location VehicleLocation `json:"location"`

	// DepartedUnix is the departure timestamp of the current leg.
	// Zero exactly when the vehicle is not traveling.
	DepartedUnix int64 `json:"departed_at,omitempty"`

	// Crates holds one crate per resource type, created on first load.
	Crates map[ResourceType]*Crate `json:"crates"`
}

// NewVehicle creates a parked, empty vehicle at home.
func NewVehicle(id string, kind VehicleKind) *Vehicle {
	return &Vehicle{
		ID:       id,
		Kind:     kind,
		Location: AtHome,
		Crates:   make(map[ResourceType]*Crate),
	}
}

// BeginTravel departs toward the requested destination. Legal only from the
// matching parked location; fails with ErrInvalidState otherwise, mutating
// nothing.
func (v *Vehicle) BeginTravel(direction TravelDirection, now int64) error {
	if v.Location.Traveling() {
		return ErrInvalidState
	}

	switch direction {
	case ToMarket:
		if v.Location != AtHome {
			return ErrInvalidState
		}
		v.Location = TravelingToMarket
	case ToHome:
		if v.Location != AtMarket {
			return ErrInvalidState
		}
		v.Location = TravelingToHome
	default:
		return ErrInvalidState
	}

	v.DepartedUnix = now
	return nil
}

// ReconcileTravel resolves an in-flight leg against now. If the travel
// duration has fully elapsed the vehicle flips to the arrival location and
// the departure timestamp is cleared; otherwise the state is unchanged.
// Returns the seconds still remaining (zero when parked). Idempotent and
// never errors.
func (v *Vehicle) ReconcileTravel(cfg *VehicleConfig, now int64) int64 {
	if !v.Location.Traveling() {
		return 0
	}

	elapsed := now - v.DepartedUnix
	if elapsed < cfg.TravelSeconds {
		remaining := cfg.TravelSeconds - elapsed
		if remaining > cfg.TravelSeconds {
			// Departure stamp in the future; clamp rather than extend the trip.
			remaining = cfg.TravelSeconds
		}
		return remaining
	}

	if v.Location == TravelingToMarket {
		v.Location = AtMarket
	} else {
		v.Location = AtHome
	}
	v.DepartedUnix = 0
	return 0
}

// Crate returns the vehicle's crate for a resource type, creating it with
// the recipe's base capacity on first use.
func (v *Vehicle) Crate(cfg *RecipeConfig) *Crate {
	if v.Crates == nil {
		v.Crates = make(map[ResourceType]*Crate)
	}
	c, ok := v.Crates[cfg.Resource]
	if !ok {
		c = &Crate{Resource: cfg.Resource, Capacity: cfg.CrateCapacity}
		v.Crates[cfg.Resource] = c
	}
	return c
}

// CargoTotal sums the units held across all crates.
func (v *Vehicle) CargoTotal() int64 {
	var sum int64
	for _, c := range v.Crates {
		sum += c.Amount
	}
	return sum
}

// normalize repairs a vehicle loaded from an untrusted snapshot.
func (v *Vehicle) normalize() {
	if v.Crates == nil {
		v.Crates = make(map[ResourceType]*Crate)
	}
	for r, c := range v.Crates {
		if c == nil {
			delete(v.Crates, r)
			continue
		}
		c.Resource = r
		if c.Amount < 0 {
			c.Amount = 0
		}
	}
	if v.Location.Traveling() {
		if v.DepartedUnix == 0 {
			// Traveling without a departure stamp; park at the origin.
			if v.Location == TravelingToMarket {
				v.Location = AtHome
			} else {
				v.Location = AtMarket
			}
		}
	} else {
		v.DepartedUnix = 0
	}
}
