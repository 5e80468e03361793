package engine

// Inventory is a location-scoped mapping of resource type to a non-negative
// count. It is mutated only through the transfer pipeline and the
// production/sale boundaries.
type Inventory map[ResourceType]int64

// NewInventory creates an empty inventory.
func NewInventory() Inventory {
	return make(Inventory)
}

// Count returns the held amount for a resource type. Missing entries
// read as zero.
func (inv Inventory) Count(r ResourceType) int64 {
	return inv[r]
}

// Deposit adds produced units. Used only at the production boundary.
func (inv Inventory) Deposit(r ResourceType, amount int64) {
	if amount <= 0 {
		return
	}
	inv[r] += amount
}

// withdraw removes up to amount units and returns how many actually moved.
func (inv Inventory) withdraw(r ResourceType, amount int64) int64 {
	held := inv[r]
	if amount > held {
		amount = held
	}
	if amount <= 0 {
		return 0
	}
	inv[r] = held - amount
	return amount
}

// Total sums every resource count, for aggregate views.
func (inv Inventory) Total() int64 {
	var sum int64
	for _, n := range inv {
		sum += n
	}
	return sum
}

// normalize clamps negative counts to zero and drops zero entries so that
// persisted snapshots stay canonical regardless of what was loaded.
func (inv Inventory) normalize() {
	for r, n := range inv {
		if n <= 0 {
			delete(inv, r)
		}
	}
}
