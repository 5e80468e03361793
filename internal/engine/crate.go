package engine

// Crate is a single-resource-type, capacity-bounded container carried by a
// vehicle. Capacity is the base value from the recipe config; the owning
// vehicle's capacity multiplier is applied at transfer time.
type Crate struct {
	Resource  ResourceType `json:"resource"`
	Amount    int64        `json:"amount"`
	Capacity  int64        `json:"capacity"`
	Unlimited bool         `json:"unlimited,omitempty"`
}

// RemainingCapacity returns how many more units fit, given the vehicle's
// capacity multiplier. Unlimited crates report a negative value meaning
// "no bound".
func (c *Crate) RemainingCapacity(multiplier int64) int64 {
	if c.Unlimited {
		return -1
	}
	if multiplier < 1 {
		multiplier = 1
	}
	remaining := c.Capacity*multiplier - c.Amount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Load moves up to requested units of the crate's resource from the source
// inventory into the crate, clipping to availability and remaining capacity.
// It returns the amount actually moved. Requesting more than fits is not an
// error; callers must inspect the returned amount.
func (c *Crate) Load(source Inventory, requested int64, multiplier int64) (int64, error) {
	if requested <= 0 {
		return 0, ErrInvalidAmount
	}

	available := source.Count(c.Resource)
	if available == 0 {
		return 0, ErrNoSourceResource
	}

	transferable := requested
	if available < transferable {
		transferable = available
	}
	if remaining := c.RemainingCapacity(multiplier); remaining >= 0 && remaining < transferable {
		transferable = remaining
	}
	if transferable == 0 {
		return 0, ErrCrateFull
	}

	source.withdraw(c.Resource, transferable)
	c.Amount += transferable
	return transferable, nil
}

// Unload moves up to requested units out of the crate into the destination
// inventory, clipping to the held amount. A non-positive request unloads
// everything. Returns the amount actually moved.
func (c *Crate) Unload(dest Inventory, requested int64) (int64, error) {
	transferable := c.Amount
	if requested > 0 && requested < transferable {
		transferable = requested
	}
	if transferable == 0 {
		return 0, ErrCrateEmpty
	}

	c.Amount -= transferable
	dest.Deposit(c.Resource, transferable)
	return transferable, nil
}

// Sell converts the crate's content into currency at the recipe's sale
// ratio. Whole conversion units only; the remainder stays in the crate.
// Returns the coins earned. This is the only operation besides production
// that changes total resource mass.
func (c *Crate) Sell(cfg *RecipeConfig) (int64, error) {
	coins, consumed := sellableUnits(c.Amount, cfg.SaleRatio)
	if coins == 0 {
		return 0, ErrNothingSellable
	}
	c.Amount -= consumed
	return coins, nil
}

// SellFromInventory converts held units of one resource in an inventory
// into currency, with the same rounding rules as Crate.Sell.
func SellFromInventory(inv Inventory, cfg *RecipeConfig) (int64, error) {
	coins, consumed := sellableUnits(inv.Count(cfg.Resource), cfg.SaleRatio)
	if coins == 0 {
		return 0, ErrNothingSellable
	}
	inv.withdraw(cfg.Resource, consumed)
	return coins, nil
}

func sellableUnits(amount, ratio int64) (coins, consumed int64) {
	if ratio <= 0 {
		return 0, 0
	}
	coins = amount / ratio
	return coins, coins * ratio
}
