package engine

import (
	"errors"
	"fmt"
	"sync"
)

// ResourceType identifies a produced resource within one game
// (e.g. "egg", "apple", "iron_ore"). The engine does not interpret it.
type ResourceType string

// VehicleKind identifies a vehicle class within one game
// (e.g. "cart", "truck", "airplane").
type VehicleKind string

// RecipeConfig holds the static parameters for one resource type.
type RecipeConfig struct {
	Resource ResourceType `json:"resource"`

	// RatePerSecond is the production rate while a producer is in its
	// producing phase. A full cycle yields
	// floor(RatePerSecond * CycleSeconds) * multiplier units.
	RatePerSecond float64 `json:"rate_per_second"`

	// CycleSeconds is the length of the producing phase.
	CycleSeconds int64 `json:"cycle_seconds"`

	// RestSeconds is the length of the rest phase after a collect.
	// Zero means the producer has no rest phase.
	RestSeconds int64 `json:"rest_seconds"`

	// CrateCapacity is the base capacity of one crate of this resource
	// before the vehicle's capacity multiplier is applied.
	CrateCapacity int64 `json:"crate_capacity"`

	// SaleRatio is the number of resource units converted into one
	// currency unit at the sale boundary.
	SaleRatio int64 `json:"sale_ratio"`

	// SlotCost is the currency price of a new producer slot.
	SlotCost int64 `json:"slot_cost"`
}

// VehicleConfig holds the static parameters for one vehicle kind.
type VehicleConfig struct {
	Kind VehicleKind `json:"kind"`

	// TravelSeconds is the one-way travel duration between home and market.
	TravelSeconds int64 `json:"travel_seconds"`

	// CapacityMultiplier scales every crate capacity on vehicles of this
	// kind. Minimum 1.
	CapacityMultiplier int64 `json:"capacity_multiplier"`

	// Locked marks kinds that must be unlocked before use.
	Locked bool `json:"locked"`

	// UnlockCost is the currency price of unlocking a locked kind.
	UnlockCost int64 `json:"unlock_cost"`
}

// Catalog is the validated, read-only parameter table that instantiates the
// engine for one game. It is built once at load time and safe for concurrent
// readers.
type Catalog struct {
	mu       sync.RWMutex
	gameID   string
	recipes  map[ResourceType]*RecipeConfig
	vehicles map[VehicleKind]*VehicleConfig
}

// NewCatalog creates an empty catalog for a game.
func NewCatalog(gameID string) *Catalog {
	return &Catalog{
		gameID:   gameID,
		recipes:  make(map[ResourceType]*RecipeConfig),
		vehicles: make(map[VehicleKind]*VehicleConfig),
	}
}

// GameID returns the catalog's game identifier.
func (c *Catalog) GameID() string {
	return c.gameID
}

// RegisterRecipe adds or updates a recipe. Returns an error if the recipe
// violates the catalog invariants.
func (c *Catalog) RegisterRecipe(cfg *RecipeConfig) error {
	if cfg == nil {
		return errors.New("recipe cannot be nil")
	}
	if cfg.Resource == "" {
		return errors.New("recipe resource type cannot be empty")
	}
	if cfg.RatePerSecond < 0 {
		return fmt.Errorf("recipe %s: rate cannot be negative", cfg.Resource)
	}
	if cfg.CycleSeconds <= 0 {
		return fmt.Errorf("recipe %s: cycle duration must be positive", cfg.Resource)
	}
	if cfg.RestSeconds < 0 {
		return fmt.Errorf("recipe %s: rest duration cannot be negative", cfg.Resource)
	}
	if cfg.CrateCapacity < 0 {
		return fmt.Errorf("recipe %s: crate capacity cannot be negative", cfg.Resource)
	}
	if cfg.SaleRatio <= 0 {
		return fmt.Errorf("recipe %s: sale ratio must be positive", cfg.Resource)
	}
	if cfg.SlotCost < 0 {
		return fmt.Errorf("recipe %s: slot cost cannot be negative", cfg.Resource)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes[cfg.Resource] = cfg
	return nil
}

// RegisterVehicle adds or updates a vehicle kind.
func (c *Catalog) RegisterVehicle(cfg *VehicleConfig) error {
	if cfg == nil {
		return errors.New("vehicle config cannot be nil")
	}
	if cfg.Kind == "" {
		return errors.New("vehicle kind cannot be empty")
	}
	if cfg.TravelSeconds <= 0 {
		return fmt.Errorf("vehicle %s: travel duration must be positive", cfg.Kind)
	}
	if cfg.CapacityMultiplier < 1 {
		return fmt.Errorf("vehicle %s: capacity multiplier must be at least 1", cfg.Kind)
	}
	if cfg.UnlockCost < 0 {
		return fmt.Errorf("vehicle %s: unlock cost cannot be negative", cfg.Kind)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.vehicles[cfg.Kind] = cfg
	return nil
}

// Recipe retrieves the config for a resource type. Returns nil if unknown.
func (c *Catalog) Recipe(r ResourceType) *RecipeConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.recipes[r]
}

// Vehicle retrieves the config for a vehicle kind. Returns nil if unknown.
func (c *Catalog) Vehicle(k VehicleKind) *VehicleConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vehicles[k]
}

// Resources returns every registered resource type.
func (c *Catalog) Resources() []ResourceType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]ResourceType, 0, len(c.recipes))
	for r := range c.recipes {
		result = append(result, r)
	}
	return result
}

// VehicleKinds returns every registered vehicle kind.
func (c *Catalog) VehicleKinds() []VehicleKind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]VehicleKind, 0, len(c.vehicles))
	for k := range c.vehicles {
		result = append(result, k)
	}
	return result
}

// CycleYield returns the units one full production cycle yields for a
// single-multiplier producer.
func (cfg *RecipeConfig) CycleYield() int64 {
	y := int64(cfg.RatePerSecond * float64(cfg.CycleSeconds))
	if y < 0 {
		return 0
	}
	return y
}
