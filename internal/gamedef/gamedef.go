// Package gamedef loads per-game definition files. Each mini-game on the
// platform (aviary, orchard, mine, aquarium...) is one YAML file declaring
// its resource recipes and vehicle kinds; the shared engine is instantiated
// from the resulting catalog. Adding a game means adding a file, not code.
package gamedef

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gravitas-games/idlecore/internal/engine"
)

// Definition is the on-disk shape of one game.
type Definition struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	StartingBalance int64         `yaml:"starting_balance"`
	Resources       []ResourceDef `yaml:"resources"`
	Vehicles        []VehicleDef  `yaml:"vehicles"`
}

// ResourceDef declares one producible resource type.
type ResourceDef struct {
	ID            string  `yaml:"id"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	CycleSeconds  int64   `yaml:"cycle_seconds"`
	RestSeconds   int64   `yaml:"rest_seconds"`
	CrateCapacity int64   `yaml:"crate_capacity"`
	SaleRatio     int64   `yaml:"sale_ratio"`
	SlotCost      int64   `yaml:"slot_cost"`
}

// VehicleDef declares one vehicle kind.
type VehicleDef struct {
	Kind               string `yaml:"kind"`
	TravelSeconds      int64  `yaml:"travel_seconds"`
	CapacityMultiplier int64  `yaml:"capacity_multiplier"`
	Locked             bool   `yaml:"locked"`
	UnlockCost         int64  `yaml:"unlock_cost"`
}

// Game pairs a loaded definition with its validated engine catalog.
type Game struct {
	Def     *Definition
	Catalog *engine.Catalog
}

// Load reads and validates a single game definition file.
func Load(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game definition: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse game definition: %w", err)
	}
	if def.ID == "" {
		return nil, fmt.Errorf("%s: game id cannot be empty", path)
	}
	if len(def.Resources) == 0 {
		return nil, fmt.Errorf("%s: game %s declares no resources", path, def.ID)
	}
	if len(def.Vehicles) == 0 {
		return nil, fmt.Errorf("%s: game %s declares no vehicles", path, def.ID)
	}
	if def.StartingBalance < 0 {
		return nil, fmt.Errorf("%s: game %s starting balance cannot be negative", path, def.ID)
	}

	cat := engine.NewCatalog(def.ID)
	for i, r := range def.Resources {
		cfg := &engine.RecipeConfig{
			Resource:      engine.ResourceType(r.ID),
			RatePerSecond: r.RatePerSecond,
			CycleSeconds:  r.CycleSeconds,
			RestSeconds:   r.RestSeconds,
			CrateCapacity: r.CrateCapacity,
			SaleRatio:     r.SaleRatio,
			SlotCost:      r.SlotCost,
		}
		if err := cat.RegisterRecipe(cfg); err != nil {
			return nil, fmt.Errorf("%s: resource %d: %w", path, i, err)
		}
	}
	for i, v := range def.Vehicles {
		cfg := &engine.VehicleConfig{
			Kind:               engine.VehicleKind(v.Kind),
			TravelSeconds:      v.TravelSeconds,
			CapacityMultiplier: v.CapacityMultiplier,
			Locked:             v.Locked,
			UnlockCost:         v.UnlockCost,
		}
		if err := cat.RegisterVehicle(cfg); err != nil {
			return nil, fmt.Errorf("%s: vehicle %d: %w", path, i, err)
		}
	}

	return &Game{Def: &def, Catalog: cat}, nil
}

// LoadDir loads every *.yaml game definition in a directory, keyed by game ID.
func LoadDir(dir string) (map[string]*Game, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read game definition dir: %w", err)
	}

	games := make(map[string]*Game)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		game, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, exists := games[game.Def.ID]; exists {
			return nil, fmt.Errorf("duplicate game id %q in %s", game.Def.ID, entry.Name())
		}
		games[game.Def.ID] = game
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no game definitions found in %s", dir)
	}
	return games, nil
}
