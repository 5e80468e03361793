package gamedef

import (
	"os"
	"path/filepath"
	"testing"
)

const aviaryYAML = `
id: aviary
name: Bird Aviary
starting_balance: 250
resources:
  - id: egg
    rate_per_second: 1
    cycle_seconds: 21600
    crate_capacity: 800
    sale_ratio: 100
    slot_cost: 50
vehicles:
  - kind: cart
    travel_seconds: 3600
    capacity_multiplier: 1
  - kind: airplane
    travel_seconds: 600
    capacity_multiplier: 4
    locked: true
    unlock_cost: 500
`

func writeDef(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write definition: %v", err)
	}
	return path
}

func TestLoadDefinition(t *testing.T) {
	path := writeDef(t, t.TempDir(), "aviary.yaml", aviaryYAML)

	game, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if game.Def.ID != "aviary" {
		t.Fatalf("Expected game id aviary, got %s", game.Def.ID)
	}
	if game.Def.StartingBalance != 250 {
		t.Fatalf("Expected starting balance 250, got %d", game.Def.StartingBalance)
	}

	egg := game.Catalog.Recipe("egg")
	if egg == nil {
		t.Fatalf("Expected egg recipe in catalog")
	}
	if egg.CycleSeconds != 21600 || egg.SaleRatio != 100 {
		t.Fatalf("Unexpected egg recipe: %+v", egg)
	}

	plane := game.Catalog.Vehicle("airplane")
	if plane == nil {
		t.Fatalf("Expected airplane in catalog")
	}
	if !plane.Locked || plane.UnlockCost != 500 || plane.CapacityMultiplier != 4 {
		t.Fatalf("Unexpected airplane config: %+v", plane)
	}
}

func TestLoadRejectsInvalidRecipe(t *testing.T) {
	bad := `
id: broken
resources:
  - id: egg
    cycle_seconds: 0
    sale_ratio: 100
vehicles:
  - kind: cart
    travel_seconds: 3600
    capacity_multiplier: 1
`
	path := writeDef(t, t.TempDir(), "broken.yaml", bad)
	if _, err := Load(path); err == nil {
		t.Fatalf("Expected validation error for zero cycle duration")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "aviary.yaml", aviaryYAML)
	writeDef(t, dir, "notes.txt", "ignored")

	orchard := `
id: orchard
starting_balance: 100
resources:
  - id: apple
    rate_per_second: 0.5
    cycle_seconds: 7200
    rest_seconds: 3600
    crate_capacity: 400
    sale_ratio: 10
    slot_cost: 80
vehicles:
  - kind: wagon
    travel_seconds: 1800
    capacity_multiplier: 2
`
	writeDef(t, dir, "orchard.yaml", orchard)

	games, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("Expected 2 games, got %d", len(games))
	}
	if games["orchard"].Catalog.Recipe("apple") == nil {
		t.Fatalf("Expected apple recipe in orchard catalog")
	}
}

func TestLoadDirRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	writeDef(t, dir, "a.yaml", aviaryYAML)
	writeDef(t, dir, "b.yaml", aviaryYAML)

	if _, err := LoadDir(dir); err == nil {
		t.Fatalf("Expected duplicate id error")
	}
}
