package engine

import (
	"testing"
)

func eggRecipe() *RecipeConfig {
	return &RecipeConfig{
		Resource:      "egg",
		RatePerSecond: 1,
		CycleSeconds:  21600, // 6h
		RestSeconds:   0,
		CrateCapacity: 800,
		SaleRatio:     100,
		SlotCost:      50,
	}
}

func fruitRecipe() *RecipeConfig {
	return &RecipeConfig{
		Resource:      "apple",
		RatePerSecond: 0.5,
		CycleSeconds:  7200,
		RestSeconds:   3600,
		CrateCapacity: 400,
		SaleRatio:     10,
		SlotCost:      80,
	}
}

func TestProducerFullCycle(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 0)
	p.Multiplier = 3

	home := NewInventory()
	p.Reconcile(cfg, 21600, false, home)

	if p.State != StateReady {
		t.Fatalf("Expected Ready, got %s", p.State)
	}
	if p.PendingYield != 64800 {
		t.Fatalf("Expected pending yield 64800, got %d", p.PendingYield)
	}
	if home.Count("egg") != 0 {
		t.Fatalf("Yield must stay pending until collected, home has %d", home.Count("egg"))
	}
}

func TestProducerPartialCycle(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 0)

	p.Reconcile(cfg, 1000, false, NewInventory())

	if p.State != StateProducing {
		t.Fatalf("Expected Producing, got %s", p.State)
	}
	if p.PhaseRemaining != cfg.CycleSeconds-1000 {
		t.Fatalf("Expected %d seconds remaining, got %d", cfg.CycleSeconds-1000, p.PhaseRemaining)
	}
	if p.AnchorUnix != 1000 {
		t.Fatalf("Anchor should move to now, got %d", p.AnchorUnix)
	}
}

func TestProducerReconcileIdempotent(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 0)
	home := NewInventory()

	p.Reconcile(cfg, 30000, false, home)
	snapshot := *p
	eggs := home.Count("egg")

	p.Reconcile(cfg, 30000, false, home)

	if *p != snapshot {
		t.Fatalf("Second reconcile at the same time changed state: %+v vs %+v", *p, snapshot)
	}
	if home.Count("egg") != eggs {
		t.Fatalf("Second reconcile double-counted yield")
	}
}

func TestProducerReadyHaltsCatchUp(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 0)

	// Five full cycles offline, but without auto-collect only the first
	// cycle's yield is banked.
	p.Reconcile(cfg, 5*cfg.CycleSeconds, false, NewInventory())

	if p.State != StateReady {
		t.Fatalf("Expected Ready, got %s", p.State)
	}
	if want := cfg.CycleYield(); p.PendingYield != want {
		t.Fatalf("Expected single-cycle yield %d, got %d", want, p.PendingYield)
	}
}

func TestProducerAutoCollectDrainsAllCycles(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 0)
	home := NewInventory()

	drained := p.Reconcile(cfg, 5*cfg.CycleSeconds, true, home)

	if want := 5 * cfg.CycleYield(); drained != want {
		t.Fatalf("Expected %d drained, got %d", want, drained)
	}
	if home.Count("egg") != 5*cfg.CycleYield() {
		t.Fatalf("Expected %d eggs in home, got %d", 5*cfg.CycleYield(), home.Count("egg"))
	}
	if p.State != StateProducing {
		t.Fatalf("Expected Producing after drain, got %s", p.State)
	}
	if p.PendingYield != 0 {
		t.Fatalf("Pending yield must be zero after auto-collect, got %d", p.PendingYield)
	}
}

func TestProducerRestPhase(t *testing.T) {
	cfg := fruitRecipe()
	p := NewProducer("p1", cfg, 0)
	home := NewInventory()

	p.Reconcile(cfg, cfg.CycleSeconds, false, home)
	if p.State != StateReady {
		t.Fatalf("Expected Ready, got %s", p.State)
	}

	collected, err := p.Collect(cfg, cfg.CycleSeconds, home)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if collected != cfg.CycleYield() {
		t.Fatalf("Expected %d collected, got %d", cfg.CycleYield(), collected)
	}
	if p.State != StateResting {
		t.Fatalf("Expected Resting after collect, got %s", p.State)
	}

	// Halfway through the rest phase.
	p.Reconcile(cfg, cfg.CycleSeconds+cfg.RestSeconds/2, false, home)
	if p.State != StateResting {
		t.Fatalf("Expected still Resting, got %s", p.State)
	}

	// Past the rest phase and into the next production cycle.
	p.Reconcile(cfg, cfg.CycleSeconds+cfg.RestSeconds+100, false, home)
	if p.State != StateProducing {
		t.Fatalf("Expected Producing after rest, got %s", p.State)
	}
	if p.PhaseRemaining != cfg.CycleSeconds-100 {
		t.Fatalf("Expected %d seconds remaining, got %d", cfg.CycleSeconds-100, p.PhaseRemaining)
	}
}

func TestProducerRestThenAutoCollectLoop(t *testing.T) {
	cfg := fruitRecipe()
	p := NewProducer("p1", cfg, 0)
	home := NewInventory()

	// Three full produce+rest periods plus one extra production cycle.
	offline := 3*(cfg.CycleSeconds+cfg.RestSeconds) + cfg.CycleSeconds
	p.Reconcile(cfg, offline, true, home)

	if home.Count("apple") != 4*cfg.CycleYield() {
		t.Fatalf("Expected %d apples, got %d", 4*cfg.CycleYield(), home.Count("apple"))
	}
	if p.State != StateResting {
		t.Fatalf("Expected Resting, got %s", p.State)
	}
}

func TestCollectNotReady(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 0)
	home := NewInventory()
	snapshot := *p

	if _, err := p.Collect(cfg, 100, home); err != ErrNotReady {
		t.Fatalf("Expected ErrNotReady, got %v", err)
	}
	if *p != snapshot {
		t.Fatalf("Failed collect must not mutate the producer")
	}
	if home.Count("egg") != 0 {
		t.Fatalf("Failed collect must not deposit yield")
	}
}

func TestProducerIgnoresNegativeElapsed(t *testing.T) {
	cfg := eggRecipe()
	p := NewProducer("p1", cfg, 5000)
	snapshot := *p

	// Clock skew: now is before the anchor.
	p.Reconcile(cfg, 4000, false, NewInventory())

	if *p != snapshot {
		t.Fatalf("Reconcile with negative elapsed must be a no-op")
	}
}

func TestProducerNormalizeRepairsSnapshot(t *testing.T) {
	cfg := eggRecipe()
	p := &Producer{
		ID:             "p1",
		Resource:       "egg",
		State:          StateProducing,
		PhaseRemaining: -10,
		PendingYield:   99,
		Multiplier:     0,
	}
	p.normalize(cfg)

	if p.Multiplier != 1 {
		t.Fatalf("Expected multiplier clamped to 1, got %d", p.Multiplier)
	}
	if p.PhaseRemaining != cfg.CycleSeconds {
		t.Fatalf("Expected phase reset to %d, got %d", cfg.CycleSeconds, p.PhaseRemaining)
	}
	if p.PendingYield != 0 {
		t.Fatalf("Pending yield outside Ready must be cleared, got %d", p.PendingYield)
	}
}
