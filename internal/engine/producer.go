package engine

// ProducerState represents the phase of a producer's timer cycle.
type ProducerState int

const (
	// StateProducing indicates the producer is accumulating its next yield.
	StateProducing ProducerState = iota
	// StateReady indicates a finished cycle waiting to be collected.
	StateReady
	// StateResting indicates the post-collect cooldown phase.
	StateResting
)

// String returns a human-readable representation of the producer state.
func (s ProducerState) String() string {
	switch s {
	case StateProducing:
		return "Producing"
	case StateReady:
		return "Ready"
	case StateResting:
		return "Resting"
	default:
		return "Unknown"
	}
}

// Producer is one timed production slot: a bird pen, a tree plot, a mine
// shaft. It advances only when reconciled; no timer runs between requests.
type Producer struct {
	ID       string        `json:"id"`
	Resource ResourceType  `json:"resource"`
	State    ProducerState `json:"state"`

	// AnchorUnix is the timestamp the producer was last reconciled to.
	AnchorUnix int64 `json:"anchor_at"`

	// PhaseRemaining is the number of seconds left in the current
	// producing or resting phase. Zero while Ready.
	PhaseRemaining int64 `json:"phase_remaining"`

	// PendingYield is the collected-on-demand output of the finished
	// cycle. Non-zero only while Ready.
	PendingYield int64 `json:"pending_yield"`

	// Multiplier scales the cycle yield (worker count, flock size).
	// Minimum 1.
	Multiplier int64 `json:"multiplier"`
}

// NewProducer creates a producer at the start of its producing phase.
func NewProducer(id string, cfg *RecipeConfig, now int64) *Producer {
	return &Producer{
		ID:             id,
		Resource:       cfg.Resource,
		State:          StateProducing,
		AnchorUnix:     now,
		PhaseRemaining: cfg.CycleSeconds,
		Multiplier:     1,
	}
}

// Reconcile advances the producer from its anchor timestamp to now,
// consuming elapsed time in whole-phase steps. It runs in O(phases elapsed),
// never O(seconds), so catch-up after long offline periods stays cheap.
//
// Ready is a wait state: without auto-collect the loop halts there and
// further elapsed time is not banked. With auto-collect the pending yield is
// deposited into home and the cycle continues, so arbitrarily many offline
// cycles drain in one call.
//
// Reconcile is idempotent: a second call with the same now is a no-op. It
// never returns an error. The returned amount is what auto-collect
// deposited into home during this call (zero when disabled).
func (p *Producer) Reconcile(cfg *RecipeConfig, now int64, autoCollect bool, home Inventory) int64 {
	var drained int64

	elapsed := now - p.AnchorUnix
	if elapsed <= 0 {
		return 0
	}

	for {
		switch p.State {
		case StateProducing:
			if elapsed < p.PhaseRemaining {
				p.PhaseRemaining -= elapsed
				elapsed = 0
				break
			}
			elapsed -= p.PhaseRemaining
			p.PhaseRemaining = 0
			p.State = StateReady
			p.PendingYield = p.Multiplier * cfg.CycleYield()

		case StateReady:
			if !autoCollect {
				elapsed = 0
				break
			}
			home.Deposit(p.Resource, p.PendingYield)
			drained += p.PendingYield
			p.PendingYield = 0
			p.enterNextPhase(cfg)

		case StateResting:
			if elapsed < p.PhaseRemaining {
				p.PhaseRemaining -= elapsed
				elapsed = 0
				break
			}
			elapsed -= p.PhaseRemaining
			p.State = StateProducing
			p.PhaseRemaining = cfg.CycleSeconds
		}

		// A Ready state under auto-collect still needs draining even when
		// the elapsed time is fully consumed.
		if elapsed == 0 && !(p.State == StateReady && autoCollect) {
			break
		}
	}

	p.AnchorUnix = now
	return drained
}

// Collect moves the pending yield into the home inventory and starts the
// next phase. Valid only while Ready; otherwise fails with ErrNotReady and
// mutates nothing. Returns the collected amount.
func (p *Producer) Collect(cfg *RecipeConfig, now int64, home Inventory) (int64, error) {
	if p.State != StateReady {
		return 0, ErrNotReady
	}

	collected := p.PendingYield
	home.Deposit(p.Resource, collected)
	p.PendingYield = 0
	p.enterNextPhase(cfg)
	p.AnchorUnix = now
	return collected, nil
}

// enterNextPhase transitions out of Ready: into Resting when the recipe has
// a rest phase, straight back to Producing otherwise.
func (p *Producer) enterNextPhase(cfg *RecipeConfig) {
	if cfg.RestSeconds > 0 {
		p.State = StateResting
		p.PhaseRemaining = cfg.RestSeconds
		return
	}
	p.State = StateProducing
	p.PhaseRemaining = cfg.CycleSeconds
}

// normalize repairs a producer loaded from an untrusted snapshot so the
// state machine invariants hold before any reconcile runs.
func (p *Producer) normalize(cfg *RecipeConfig) {
	if p.Multiplier < 1 {
		p.Multiplier = 1
	}
	if p.PendingYield < 0 {
		p.PendingYield = 0
	}
	switch p.State {
	case StateReady:
		p.PhaseRemaining = 0
	case StateProducing:
		if p.PhaseRemaining <= 0 || p.PhaseRemaining > cfg.CycleSeconds {
			p.PhaseRemaining = cfg.CycleSeconds
		}
		p.PendingYield = 0
	case StateResting:
		if cfg.RestSeconds == 0 {
			p.State = StateProducing
			p.PhaseRemaining = cfg.CycleSeconds
		} else if p.PhaseRemaining <= 0 || p.PhaseRemaining > cfg.RestSeconds {
			p.PhaseRemaining = cfg.RestSeconds
		}
		p.PendingYield = 0
	default:
		p.State = StateProducing
		p.PhaseRemaining = cfg.CycleSeconds
		p.PendingYield = 0
	}
}
