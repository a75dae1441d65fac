package engine

import "beastduel/internal/criteria"

// State is the per-session selection state. It is owned by the caller
// and mutated only by the engine between rounds, which keeps selection
// itself pure and testable.
type State struct {
	// Usage counts how often each criterion has been chosen this
	// session; least-used criteria are tried first.
	Usage map[criteria.Key]int

	// Pending remembers at most one criterion that was bridged around,
	// so it gets top priority on the very next round. A single slot,
	// not a queue.
	Pending *criteria.Key

	// LastKey is the criterion of the previous round; it is never
	// allowed to repeat immediately.
	LastKey criteria.Key

	// RunID/RunCount track consecutive rounds won by the same animal.
	RunID    string
	RunCount int
}

// NewState returns fresh selection state for a new game.
func NewState() *State {
	return &State{Usage: make(map[criteria.Key]int)}
}

// Config holds the engine's balance knobs.
type Config struct {
	Rules criteria.Rules

	// MaxConsecutiveWins caps how long one animal can keep winning
	// before the engine forces a pairing it loses.
	MaxConsecutiveWins int

	// AudioUsageWeight scales the audio criterion's usage score below
	// its real count, so it surfaces a bit more often to compensate
	// for sessions where audio is toggled off.
	AudioUsageWeight float64
}

// DefaultConfig matches the shipped game balance.
func DefaultConfig() Config {
	return Config{
		Rules:              criteria.DefaultRules,
		MaxConsecutiveWins: 6,
		AudioUsageWeight:   0.7,
	}
}
