package engine

import (
	"errors"

	"beastduel/internal/criteria"
	"beastduel/internal/dataset"
	"beastduel/internal/rng"
)

// ErrExhausted means no valid round can be formed. It is a terminal
// game state for the caller, not a bug.
var ErrExhausted = errors.New("no playable round remains")

// Engine selects rounds from an immutable pool. One engine instance
// serves one game session; its random source has no concurrent callers.
type Engine struct {
	pool []*dataset.Animal
	src  rng.Source
	cfg  Config
}

// New creates an engine over pool using src for every random decision.
func New(pool []*dataset.Animal, src rng.Source, cfg Config) *Engine {
	return &Engine{pool: pool, src: src, cfg: cfg}
}

// Pool returns the engine's animal pool.
func (e *Engine) Pool() []*dataset.Animal { return e.pool }

// selection is the outcome of one pairing search.
type selection struct {
	Pairing
	// bridged is set when the chosen criterion substitutes for intended,
	// which then becomes the pending criterion for the next round.
	bridged  bool
	intended criteria.Key
}

// FirstRound opens a session: the anchor is drawn uniformly from the
// pool. If that animal cannot form a round the remaining pool is tried
// in order before giving up.
func (e *Engine) FirstRound(st *State, audioAllowed bool) (*Round, error) {
	if len(e.pool) == 0 {
		return nil, ErrExhausted
	}
	start := rng.IntN(e.src, len(e.pool))
	for i := 0; i < len(e.pool); i++ {
		anchor := e.pool[(start+i)%len(e.pool)]
		round, err := e.NextRound(st, anchor, nil, audioAllowed)
		if err == nil {
			return round, nil
		}
	}
	return nil, ErrExhausted
}

// NextRound picks the opponent and criterion for the anchor (the prior
// round's winner) and assembles the round. exclude lists animal ids that
// must not reappear, typically just the prior round's loser.
func (e *Engine) NextRound(st *State, anchor *dataset.Animal, exclude map[string]bool, audioAllowed bool) (*Round, error) {
	cons := constraints{
		disallowed:        st.LastKey,
		requireAnchorLose: st.RunCount >= e.cfg.MaxConsecutiveWins,
	}

	sel, err := e.selectPairing(st, anchor, exclude, cons, audioAllowed)
	if err != nil && cons.requireAnchorLose {
		// The incumbent cannot be made to lose. Retry with no
		// exclusions, then drop the constraint rather than stall.
		sel, err = e.selectPairing(st, anchor, nil, cons, audioAllowed)
		if err != nil {
			cons.requireAnchorLose = false
			sel, err = e.selectPairing(st, anchor, exclude, cons, audioAllowed)
		}
	}
	if err != nil {
		return nil, err
	}
	return e.assemble(st, anchor, sel), nil
}

// selectPairing implements the core search: prioritized direct hits,
// bridge substitution, then an unrestricted full scan.
func (e *Engine) selectPairing(st *State, anchor *dataset.Animal, exclude map[string]bool, cons constraints, audioAllowed bool) (selection, error) {
	enabled := criteria.Enabled(audioAllowed)
	cands := e.buildCandidateMap(anchor, enabled, exclude, cons)
	priority := buildPriorityList(enabledWithout(enabled, cons.disallowed), st, e.cfg, e.src)

	for _, c := range priority {
		if opts := cands[c.Key]; len(opts) > 0 {
			return selection{Pairing: opts[rng.IntN(e.src, len(opts))]}, nil
		}
		if c.Bridge {
			continue
		}
		if sel, ok := e.bridgeFor(anchor, c, enabled, exclude, cons); ok {
			return sel, nil
		}
	}

	// Full scan: every remaining valid pairing, rarity ignored. This can
	// land on a recently used criterion, which is accepted degradation.
	var flat []Pairing
	for _, c := range enabled {
		if c.Key == cons.disallowed {
			continue
		}
		flat = append(flat, cands[c.Key]...)
	}
	if len(flat) == 0 {
		return selection{}, ErrExhausted
	}
	return selection{Pairing: flat[rng.IntN(e.src, len(flat))]}, nil
}

// bridgeFor looks for an opponent that can answer the intended criterion
// on its own but is only reachable from the anchor through one of the
// bridge criteria. Pairings the anchor loses are preferred to keep the
// difficulty balanced. On success the intended criterion is remembered
// and retried with top priority next round.
func (e *Engine) bridgeFor(anchor *dataset.Animal, intended criteria.Criterion, enabled []criteria.Criterion, exclude map[string]bool, cons constraints) (selection, bool) {
	var anchorWins, anchorLoses []Pairing
	for _, b := range enabled {
		if !b.Bridge || b.Key == cons.disallowed || b.Key == intended.Key {
			continue
		}
		for _, x := range e.pool {
			if x.ID == anchor.ID || exclude[x.ID] {
				continue
			}
			if !satisfiesAlone(x, intended) {
				continue
			}
			if !criteria.Comparable(anchor, x, b) || !e.cfg.Rules.PassesThreshold(anchor, x, b) {
				continue
			}
			p := Pairing{Candidate: x, Criterion: b}
			if criteria.WinningSide(anchor, x, b, "") == criteria.SideRight {
				anchorLoses = append(anchorLoses, p)
			} else if !cons.requireAnchorLose {
				anchorWins = append(anchorWins, p)
			}
		}
	}

	opts := anchorLoses
	if len(opts) == 0 {
		opts = anchorWins
	}
	if len(opts) == 0 {
		return selection{}, false
	}
	return selection{
		Pairing:  opts[rng.IntN(e.src, len(opts))],
		bridged:  true,
		intended: intended.Key,
	}, true
}

func enabledWithout(cs []criteria.Criterion, k criteria.Key) []criteria.Criterion {
	if k == "" {
		return cs
	}
	out := make([]criteria.Criterion, 0, len(cs))
	for _, c := range cs {
		if c.Key != k {
			out = append(out, c)
		}
	}
	return out
}
