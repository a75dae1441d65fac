package engine

import (
	"beastduel/internal/criteria"
	"beastduel/internal/dataset"
)

// Round is one assembled question. Side placement is randomized once at
// assembly and never swapped afterward.
type Round struct {
	Left      *dataset.Animal
	Right     *dataset.Animal
	Criterion criteria.Criterion
	Context   *criteria.TargetContext
	Bridged   bool
}

// WinningSide returns which side the data says wins this round.
func (r *Round) WinningSide() criteria.Side {
	target := ""
	if r.Context != nil {
		target = r.Context.Value
	}
	return criteria.WinningSide(r.Left, r.Right, r.Criterion, target)
}

// Winner returns the animal on the winning side; it becomes the next
// round's anchor.
func (r *Round) Winner() *dataset.Animal {
	if r.WinningSide() == criteria.SideRight {
		return r.Right
	}
	return r.Left
}

// Loser returns the animal on the losing side.
func (r *Round) Loser() *dataset.Animal {
	if r.WinningSide() == criteria.SideRight {
		return r.Left
	}
	return r.Right
}

// Prompt returns the question text, with target context resolved.
func (r *Round) Prompt() string {
	if r.Context != nil {
		return r.Context.Prompt
	}
	return r.Criterion.Prompt
}

// assemble packages a selection into an immutable Round and applies the
// state transitions: usage +1, pending slot cleared or set, winner run
// advanced, anti-repeat key recorded.
func (e *Engine) assemble(st *State, anchor *dataset.Animal, sel selection) *Round {
	left, right := anchor, sel.Candidate
	if e.src.Float64() < 0.5 {
		left, right = right, left
	}

	r := &Round{
		Left:      left,
		Right:     right,
		Criterion: sel.Criterion,
		Bridged:   sel.bridged,
	}
	if sel.Criterion.Kind.IsTarget() {
		r.Context = criteria.ResolveContext(sel.Criterion, sel.Target)
	}

	st.Usage[sel.Criterion.Key]++
	st.LastKey = sel.Criterion.Key
	st.Pending = nil
	if sel.bridged {
		k := sel.intended
		st.Pending = &k
	}

	winner := r.Winner()
	if winner.ID == st.RunID {
		st.RunCount++
	} else {
		st.RunID = winner.ID
		st.RunCount = 1
	}
	return r
}
