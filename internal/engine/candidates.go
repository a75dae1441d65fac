package engine

import (
	"beastduel/internal/criteria"
	"beastduel/internal/dataset"
)

// Pairing is one playable (opponent, criterion) option against the
// current anchor. Target is the resolved target value for target-style
// criteria ("" otherwise).
type Pairing struct {
	Candidate *dataset.Animal
	Criterion criteria.Criterion
	Target    string
}

// constraints narrow candidate collection for one selection call.
type constraints struct {
	disallowed        criteria.Key
	requireAnchorLose bool
}

// candidatesFor collects every pool animal playable against the anchor
// under one criterion. Target-style criteria enumerate every distinct
// valid target, keeping both the anchor-is-target and candidate-is-target
// options. With requireAnchorLose set, only pairings the anchor loses
// from its own side survive.
func (e *Engine) candidatesFor(anchor *dataset.Animal, c criteria.Criterion, exclude map[string]bool, requireAnchorLose bool) []Pairing {
	var out []Pairing
	for _, x := range e.pool {
		if x.ID == anchor.ID || exclude[x.ID] {
			continue
		}
		if !criteria.Comparable(anchor, x, c) || !e.cfg.Rules.PassesThreshold(anchor, x, c) {
			continue
		}

		if !c.Kind.IsTarget() {
			if requireAnchorLose && criteria.WinningSide(anchor, x, c, "") != criteria.SideRight {
				continue
			}
			out = append(out, Pairing{Candidate: x, Criterion: c})
			continue
		}

		for _, tv := range distinctTargets(anchor, x, c) {
			if requireAnchorLose && criteria.WinningSide(anchor, x, c, tv) != criteria.SideRight {
				continue
			}
			out = append(out, Pairing{Candidate: x, Criterion: c, Target: tv})
		}
	}
	return out
}

func distinctTargets(a, b *dataset.Animal, c criteria.Criterion) []string {
	av := criteria.TargetValue(a, c)
	bv := criteria.TargetValue(b, c)
	var out []string
	if av != "" {
		out = append(out, av)
	}
	if bv != "" && bv != av {
		out = append(out, bv)
	}
	return out
}

// buildCandidateMap runs candidatesFor across every enabled criterion
// except the disallowed one.
func (e *Engine) buildCandidateMap(anchor *dataset.Animal, enabled []criteria.Criterion, exclude map[string]bool, cons constraints) map[criteria.Key][]Pairing {
	m := make(map[criteria.Key][]Pairing, len(enabled))
	for _, c := range enabled {
		if c.Key == cons.disallowed {
			continue
		}
		m[c.Key] = e.candidatesFor(anchor, c, exclude, cons.requireAnchorLose)
	}
	return m
}

// satisfiesAlone reports whether an animal carries a usable value for the
// criterion by itself, ignoring any pairing. Bridge substitution uses it
// to find animals that could answer the intended question even though the
// anchor currently cannot.
func satisfiesAlone(a *dataset.Animal, c criteria.Criterion) bool {
	switch c.Kind {
	case criteria.KindNumeric:
		return criteria.NumericValue(a, c.Key) != nil
	case criteria.KindBoolean:
		return a.Nocturnal != nil
	case criteria.KindOrdinal:
		return a.ConservationLevel > 0
	case criteria.KindCategoricalTarget:
		return a.Continent != ""
	case criteria.KindAudioTarget:
		return a.SoundURL != ""
	}
	return false
}
