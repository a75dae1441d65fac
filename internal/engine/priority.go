package engine

import (
	"sort"

	"beastduel/internal/criteria"
	"beastduel/internal/rng"
)

// buildPriorityList orders the enabled criteria least-used first. Criteria
// sharing a usage score are shuffled within their group via the session
// random source, so ties do not always break in catalog order. A pending
// criterion jumps to the front for exactly one round.
func buildPriorityList(enabled []criteria.Criterion, st *State, cfg Config, src rng.Source) []criteria.Criterion {
	type group struct {
		score float64
		items []criteria.Criterion
	}
	var groups []*group
	byScore := make(map[float64]*group)

	for _, c := range enabled {
		score := float64(st.Usage[c.Key])
		if c.Kind == criteria.KindAudioTarget {
			score *= cfg.AudioUsageWeight
		}
		g, ok := byScore[score]
		if !ok {
			g = &group{score: score}
			byScore[score] = g
			groups = append(groups, g)
		}
		g.items = append(g.items, c)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].score < groups[j].score })

	out := make([]criteria.Criterion, 0, len(enabled))
	for _, g := range groups {
		rng.Shuffle(src, len(g.items), func(i, j int) {
			g.items[i], g.items[j] = g.items[j], g.items[i]
		})
		out = append(out, g.items...)
	}

	if st.Pending != nil {
		for i, c := range out {
			if c.Key == *st.Pending {
				copy(out[1:i+1], out[:i])
				out[0] = c
				break
			}
		}
	}
	return out
}
