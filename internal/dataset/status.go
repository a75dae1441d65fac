package dataset

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// IUCN conservation ladder, least to most threatened.
const (
	LevelLeastConcern = iota + 1
	LevelNearThreatened
	LevelVulnerable
	LevelEndangered
	LevelCriticallyEndangered
	LevelExtinctInWild
	LevelExtinct
)

var statusLevels = map[string]int{
	"least concern":         LevelLeastConcern,
	"near threatened":       LevelNearThreatened,
	"vulnerable":            LevelVulnerable,
	"endangered":            LevelEndangered,
	"critically endangered": LevelCriticallyEndangered,
	"extinct in the wild":   LevelExtinctInWild,
	"extinct":               LevelExtinct,
}

var statusAbbrevs = map[string]int{
	"lc": LevelLeastConcern,
	"nt": LevelNearThreatened,
	"vu": LevelVulnerable,
	"en": LevelEndangered,
	"cr": LevelCriticallyEndangered,
	"ew": LevelExtinctInWild,
	"ex": LevelExtinct,
}

// StatusLabel returns the canonical display text for a mapped level.
func StatusLabel(level int) string {
	switch level {
	case LevelLeastConcern:
		return "Least Concern"
	case LevelNearThreatened:
		return "Near Threatened"
	case LevelVulnerable:
		return "Vulnerable"
	case LevelEndangered:
		return "Endangered"
	case LevelCriticallyEndangered:
		return "Critically Endangered"
	case LevelExtinctInWild:
		return "Extinct in the Wild"
	case LevelExtinct:
		return "Extinct"
	}
	return ""
}

// StatusLevel maps a raw source status string onto the ladder. Statuses
// come from scraped data and arrive in many spellings ("Least Concern",
// "least_concern", "LC"), so matching is normalized and tolerates small
// typos via edit distance. Unmapped statuses (including "Data Deficient")
// return 0.
func StatusLevel(raw string) int {
	norm := normalizeStatus(raw)
	if norm == "" {
		return 0
	}
	if lvl, ok := statusLevels[norm]; ok {
		return lvl
	}
	if lvl, ok := statusAbbrevs[norm]; ok {
		return lvl
	}

	best, bestDist := 0, 3
	for name, lvl := range statusLevels {
		d := levenshtein.ComputeDistance(norm, name)
		if d < bestDist {
			best, bestDist = lvl, d
		}
	}
	return best
}

func normalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}
