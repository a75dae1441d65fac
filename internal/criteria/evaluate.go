package criteria

import (
	"math"
	"strings"

	"beastduel/internal/dataset"
)

// Side names which animal of a pairing wins a comparison.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Rules holds the fairness thresholds. Numeric comparisons use a relative
// gap so the same rule rejects "too close to call" questions whether the
// values are grams or tonnes.
type Rules struct {
	RatioThreshold float64 // minimum relative gap for numeric criteria
	OrdinalGap     int     // minimum level gap for ordinal criteria
}

// DefaultRules matches the shipped game balance.
var DefaultRules = Rules{RatioThreshold: 0.5, OrdinalGap: 2}

// NumericValue returns the animal's attribute for a numeric criterion
// key, or nil when missing.
func NumericValue(a *dataset.Animal, k Key) *float64 {
	switch k {
	case KeyMass:
		return a.MassKg
	case KeyLifespan:
		return a.LifespanYr
	case KeyGestation:
		return a.GestationDays
	case KeyLitterSize:
		return a.LitterSize
	case KeyMaxSpeed:
		return a.MaxSpeedMph
	case KeyGroupSize:
		return a.PopulationGroup
	case KeyPopularity:
		return a.Pageviews30d
	}
	return nil
}

// TargetValue returns the animal's own value for a target-style
// criterion: its continent or its audio clip URL.
func TargetValue(a *dataset.Animal, c Criterion) string {
	switch c.Kind {
	case KindCategoricalTarget:
		return a.Continent
	case KindAudioTarget:
		return a.SoundURL
	}
	return ""
}

// Comparable reports whether both animals expose a usable value for the
// criterion. Malformed or absent attributes stop here and never reach
// threshold evaluation.
func Comparable(a, b *dataset.Animal, c Criterion) bool {
	switch c.Kind {
	case KindNumeric:
		return NumericValue(a, c.Key) != nil && NumericValue(b, c.Key) != nil
	case KindBoolean:
		return a.Nocturnal != nil && b.Nocturnal != nil
	case KindOrdinal:
		return a.ConservationLevel > 0 && b.ConservationLevel > 0
	case KindCategoricalTarget:
		return a.Continent != "" && b.Continent != ""
	case KindAudioTarget:
		return a.SoundURL != "" || b.SoundURL != ""
	}
	return false
}

// PassesThreshold reports whether the gap between the two animals is
// wide enough for a fair question. Callers must have checked Comparable.
func (r Rules) PassesThreshold(a, b *dataset.Animal, c Criterion) bool {
	switch c.Kind {
	case KindNumeric:
		av, bv := *NumericValue(a, c.Key), *NumericValue(b, c.Key)
		return relativeGap(av, bv) >= r.RatioThreshold
	case KindBoolean:
		return *a.Nocturnal != *b.Nocturnal
	case KindOrdinal:
		gap := a.ConservationLevel - b.ConservationLevel
		if gap < 0 {
			gap = -gap
		}
		return gap >= r.OrdinalGap
	case KindCategoricalTarget:
		return !strings.EqualFold(a.Continent, b.Continent)
	case KindAudioTarget:
		if a.SoundURL == "" && b.SoundURL == "" {
			return false
		}
		if a.SoundURL != "" && b.SoundURL != "" {
			return a.SoundURL != b.SoundURL
		}
		return true
	}
	return false
}

// relativeGap is |a-b| over the smaller magnitude, or over the larger
// when the smaller is zero.
func relativeGap(a, b float64) float64 {
	diff := math.Abs(a - b)
	lo := math.Min(math.Abs(a), math.Abs(b))
	hi := math.Max(math.Abs(a), math.Abs(b))
	if lo == 0 {
		if hi == 0 {
			return 0
		}
		return diff / hi
	}
	return diff / lo
}

// WinningSide decides which side wins the comparison. Higher raw values
// win for numeric, ordinal and boolean criteria; equal values default to
// the left side, there is no tie outcome. Target-style criteria are won
// by the side whose own value matches the resolved target; if both or
// neither match, left wins.
func WinningSide(a, b *dataset.Animal, c Criterion, target string) Side {
	switch c.Kind {
	case KindNumeric:
		av, bv := NumericValue(a, c.Key), NumericValue(b, c.Key)
		if av == nil || bv == nil {
			return SideLeft
		}
		if *bv > *av {
			return SideRight
		}
		return SideLeft
	case KindBoolean:
		if a.Nocturnal == nil || b.Nocturnal == nil {
			return SideLeft
		}
		if !*a.Nocturnal && *b.Nocturnal {
			return SideRight
		}
		return SideLeft
	case KindOrdinal:
		if b.ConservationLevel > a.ConservationLevel {
			return SideRight
		}
		return SideLeft
	case KindCategoricalTarget:
		am := strings.EqualFold(a.Continent, target)
		bm := strings.EqualFold(b.Continent, target)
		if bm && !am {
			return SideRight
		}
		return SideLeft
	case KindAudioTarget:
		am := a.SoundURL != "" && a.SoundURL == target
		bm := b.SoundURL != "" && b.SoundURL == target
		if bm && !am {
			return SideRight
		}
		return SideLeft
	}
	return SideLeft
}
