package criteria

import "fmt"

// Key identifies a comparison dimension. Numeric keys match the dataset
// CSV column names.
type Key string

const (
	KeyMass         Key = "mass_kg"
	KeyLifespan     Key = "lifespan_yr"
	KeyGestation    Key = "gestation_days"
	KeyLitterSize   Key = "litter_size"
	KeyMaxSpeed     Key = "max_speed_mph"
	KeyGroupSize    Key = "population_grp_size"
	KeyPopularity   Key = "pageviews_30d"
	KeyConservation Key = "conservation"
	KeyNocturnal    Key = "nocturnal"
	KeyContinent    Key = "continent"
	KeySound        Key = "sound_url"
)

// Kind is the shape of a criterion; all evaluation dispatches on it.
type Kind int

const (
	KindNumeric Kind = iota
	KindBoolean
	KindOrdinal
	KindCategoricalTarget
	KindAudioTarget
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindOrdinal:
		return "ordinal"
	case KindCategoricalTarget:
		return "categorical-target"
	case KindAudioTarget:
		return "audio-target"
	}
	return "unknown"
}

// IsTarget reports whether rounds under this kind compare against a
// resolved target value rather than the two raw attributes.
func (k Kind) IsTarget() bool {
	return k == KindCategoricalTarget || k == KindAudioTarget
}

// Criterion is an immutable catalog entry.
type Criterion struct {
	Key       Key
	Kind      Kind
	Label     string
	Prompt    string // for target kinds this is a template with one %s
	Highlight string
	Unit      string // numeric kinds only
	Precision int    // numeric kinds only

	// Bridge criteria connect an anchor to candidates for a criterion
	// the anchor cannot currently play.
	Bridge bool
}

// catalog order is stable; priority randomization happens per session in
// the engine, never here.
var catalog = []Criterion{
	{Key: KeyMass, Kind: KindNumeric, Label: "Weight", Prompt: "Which animal is heavier?", Highlight: "heavier", Unit: "kg", Precision: 1},
	{Key: KeyLifespan, Kind: KindNumeric, Label: "Lifespan", Prompt: "Which animal lives longer?", Highlight: "lives longer", Unit: "years"},
	{Key: KeyGestation, Kind: KindNumeric, Label: "Gestation", Prompt: "Which animal has a longer pregnancy?", Highlight: "longer pregnancy", Unit: "days"},
	{Key: KeyLitterSize, Kind: KindNumeric, Label: "Litter size", Prompt: "Which animal has more young per litter?", Highlight: "more young", Unit: "young", Precision: 1},
	{Key: KeyMaxSpeed, Kind: KindNumeric, Label: "Top speed", Prompt: "Which animal is faster?", Highlight: "faster", Unit: "mph"},
	{Key: KeyGroupSize, Kind: KindNumeric, Label: "Group size", Prompt: "Which animal lives in larger groups?", Highlight: "larger groups", Unit: "individuals"},
	{Key: KeyPopularity, Kind: KindNumeric, Label: "Popularity", Prompt: "Which animal gets more Wikipedia views?", Highlight: "more Wikipedia views", Unit: "views", Bridge: true},
	{Key: KeyConservation, Kind: KindOrdinal, Label: "Conservation", Prompt: "Which animal is closer to extinction?", Highlight: "closer to extinction", Bridge: true},
	{Key: KeyNocturnal, Kind: KindBoolean, Label: "Nocturnal", Prompt: "Which animal is active at night?", Highlight: "active at night"},
	{Key: KeyContinent, Kind: KindCategoricalTarget, Label: "Continent", Prompt: "Which animal lives in %s?", Highlight: "lives in"},
	{Key: KeySound, Kind: KindAudioTarget, Label: "Sound", Prompt: "Which animal makes %s?", Highlight: "this sound"},
}

// Catalog returns the full ordered criterion set.
func Catalog() []Criterion {
	out := make([]Criterion, len(catalog))
	copy(out, catalog)
	return out
}

// Enabled returns the catalog filtered for a session. When audio
// questions are off, the audio criterion disappears entirely: it is
// excluded from priority lists and candidate maps alike.
func Enabled(audioAllowed bool) []Criterion {
	out := make([]Criterion, 0, len(catalog))
	for _, c := range catalog {
		if c.Kind == KindAudioTarget && !audioAllowed {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ByKey looks up a catalog entry.
func ByKey(k Key) (Criterion, bool) {
	for _, c := range catalog {
		if c.Key == k {
			return c, true
		}
	}
	return Criterion{}, false
}

// TargetContext is the resolved display/match data for target-style
// criteria: the continent the round tests for, or the audio clip URL.
type TargetContext struct {
	Value       string
	Prompt      string
	Description string
}

// ResolveContext builds the display context for a target criterion and
// the chosen target value.
func ResolveContext(c Criterion, value string) *TargetContext {
	switch c.Kind {
	case KindCategoricalTarget:
		return &TargetContext{
			Value:       value,
			Prompt:      fmt.Sprintf(c.Prompt, value),
			Description: fmt.Sprintf("One of these animals lives in %s.", value),
		}
	case KindAudioTarget:
		return &TargetContext{
			Value:       value,
			Prompt:      fmt.Sprintf(c.Prompt, "this sound"),
			Description: "Listen carefully, one of these animals made it.",
		}
	}
	return nil
}
