package criteria

import (
	"testing"

	"beastduel/internal/dataset"
)

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }

func mustCriterion(t *testing.T, k Key) Criterion {
	t.Helper()
	c, ok := ByKey(k)
	if !ok {
		t.Fatalf("criterion %q not in catalog", k)
	}
	return c
}

func TestCatalog_HasAllKeys(t *testing.T) {
	want := []Key{
		KeyMass, KeyLifespan, KeyGestation, KeyLitterSize, KeyMaxSpeed,
		KeyGroupSize, KeyPopularity, KeyConservation, KeyNocturnal,
		KeyContinent, KeySound,
	}
	if len(Catalog()) != len(want) {
		t.Fatalf("catalog size = %d, want %d", len(Catalog()), len(want))
	}
	for _, k := range want {
		if _, ok := ByKey(k); !ok {
			t.Errorf("missing criterion %q", k)
		}
	}
}

func TestEnabled_AudioToggle(t *testing.T) {
	for _, c := range Enabled(false) {
		if c.Kind == KindAudioTarget {
			t.Errorf("audio criterion %q present with audio disabled", c.Key)
		}
	}
	found := false
	for _, c := range Enabled(true) {
		if c.Kind == KindAudioTarget {
			found = true
		}
	}
	if !found {
		t.Error("audio criterion absent with audio enabled")
	}
}

func TestCatalog_BridgeCriteria(t *testing.T) {
	for _, c := range Catalog() {
		wantBridge := c.Key == KeyPopularity || c.Key == KeyConservation
		if c.Bridge != wantBridge {
			t.Errorf("criterion %q bridge = %v, want %v", c.Key, c.Bridge, wantBridge)
		}
	}
}

func TestComparable_Numeric(t *testing.T) {
	c := mustCriterion(t, KeyMass)
	a := &dataset.Animal{MassKg: f(50)}
	bb := &dataset.Animal{MassKg: f(100)}
	missing := &dataset.Animal{}

	if !Comparable(a, bb, c) {
		t.Error("both sides have mass, want comparable")
	}
	if Comparable(a, missing, c) {
		t.Error("one side missing mass, want not comparable")
	}
}

func TestComparable_AudioNeedsOneSide(t *testing.T) {
	c := mustCriterion(t, KeySound)
	with := &dataset.Animal{SoundURL: "https://x/a.ogg"}
	without := &dataset.Animal{}

	if !Comparable(with, without, c) {
		t.Error("one audio reference should be enough")
	}
	if Comparable(without, without, c) {
		t.Error("no audio reference on either side, want not comparable")
	}
}

func TestPassesThreshold_NumericRatio(t *testing.T) {
	c := mustCriterion(t, KeyMass)
	r := DefaultRules

	pair := func(a, b float64) bool {
		return r.PassesThreshold(&dataset.Animal{MassKg: f(a)}, &dataset.Animal{MassKg: f(b)}, c)
	}

	if !pair(100, 150) { // gap 50 / min 100 = 0.5, inclusive
		t.Error("gap exactly 0.5 should pass")
	}
	if pair(100, 149) {
		t.Error("gap 0.49 should fail")
	}
	if !pair(150, 100) {
		t.Error("threshold must be symmetric in argument order")
	}
	// Scale-independence: grams-scale and tonnes-scale behave alike.
	if pair(0.1, 0.14) {
		t.Error("small-scale close call should fail")
	}
	if !pair(100000, 200000) {
		t.Error("large-scale wide gap should pass")
	}
}

func TestPassesThreshold_Ordinal(t *testing.T) {
	c := mustCriterion(t, KeyConservation)
	r := DefaultRules
	lc := &dataset.Animal{ConservationLevel: dataset.LevelLeastConcern}
	vu := &dataset.Animal{ConservationLevel: dataset.LevelVulnerable}
	nt := &dataset.Animal{ConservationLevel: dataset.LevelNearThreatened}

	if !r.PassesThreshold(lc, vu, c) {
		t.Error("gap 2 should pass")
	}
	if r.PassesThreshold(lc, nt, c) {
		t.Error("gap 1 should fail")
	}
}

func TestPassesThreshold_Boolean(t *testing.T) {
	c := mustCriterion(t, KeyNocturnal)
	day := &dataset.Animal{Nocturnal: b(false)}
	night := &dataset.Animal{Nocturnal: b(true)}

	if !DefaultRules.PassesThreshold(day, night, c) {
		t.Error("flag difference should pass")
	}
	if DefaultRules.PassesThreshold(night, night, c) {
		t.Error("same flag should fail")
	}
}

func TestPassesThreshold_Continent(t *testing.T) {
	c := mustCriterion(t, KeyContinent)
	africa := &dataset.Animal{Continent: "Africa"}
	africaLower := &dataset.Animal{Continent: "africa"}
	asia := &dataset.Animal{Continent: "Asia"}

	if !DefaultRules.PassesThreshold(africa, asia, c) {
		t.Error("different continents should pass")
	}
	if DefaultRules.PassesThreshold(africa, africaLower, c) {
		t.Error("same continent (case-insensitive) should fail")
	}
}

func TestPassesThreshold_Audio(t *testing.T) {
	c := mustCriterion(t, KeySound)
	a1 := &dataset.Animal{SoundURL: "https://x/a.ogg"}
	a2 := &dataset.Animal{SoundURL: "https://x/b.ogg"}
	same := &dataset.Animal{SoundURL: "https://x/a.ogg"}
	none := &dataset.Animal{}

	if !DefaultRules.PassesThreshold(a1, none, c) {
		t.Error("one-sided audio should pass")
	}
	if !DefaultRules.PassesThreshold(a1, a2, c) {
		t.Error("distinct clips should pass")
	}
	if DefaultRules.PassesThreshold(a1, same, c) {
		t.Error("identical clip on both sides should fail")
	}
}

// Swapping the pair must swap the winner for every criterion shape,
// except the defined equal-value left default.
func TestWinningSide_AntiSymmetric(t *testing.T) {
	heavy := &dataset.Animal{MassKg: f(200), ConservationLevel: 5, Nocturnal: b(true), Continent: "Africa", SoundURL: "https://x/a.ogg"}
	light := &dataset.Animal{MassKg: f(10), ConservationLevel: 1, Nocturnal: b(false), Continent: "Asia", SoundURL: "https://x/b.ogg"}

	for _, k := range []Key{KeyMass, KeyConservation, KeyNocturnal} {
		c := mustCriterion(t, k)
		ab := WinningSide(heavy, light, c, "")
		ba := WinningSide(light, heavy, c, "")
		if ab == ba {
			t.Errorf("%s: winner did not swap with argument order", k)
		}
	}

	cont := mustCriterion(t, KeyContinent)
	if WinningSide(heavy, light, cont, "Africa") != SideLeft {
		t.Error("continent: matching side should win (left)")
	}
	if WinningSide(light, heavy, cont, "Africa") != SideRight {
		t.Error("continent: matching side should win (right)")
	}

	snd := mustCriterion(t, KeySound)
	if WinningSide(heavy, light, snd, "https://x/b.ogg") != SideRight {
		t.Error("sound: owner of the target clip should win")
	}
}

func TestWinningSide_EqualDefaultsLeft(t *testing.T) {
	a := &dataset.Animal{MassKg: f(50)}
	bb := &dataset.Animal{MassKg: f(50)}
	if WinningSide(a, bb, mustCriterion(t, KeyMass), "") != SideLeft {
		t.Error("equal values must default to left")
	}

	cont := mustCriterion(t, KeyContinent)
	both := &dataset.Animal{Continent: "Africa"}
	if WinningSide(both, both, cont, "Africa") != SideLeft {
		t.Error("both matching target must default to left")
	}
	neither := &dataset.Animal{Continent: "Asia"}
	if WinningSide(neither, neither, cont, "Africa") != SideLeft {
		t.Error("neither matching target must default to left")
	}
}

func TestDisplayValue(t *testing.T) {
	a := &dataset.Animal{
		MassKg:            f(140000),
		Nocturnal:         b(true),
		ConservationLabel: "Endangered",
		Continent:         "Antarctica",
	}
	if got := DisplayValue(a, mustCriterion(t, KeyMass)); got != "140,000.0 kg" {
		t.Errorf("mass display = %q", got)
	}
	if got := DisplayValue(a, mustCriterion(t, KeyNocturnal)); got != "Nocturnal" {
		t.Errorf("nocturnal display = %q", got)
	}
	if got := DisplayValue(a, mustCriterion(t, KeyConservation)); got != "Endangered" {
		t.Errorf("conservation display = %q", got)
	}
	if got := DisplayValue(&dataset.Animal{}, mustCriterion(t, KeyMass)); got != "" {
		t.Errorf("missing mass display = %q, want empty", got)
	}
}
