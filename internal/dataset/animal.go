package dataset

// Animal is one row of the loaded pool. Numeric attributes are nil unless
// the source supplied a strictly-positive finite value; Nocturnal is nil
// when the flag is unknown. The pool is immutable once loaded.
type Animal struct {
	ID             string
	Name           string
	ScientificName string
	WikipediaTitle string
	SourceURL      string
	ImageURL       string
	ImageLicense   string
	ImageCredit    string

	MassKg          *float64
	LifespanYr      *float64
	GestationDays   *float64
	LitterSize      *float64
	MaxSpeedMph     *float64
	PopulationGroup *float64
	Pageviews30d    *float64

	// ConservationLevel is 1 (Least Concern) through 7 (Extinct), or 0
	// when the source status did not map into the vocabulary.
	ConservationLevel int
	ConservationLabel string

	Nocturnal *bool
	Continent string
	SoundURL  string
}

// HasComparableData reports whether the animal exposes at least one
// attribute any criterion could use. Animals failing this never enter
// the pool; round selection can assume every pool member is playable.
func (a *Animal) HasComparableData() bool {
	if a.ConservationLevel > 0 {
		return true
	}
	for _, v := range []*float64{
		a.MassKg, a.LifespanYr, a.GestationDays, a.LitterSize,
		a.MaxSpeedMph, a.PopulationGroup, a.Pageviews30d,
	} {
		if v != nil {
			return true
		}
	}
	if a.Nocturnal != nil {
		return true
	}
	if a.Continent != "" {
		return true
	}
	return a.SoundURL != ""
}
