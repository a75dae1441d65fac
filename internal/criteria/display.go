package criteria

import (
	"beastduel/internal/dataset"
	"beastduel/internal/utility"
)

// DisplayValue renders an animal's attribute for the reveal after a
// guess, e.g. "140,000 kg" or "Critically Endangered". Returns "" when
// the attribute is missing.
func DisplayValue(a *dataset.Animal, c Criterion) string {
	switch c.Kind {
	case KindNumeric:
		v := NumericValue(a, c.Key)
		if v == nil {
			return ""
		}
		return utility.FormatQuantity(*v, c.Unit, c.Precision)
	case KindBoolean:
		if a.Nocturnal == nil {
			return ""
		}
		if *a.Nocturnal {
			return "Nocturnal"
		}
		return "Diurnal"
	case KindOrdinal:
		return a.ConservationLabel
	case KindCategoricalTarget:
		return a.Continent
	case KindAudioTarget:
		return a.SoundURL
	}
	return ""
}
