package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
)

// Load reads the animal CSV at path and returns the playable pool.
// Rows with no comparable data at all are dropped here, never during
// round selection.
func Load(path string) ([]*Animal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	pool, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	log.Printf("[Dataset] Loaded %d animals from %s\n", len(pool), path)
	return pool, nil
}

// Parse decodes CSV animal rows from r. The header row names the columns,
// so column order does not matter; unknown columns are ignored.
func Parse(r io.Reader) ([]*Animal, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["common_name"]; !ok {
		return nil, fmt.Errorf("header missing common_name column")
	}

	var pool []*Animal
	skipped := 0
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		a := &Animal{
			ID:              field("wikidata_id"),
			Name:            field("common_name"),
			ScientificName:  field("scientific_name"),
			WikipediaTitle:  field("wikipedia_title"),
			SourceURL:       field("source_url"),
			ImageURL:        field("image_url"),
			ImageLicense:    field("image_license"),
			ImageCredit:     field("image_attribution"),
			MassKg:          parsePositive(field("mass_kg")),
			LifespanYr:      parsePositive(field("lifespan_yr")),
			GestationDays:   parsePositive(field("gestation_days")),
			LitterSize:      parsePositive(field("litter_size")),
			MaxSpeedMph:     parsePositive(field("max_speed_mph")),
			PopulationGroup: parsePositive(field("population_grp_size")),
			Pageviews30d:    parsePositive(field("pageviews_30d")),
			Nocturnal:       parseFlag(field("nocturnal")),
			Continent:       field("continent"),
			SoundURL:        field("sound_url"),
		}
		if a.ID == "" {
			a.ID = a.Name
		}
		if a.Name == "" {
			skipped++
			continue
		}
		if lvl := StatusLevel(field("conservation_status")); lvl > 0 {
			a.ConservationLevel = lvl
			a.ConservationLabel = StatusLabel(lvl)
		}

		if !a.HasComparableData() {
			skipped++
			continue
		}
		pool = append(pool, a)
	}
	if skipped > 0 {
		log.Printf("[Dataset] Skipped %d rows with no comparable data\n", skipped)
	}
	return pool, nil
}

// parsePositive returns a pointer to the parsed value only for strictly
// positive finite numbers; anything else is treated as missing.
func parsePositive(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}

// parseFlag reads a tri-state boolean column: "1"/"true" and "0"/"false"
// are known, everything else is unknown (nil).
func parseFlag(s string) *bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		v := true
		return &v
	case "0", "false", "no":
		v := false
		return &v
	}
	return nil
}
