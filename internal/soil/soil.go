// Package soil provides the static per-region soil reference table. The
// table ships as an embedded CSV and is loaded once at startup; all reads
// afterwards are lock-free.
package soil

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
)

//go:embed data/region_soil.csv
var referenceCSV []byte

// Profile holds baseline soil nutrient levels and acidity for a region.
type Profile struct {
	Nitrogen   float64 `json:"N"`
	Phosphorus float64 `json:"P"`
	Potassium  float64 `json:"K"`
	PH         float64 `json:"pH"`
}

// Table is a read-only lookup of soil profiles by region name.
type Table struct {
	profiles map[string]Profile
	regions  []string
}

// Load parses the embedded reference CSV into a Table.
func Load() (*Table, error) {
	r := csv.NewReader(bytes.NewReader(referenceCSV))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse soil reference data: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("soil reference data is empty")
	}

	t := &Table{profiles: make(map[string]Profile, len(rows)-1)}
	for i, row := range rows[1:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("soil reference row %d: expected 5 columns, got %d", i+2, len(row))
		}

		var vals [4]float64
		for j, s := range row[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("soil reference row %d: %w", i+2, err)
			}
			vals[j] = v
		}

		t.profiles[row[0]] = Profile{
			Nitrogen:   vals[0],
			Phosphorus: vals[1],
			Potassium:  vals[2],
			PH:         vals[3],
		}
		t.regions = append(t.regions, row[0])
	}

	sort.Strings(t.regions)
	return t, nil
}

// Lookup returns the soil profile for a region.
func (t *Table) Lookup(region string) (Profile, bool) {
	p, ok := t.profiles[region]
	return p, ok
}

// Regions lists all known region names in sorted order.
func (t *Table) Regions() []string {
	out := make([]string, len(t.regions))
	copy(out, t.regions)
	return out
}
