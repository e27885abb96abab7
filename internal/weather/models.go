package weather

import (
	"time"
)

// Source identifies where an observation came from.
type Source string

const (
	// SourceLive marks data fetched from an external weather provider.
	SourceLive Source = "live"
	// SourceSimulated marks deterministically generated fallback data.
	SourceSimulated Source = "simulated"
)

// Plausibility bounds enforced on simulated observations. Live provider
// data is trusted as-is and never clamped.
const (
	MinTemperatureC = 0.0
	MaxTemperatureC = 50.0
	MinHumidityPct  = 10.0
	MaxHumidityPct  = 100.0
)

// Observation is a single weather reading for a region. Observations are
// built fresh per request; the resolver itself never persists them.
type Observation struct {
	Region       string    `json:"region"`
	Timestamp    time.Time `json:"timestamp"` // always UTC
	TemperatureC float64   `json:"avg_temp_c"`
	RainfallMM   float64   `json:"total_rainfall_mm"`
	HumidityPct  float64   `json:"avg_humidity_percent"`
	Source       Source    `json:"source"`
}

// Forecast is a multi-day synthetic outlook, one Observation per day,
// ordered by Timestamp ascending.
type Forecast []Observation
