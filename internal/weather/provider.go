package weather

import (
	"context"
	"time"
)

// Reading is a single provider's raw result before the resolver maps it
// into an Observation.
type Reading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC float64
	RainfallMM   float64
	HumidityPct  float64
}

// Provider abstracts a live weather data source (e.g. OpenWeatherMap,
// WeatherAPI). Implementations are expected to make a single bounded
// request per Fetch call; retry policy is deliberately not part of the
// contract.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, region string) (Reading, error)
}
