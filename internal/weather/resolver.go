package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/jonboulle/clockwork"

	"github.com/agroyield/agri-yield-forecast/internal/observability"
)

// Jitter spans applied to simulated observations. These are policy
// constants, not derived from data.
const (
	tempJitterC       = 2.0
	rainJitterMM      = 100.0
	humidityJitterPct = 5.0

	forecastTempJitterC       = 3.0
	forecastRainScaleMin      = 0.5
	forecastRainScaleMax      = 1.5
	forecastHumidityJitterPct = 10.0
)

// Resolver produces weather observations for named regions, preferring the
// configured live providers and falling back to a deterministic simulated
// source when live resolution is unavailable or fails.
type Resolver struct {
	providers []Provider
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewResolver creates a Resolver. The clock is injected so tests can freeze
// the hour that seeds simulated jitter; pass nil for real time.
func NewResolver(providers []Provider, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{
		providers: providers,
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// Resolve returns a weather observation for the region. When preferLive is
// set and providers are configured, the provider chain is tried in order;
// the first successful reading wins and is tagged "live". Any live failure
// degrades silently to the simulated source. Resolve never fails: the
// simulated path always produces a valid observation.
func (r *Resolver) Resolve(ctx context.Context, region string, preferLive bool) Observation {
	if preferLive && len(r.providers) > 0 {
		if obs, ok := r.resolveLive(ctx, region); ok {
			r.metrics.WeatherResolutions.WithLabelValues(string(SourceLive)).Inc()
			return obs
		}
		r.metrics.LiveFallbacks.Inc()
		r.logger.Warn("all live providers failed, using simulated weather", "region", region)
	}

	obs := r.simulate(region)
	r.metrics.WeatherResolutions.WithLabelValues(string(SourceSimulated)).Inc()
	return obs
}

func (r *Resolver) resolveLive(ctx context.Context, region string) (Observation, bool) {
	for _, p := range r.providers {
		reading, err := p.Fetch(ctx, region)
		if err != nil {
			r.logger.Warn("live weather fetch failed",
				"provider", p.Name(), "region", region, "error", err)
			continue
		}

		ts := reading.Timestamp
		if ts.IsZero() {
			ts = r.clock.Now()
		}

		// Live provider data is trusted as-is; the clamp applies only to
		// the simulated path.
		return Observation{
			Region:       region,
			Timestamp:    ts.UTC(),
			TemperatureC: reading.TemperatureC,
			RainfallMM:   reading.RainfallMM,
			HumidityPct:  reading.HumidityPct,
			Source:       SourceLive,
		}, true
	}
	return Observation{}, false
}

// simulate generates a deterministic observation from the region baseline
// plus bounded jitter. The RNG is seeded from the current calendar day and
// hour, so repeated calls within the same hour return identical values
// while values drift hour to hour.
func (r *Resolver) simulate(region string) Observation {
	now := r.clock.Now()
	rng := rand.New(rand.NewSource(int64(now.Day() + now.Hour())))

	b := baselineFor(region)
	obs := Observation{
		Region:       region,
		Timestamp:    now.UTC(),
		TemperatureC: round1(b.TempC + jitter(rng, tempJitterC)),
		RainfallMM:   round1(b.RainfallMM + jitter(rng, rainJitterMM)),
		HumidityPct:  round1(b.HumidityPct + jitter(rng, humidityJitterPct)),
		Source:       SourceSimulated,
	}
	return clampObservation(obs)
}

// ForecastDays builds an n-day synthetic outlook by applying wider per-day
// jitter to a single resolved base observation. Days are independent draws;
// no autocorrelation is modelled. The same clamp bounds are reapplied per day.
func (r *Resolver) ForecastDays(ctx context.Context, region string, days int, preferLive bool) (Forecast, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be greater than zero")
	}

	base := r.Resolve(ctx, region, preferLive)

	now := r.clock.Now()
	rng := rand.New(rand.NewSource(int64(now.Day() + now.Hour())))

	forecast := make(Forecast, 0, days)
	for day := 1; day <= days; day++ {
		obs := Observation{
			Region:       region,
			Timestamp:    base.Timestamp.AddDate(0, 0, day),
			TemperatureC: base.TemperatureC + jitter(rng, forecastTempJitterC),
			RainfallMM:   base.RainfallMM * uniform(rng, forecastRainScaleMin, forecastRainScaleMax),
			HumidityPct:  base.HumidityPct + jitter(rng, forecastHumidityJitterPct),
			Source:       SourceSimulated,
		}
		forecast = append(forecast, clampObservation(obs))
	}
	return forecast, nil
}

// Validate reports whether an observation falls inside a wider plausibility
// envelope than the clamp bounds. It is a diagnostic helper and is not
// invoked automatically by Resolve.
func Validate(o Observation) bool {
	if o.TemperatureC < -10 || o.TemperatureC > 55 {
		return false
	}
	if o.RainfallMM < 0 || o.RainfallMM > 5000 {
		return false
	}
	if o.HumidityPct < MinHumidityPct || o.HumidityPct > MaxHumidityPct {
		return false
	}
	return true
}

func clampObservation(o Observation) Observation {
	o.TemperatureC = clamp(o.TemperatureC, MinTemperatureC, MaxTemperatureC)
	o.RainfallMM = math.Max(0, o.RainfallMM)
	o.HumidityPct = clamp(o.HumidityPct, MinHumidityPct, MaxHumidityPct)
	return o
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// jitter returns a uniform draw in [-span, span].
func jitter(rng *rand.Rand, span float64) float64 {
	return uniform(rng, -span, span)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
