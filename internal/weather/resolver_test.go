package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroyield/agri-yield-forecast/internal/observability"
)

type stubProvider struct {
	name    string
	reading Reading
	err     error
	calls   int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Fetch(_ context.Context, _ string) (Reading, error) {
	p.calls++
	return p.reading, p.err
}

func newTestResolver(providers []Provider, at time.Time) *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(providers, clockwork.NewFakeClockAt(at), logger, observability.NewMetricsForTesting())
}

func TestSimulatedDeterminismWithinHour(t *testing.T) {
	at := time.Date(2024, 4, 26, 10, 12, 0, 0, time.UTC)

	r := newTestResolver(nil, at)
	first := r.Resolve(context.Background(), "Kerala", false)
	second := r.Resolve(context.Background(), "Kerala", false)

	assert.Equal(t, first, second)
	assert.Equal(t, SourceSimulated, first.Source)

	// A different minute within the same day and hour seeds identically.
	later := newTestResolver(nil, at.Add(40*time.Minute))
	third := later.Resolve(context.Background(), "Kerala", false)
	assert.Equal(t, first.TemperatureC, third.TemperatureC)
	assert.Equal(t, first.RainfallMM, third.RainfallMM)
	assert.Equal(t, first.HumidityPct, third.HumidityPct)
}

func TestSimulatedDriftsAcrossHours(t *testing.T) {
	morning := newTestResolver(nil, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))
	afternoon := newTestResolver(nil, time.Date(2024, 4, 26, 13, 0, 0, 0, time.UTC))

	a := morning.Resolve(context.Background(), "Kerala", false)
	b := afternoon.Resolve(context.Background(), "Kerala", false)

	same := a.TemperatureC == b.TemperatureC &&
		a.RainfallMM == b.RainfallMM &&
		a.HumidityPct == b.HumidityPct
	assert.False(t, same, "different hours should seed different jitter")
}

func TestSimulatedClampBounds(t *testing.T) {
	regions := make([]string, 0, len(regionBaselines)+1)
	for region := range regionBaselines {
		regions = append(regions, region)
	}
	regions = append(regions, "Atlantis")

	for hour := 0; hour < 24; hour++ {
		r := newTestResolver(nil, time.Date(2024, 4, 26, hour, 0, 0, 0, time.UTC))
		for _, region := range regions {
			obs := r.Resolve(context.Background(), region, false)

			assert.GreaterOrEqual(t, obs.TemperatureC, MinTemperatureC, region)
			assert.LessOrEqual(t, obs.TemperatureC, MaxTemperatureC, region)
			assert.GreaterOrEqual(t, obs.RainfallMM, 0.0, region)
			assert.GreaterOrEqual(t, obs.HumidityPct, MinHumidityPct, region)
			assert.LessOrEqual(t, obs.HumidityPct, MaxHumidityPct, region)
		}
	}
}

func TestUnknownRegionUsesDefaultBaseline(t *testing.T) {
	r := newTestResolver(nil, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))

	obs := r.Resolve(context.Background(), "Atlantis", false)

	assert.Equal(t, SourceSimulated, obs.Source)
	assert.InDelta(t, defaultBaseline.TempC, obs.TemperatureC, tempJitterC)
	assert.InDelta(t, defaultBaseline.RainfallMM, obs.RainfallMM, rainJitterMM)
	assert.InDelta(t, defaultBaseline.HumidityPct, obs.HumidityPct, humidityJitterPct)
}

func TestResolveLiveSuccess(t *testing.T) {
	ts := time.Date(2024, 4, 26, 9, 30, 0, 0, time.UTC)
	provider := &stubProvider{
		name: "stub",
		reading: Reading{
			ProviderName: "stub",
			Timestamp:    ts,
			TemperatureC: 31.4,
			RainfallMM:   1240,
			HumidityPct:  71,
		},
	}

	r := newTestResolver([]Provider{provider}, ts)
	obs := r.Resolve(context.Background(), "Kerala", true)

	assert.Equal(t, SourceLive, obs.Source)
	assert.Equal(t, 31.4, obs.TemperatureC)
	assert.Equal(t, 1240.0, obs.RainfallMM)
	assert.Equal(t, 71.0, obs.HumidityPct)
	assert.Equal(t, ts, obs.Timestamp)
	assert.Equal(t, 1, provider.calls)
}

func TestLiveValuesAreNotClamped(t *testing.T) {
	// The clamp is a net for simulated jitter only; live data is trusted
	// as-is even when it looks implausible.
	provider := &stubProvider{
		name:    "stub",
		reading: Reading{TemperatureC: 61.0, RainfallMM: 9000, HumidityPct: 104},
	}

	r := newTestResolver([]Provider{provider}, time.Date(2024, 4, 26, 9, 0, 0, 0, time.UTC))
	obs := r.Resolve(context.Background(), "Kerala", true)

	assert.Equal(t, SourceLive, obs.Source)
	assert.Equal(t, 61.0, obs.TemperatureC)
	assert.Equal(t, 9000.0, obs.RainfallMM)
	assert.Equal(t, 104.0, obs.HumidityPct)
}

func TestLiveFailureFallsBackToSimulated(t *testing.T) {
	failing := &stubProvider{name: "down", err: errors.New("connection refused")}

	r := newTestResolver([]Provider{failing}, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))
	obs := r.Resolve(context.Background(), "Kerala", true)

	assert.Equal(t, SourceSimulated, obs.Source)
	assert.True(t, Validate(obs))
	assert.Equal(t, 1, failing.calls)
}

func TestLiveChainTriesNextProvider(t *testing.T) {
	failing := &stubProvider{name: "down", err: errors.New("timeout")}
	working := &stubProvider{
		name:    "up",
		reading: Reading{TemperatureC: 27.0, RainfallMM: 800, HumidityPct: 65},
	}

	r := newTestResolver([]Provider{failing, working}, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))
	obs := r.Resolve(context.Background(), "Kerala", true)

	assert.Equal(t, SourceLive, obs.Source)
	assert.Equal(t, 27.0, obs.TemperatureC)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)
}

func TestPreferLiveFalseSkipsProviders(t *testing.T) {
	provider := &stubProvider{
		name:    "stub",
		reading: Reading{TemperatureC: 30, RainfallMM: 100, HumidityPct: 60},
	}

	r := newTestResolver([]Provider{provider}, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))
	obs := r.Resolve(context.Background(), "Kerala", false)

	assert.Equal(t, SourceSimulated, obs.Source)
	assert.Equal(t, 0, provider.calls)
}

func TestForecastDays(t *testing.T) {
	r := newTestResolver(nil, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))

	fc, err := r.ForecastDays(context.Background(), "Kerala", 5, false)
	require.NoError(t, err)
	require.Len(t, fc, 5)

	base := r.Resolve(context.Background(), "Kerala", false)
	for i, day := range fc {
		assert.GreaterOrEqual(t, day.TemperatureC, MinTemperatureC)
		assert.LessOrEqual(t, day.TemperatureC, MaxTemperatureC)
		assert.GreaterOrEqual(t, day.RainfallMM, 0.0)
		assert.GreaterOrEqual(t, day.HumidityPct, MinHumidityPct)
		assert.LessOrEqual(t, day.HumidityPct, MaxHumidityPct)

		// Each day derives from the same base observation.
		assert.InDelta(t, base.TemperatureC, day.TemperatureC, forecastTempJitterC)
		assert.InDelta(t, base.HumidityPct, day.HumidityPct, forecastHumidityJitterPct)
		assert.LessOrEqual(t, day.RainfallMM, base.RainfallMM*forecastRainScaleMax)
		assert.Equal(t, base.Timestamp.AddDate(0, 0, i+1), day.Timestamp)
	}
}

func TestForecastDaysRejectsNonPositive(t *testing.T) {
	r := newTestResolver(nil, time.Date(2024, 4, 26, 10, 0, 0, 0, time.UTC))

	_, err := r.ForecastDays(context.Background(), "Kerala", 0, false)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		obs   Observation
		valid bool
	}{
		{"typical", Observation{TemperatureC: 26.8, RainfallMM: 1800, HumidityPct: 80}, true},
		{"cold but plausible", Observation{TemperatureC: -5, RainfallMM: 100, HumidityPct: 40}, true},
		{"too cold", Observation{TemperatureC: -20, RainfallMM: 100, HumidityPct: 40}, false},
		{"too hot", Observation{TemperatureC: 60, RainfallMM: 100, HumidityPct: 40}, false},
		{"negative rainfall", Observation{TemperatureC: 25, RainfallMM: -1, HumidityPct: 40}, false},
		{"rainfall too high", Observation{TemperatureC: 25, RainfallMM: 6000, HumidityPct: 40}, false},
		{"humidity too low", Observation{TemperatureC: 25, RainfallMM: 100, HumidityPct: 5}, false},
		{"humidity too high", Observation{TemperatureC: 25, RainfallMM: 100, HumidityPct: 101}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, Validate(tt.obs))
		})
	}
}
