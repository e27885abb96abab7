package forecast

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroyield/agri-yield-forecast/internal/observability"
)

type stubModel struct {
	yield float64
	err   error
	panic bool
	last  Input
}

func (m *stubModel) Predict(in Input) (float64, error) {
	m.last = in
	if m.panic {
		panic("model exploded")
	}
	return m.yield, m.err
}

func newTestService(m Model) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(m, logger, observability.NewMetricsForTesting())
}

func TestPredictEndToEnd(t *testing.T) {
	mdl := &stubModel{yield: 3.456}
	svc := newTestService(mdl)

	result, err := svc.Predict(map[string]any{
		"region":               "Kerala",
		"N":                    80.0,
		"P":                    40.0,
		"K":                    40.0,
		"pH":                   6.5,
		"avg_temp_c":           26.8,
		"total_rainfall_mm":    1800.0,
		"avg_humidity_percent": 80.0,
	})

	require.NoError(t, err)
	assert.Equal(t, 3.46, result.Prediction)
	assert.NotEmpty(t, result.YieldCategory)
	assert.NotEmpty(t, result.Irrigation)
	assert.NotEmpty(t, result.CropCycle)
	assert.NotEmpty(t, result.SoilHealth)
	assert.NotEmpty(t, result.WeatherRisks)
	assert.NotEmpty(t, result.FarmingTips)

	assert.Equal(t, "Kerala", mdl.last.Region)
	assert.Equal(t, 1800.0, mdl.last.RainfallMM)
}

func TestPredictModelUnavailable(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Predict(validPayload())

	require.ErrorIs(t, err, ErrModelUnavailable)
	assert.False(t, svc.Loaded())
}

func TestPredictInvalidInput(t *testing.T) {
	svc := newTestService(&stubModel{yield: 2})

	payload := validPayload()
	delete(payload, "N")
	payload["pH"] = "acidic"

	_, err := svc.Predict(payload)

	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Len(t, invalid.Errors, 2)
}

func TestPredictAppliesDefaults(t *testing.T) {
	mdl := &stubModel{yield: 2.0}
	svc := newTestService(mdl)

	_, err := svc.Predict(map[string]any{
		"region": "Kerala",
		"N":      80.0,
		"P":      40.0,
		"K":      40.0,
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultSoilPH, mdl.last.SoilPH)
	assert.Equal(t, DefaultTemperatureC, mdl.last.TemperatureC)
	assert.Equal(t, DefaultRainfallMM, mdl.last.RainfallMM)
	assert.Equal(t, DefaultHumidityPct, mdl.last.HumidityPct)
}

func TestPredictModelError(t *testing.T) {
	svc := newTestService(&stubModel{err: errors.New("feature mismatch")})

	_, err := svc.Predict(validPayload())

	var pe *PredictionError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "feature mismatch")
}

func TestPredictRecoversFromPanic(t *testing.T) {
	svc := newTestService(&stubModel{panic: true})

	_, err := svc.Predict(validPayload())

	var pe *PredictionError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Error(), "model exploded")
}

func TestPredictRounding(t *testing.T) {
	tests := []struct {
		raw     float64
		rounded float64
	}{
		{3.456, 3.46},
		{3.454, 3.45},
		{2.0, 2.0},
		{0.005, 0.01},
	}

	for _, tt := range tests {
		svc := newTestService(&stubModel{yield: tt.raw})
		result, err := svc.Predict(validPayload())
		require.NoError(t, err)
		assert.Equal(t, tt.rounded, result.Prediction)
	}
}
