package advisory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYieldCategory(t *testing.T) {
	tests := []struct {
		prediction float64
		want       string
	}{
		{0.8, "Low"},
		{1.5, "Moderate"},
		{3.46, "Good"},
		{5.2, "Excellent"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, YieldCategory(tt.prediction))
	}
}

func TestIrrigationVariesWithRainfall(t *testing.T) {
	dry := Irrigation(Weather{TemperatureC: 28, RainfallMM: 300, HumidityPct: 40})
	wet := Irrigation(Weather{TemperatureC: 26, RainfallMM: 1800, HumidityPct: 85})

	assert.NotEqual(t, dry, wet)
	assert.Contains(t, dry, "irrigation")
}

func TestSoilHealthFlagsDeficiencies(t *testing.T) {
	poor := SoilHealth(Soil{Nitrogen: 20, Phosphorus: 10, Potassium: 10, PH: 4.8})
	assert.Contains(t, poor, "nitrogen is low")
	assert.Contains(t, poor, "acidic")

	healthy := SoilHealth(Soil{Nitrogen: 80, Phosphorus: 40, Potassium: 40, PH: 6.8})
	assert.Contains(t, healthy, "healthy")
}

func TestWeatherRisks(t *testing.T) {
	calm := WeatherRisks(Weather{TemperatureC: 26, RainfallMM: 1000, HumidityPct: 60})
	assert.Contains(t, calm, "No major weather risks")

	harsh := WeatherRisks(Weather{TemperatureC: 38, RainfallMM: 2400, HumidityPct: 85})
	assert.Contains(t, harsh, "heat stress")
	assert.Contains(t, harsh, "waterlogging")
	assert.Contains(t, harsh, "fungal")
}

func TestFarmingTipsNeverEmpty(t *testing.T) {
	// Even ideal conditions yield at least the general tip.
	tips := FarmingTips(
		Soil{Nitrogen: 80, Phosphorus: 40, Potassium: 40, PH: 6.8},
		Weather{TemperatureC: 26, RainfallMM: 1000, HumidityPct: 60},
	)
	assert.NotEmpty(t, tips)

	stressed := FarmingTips(
		Soil{Nitrogen: 20, Phosphorus: 10, Potassium: 10, PH: 4.5},
		Weather{TemperatureC: 40, RainfallMM: 300, HumidityPct: 85},
	)
	assert.Greater(t, len(stressed), len(tips))
}
