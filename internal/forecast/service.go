// Package forecast drives one end-to-end yield prediction: validate the
// raw payload, normalize it, invoke the model, and assemble the advisory
// response.
package forecast

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/agroyield/agri-yield-forecast/internal/advisory"
	"github.com/agroyield/agri-yield-forecast/internal/observability"
)

// Model scores a normalized input. Implementations must be deterministic
// for identical input within a loaded instance.
type Model interface {
	Predict(in Input) (float64, error)
}

// Domain defaults substituted for optional fields absent from the payload.
// The validator never applies these; default policy belongs to the
// orchestrator.
const (
	DefaultSoilPH       = 7.0
	DefaultTemperatureC = 25.0
	DefaultRainfallMM   = 0.0
	DefaultHumidityPct  = 50.0
)

// Result is the structured forecast response returned to the caller.
type Result struct {
	Prediction    float64  `json:"prediction"`
	YieldCategory string   `json:"yield_category"`
	Irrigation    string   `json:"irrigation"`
	CropCycle     string   `json:"crop_cycle"`
	SoilHealth    string   `json:"soil_health"`
	WeatherRisks  string   `json:"weather_risks"`
	FarmingTips   []string `json:"farming_tips"`
}

// Service orchestrates the prediction pipeline. A nil model models "not
// loaded"; there is no separate loaded flag.
type Service struct {
	model   Model
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewService(model Model, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		model:   model,
		logger:  logger,
		metrics: metrics,
	}
}

// Loaded reports whether a forecasting model is available.
func (s *Service) Loaded() bool {
	return s.model != nil
}

// Predict runs the full pipeline on a raw payload. Each step is a hard
// gate: a missing model returns ErrModelUnavailable, a rejected payload
// returns InvalidInputError with every field error, and any model or
// advisory failure returns PredictionError. Predict never panics outward.
func (s *Service) Predict(raw map[string]any) (Result, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		s.metrics.PredictionsTotal.WithLabelValues(outcome).Inc()
		s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	}()

	if s.model == nil {
		outcome = "model_unavailable"
		return Result{}, ErrModelUnavailable
	}

	out := ValidateInput(raw)
	if !out.Accepted {
		outcome = "invalid_input"
		return Result{}, &InvalidInputError{Errors: out.Errors}
	}

	in := buildInput(out)

	result, err := s.predict(in)
	if err != nil {
		outcome = "prediction_failure"
		s.logger.Error("prediction failed", "region", in.Region, "error", err)
		return Result{}, err
	}

	s.logger.Info("forecast produced",
		"region", in.Region, "prediction", result.Prediction, "category", result.YieldCategory)
	return result, nil
}

// predict runs the model and advisory steps with panic capture: a failing
// collaborator surfaces as a PredictionError, never as a crash.
func (s *Service) predict(in Input) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PredictionError{Cause: fmt.Errorf("%v", r)}
		}
	}()

	yield, perr := s.model.Predict(in)
	if perr != nil {
		return Result{}, &PredictionError{Cause: perr}
	}

	// Internal precision is untouched; only the presented value is rounded.
	prediction := math.Round(yield*100) / 100

	soil := advisory.Soil{
		Nitrogen:   in.Nitrogen,
		Phosphorus: in.Phosphorus,
		Potassium:  in.Potassium,
		PH:         in.SoilPH,
	}
	wx := advisory.Weather{
		TemperatureC: in.TemperatureC,
		RainfallMM:   in.RainfallMM,
		HumidityPct:  in.HumidityPct,
	}

	return Result{
		Prediction:    prediction,
		YieldCategory: advisory.YieldCategory(prediction),
		Irrigation:    advisory.Irrigation(wx),
		CropCycle:     advisory.CropCycle(wx),
		SoilHealth:    advisory.SoilHealth(soil),
		WeatherRisks:  advisory.WeatherRisks(wx),
		FarmingTips:   advisory.FarmingTips(soil, wx),
	}, nil
}

// buildInput applies domain defaults for optional fields the payload
// omitted. Validation has already rejected present-but-invalid values.
func buildInput(out Outcome) Input {
	value := func(field string, def float64) float64 {
		if v, ok := out.Values[field]; ok {
			return v
		}
		return def
	}

	return Input{
		Region:       out.Region,
		Nitrogen:     value(FieldNitrogen, 0),
		Phosphorus:   value(FieldPhosphorus, 0),
		Potassium:    value(FieldPotassium, 0),
		SoilPH:       value(FieldSoilPH, DefaultSoilPH),
		TemperatureC: value(FieldTempC, DefaultTemperatureC),
		RainfallMM:   value(FieldRainfallMM, DefaultRainfallMM),
		HumidityPct:  value(FieldHumidity, DefaultHumidityPct),
		Year:         out.Year,
	}
}
