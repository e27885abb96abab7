// Package model loads and scores the trained yield regression. The model
// is trained offline; this package only evaluates the exported artifact.
package model

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/agroyield/agri-yield-forecast/internal/forecast"
)

//go:embed artifacts/model.json
var artifact []byte

// Handle is an immutable reference to a loaded model. A nil *Handle models
// "no model loaded"; there is no separate loaded flag.
type Handle struct {
	kind      string
	features  []string
	coefs     map[string]float64
	intercept float64
}

// Info describes the loaded model for the model-info endpoint.
type Info struct {
	Type     string   `json:"model_type"`
	Features []string `json:"features"`
}

// Load parses the embedded model artifact and returns a handle to it.
func Load() (*Handle, error) {
	var doc struct {
		ModelType    string             `json:"model_type"`
		Intercept    float64            `json:"intercept"`
		Features     []string           `json:"features"`
		Coefficients map[string]float64 `json:"coefficients"`
	}
	if err := json.Unmarshal(artifact, &doc); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	if doc.ModelType == "" || len(doc.Features) == 0 {
		return nil, fmt.Errorf("model artifact is incomplete")
	}
	for _, f := range doc.Features {
		if _, ok := doc.Coefficients[f]; !ok {
			return nil, fmt.Errorf("model artifact missing coefficient for %q", f)
		}
	}

	return &Handle{
		kind:      doc.ModelType,
		features:  doc.Features,
		coefs:     doc.Coefficients,
		intercept: doc.Intercept,
	}, nil
}

// Predict scores a normalized input. Deterministic: identical input always
// produces the identical estimate for a given handle.
func (h *Handle) Predict(in forecast.Input) (float64, error) {
	values := map[string]float64{
		forecast.FieldNitrogen:   in.Nitrogen,
		forecast.FieldPhosphorus: in.Phosphorus,
		forecast.FieldPotassium:  in.Potassium,
		forecast.FieldSoilPH:     in.SoilPH,
		forecast.FieldTempC:      in.TemperatureC,
		forecast.FieldRainfallMM: in.RainfallMM,
		forecast.FieldHumidity:   in.HumidityPct,
	}

	yield := h.intercept
	for _, f := range h.features {
		v, ok := values[f]
		if !ok {
			return 0, fmt.Errorf("model feature %q not present in input", f)
		}
		yield += h.coefs[f] * v
	}

	// A regression can extrapolate below zero on poor inputs; a negative
	// yield is not meaningful.
	if yield < 0 {
		yield = 0
	}
	return yield, nil
}

// Info returns model metadata. Feature order matches the training artifact.
func (h *Handle) Info() Info {
	features := make([]string, len(h.features))
	copy(features, h.features)
	return Info{
		Type:     h.kind,
		Features: features,
	}
}
