package forecast

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field names accepted in a raw prediction payload.
const (
	FieldNitrogen   = "N"
	FieldPhosphorus = "P"
	FieldPotassium  = "K"
	FieldSoilPH     = "pH"
	FieldTempC      = "avg_temp_c"
	FieldRainfallMM = "total_rainfall_mm"
	FieldHumidity   = "avg_humidity_percent"
)

// requiredFields must be present in every payload; there is no sensible
// domain default for soil nutrient levels.
var requiredFields = []string{FieldNitrogen, FieldPhosphorus, FieldPotassium}

// optionalFields may be absent; the orchestrator substitutes domain
// defaults for missing ones. The validator only judges type and shape.
var optionalFields = []string{FieldSoilPH, FieldTempC, FieldRainfallMM, FieldHumidity}

// Input is a normalized parameter set ready for model consumption: all
// defaults applied, all fields coerced to float64.
type Input struct {
	Region       string
	Nitrogen     float64
	Phosphorus   float64
	Potassium    float64
	SoilPH       float64
	TemperatureC float64
	RainfallMM   float64
	HumidityPct  float64
	Year         *int
}

// Outcome is the result of validating a raw payload. When Accepted is
// false, Errors lists every problem found, not just the first.
type Outcome struct {
	Accepted bool
	Region   string
	Values   map[string]float64 // coerced values for fields present in the payload
	Year     *int
	Errors   []string
}

// ValidateInput checks a raw request payload against required-field and
// type rules. Numeric coercion failures are collected per field so a caller
// can display every problem at once. A field that is entirely absent (and
// optional) is not an error; supplying its default is the orchestrator's
// job, not the validator's.
//
// Soil pH is deliberately only type-checked, not range-checked: values
// outside [0,14] pass validation.
func ValidateInput(raw map[string]any) Outcome {
	out := Outcome{Values: make(map[string]float64)}

	region, ok := raw["region"].(string)
	region = strings.TrimSpace(region)
	if !ok || region == "" {
		out.Errors = append(out.Errors, "region is required")
	}
	out.Region = region

	for _, field := range requiredFields {
		v, present := raw[field]
		if !present {
			out.Errors = append(out.Errors, fmt.Sprintf("%s is required", field))
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s must be numeric", field))
			continue
		}
		out.Values[field] = f
	}

	for _, field := range optionalFields {
		v, present := raw[field]
		if !present {
			continue
		}
		f, err := toFloat(v)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s must be numeric", field))
			continue
		}
		out.Values[field] = f
	}

	if v, present := raw["year"]; present {
		year, err := toInt(v)
		if err != nil {
			out.Errors = append(out.Errors, "year must be an integer")
		} else {
			out.Year = &year
		}
	}

	out.Accepted = len(out.Errors) == 0
	return out
}

// toFloat coerces the loosely typed values a JSON payload can carry into a
// finite float64.
func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("not finite")
		}
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case json.Number:
		return toFloat(t.String())
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("not numeric: %q", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

// toInt accepts any integer-representable value: integers, whole floats,
// and decimal strings.
func toInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("not an integer: %v", t)
		}
		return int(t), nil
	case json.Number:
		return toInt(t.String())
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
