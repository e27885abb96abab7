package forecast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelUnavailable is returned when no forecasting model is loaded.
// The request is not retried; the caller should surface a 503.
var ErrModelUnavailable = errors.New("model not loaded")

// InvalidInputError carries every field error found in a rejected payload.
type InvalidInputError struct {
	Errors []string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + strings.Join(e.Errors, "; ")
}

// PredictionError wraps a model or advisory failure. The pipeline never
// propagates these as panics; they are reported with the underlying message.
type PredictionError struct {
	Cause error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed: %v", e.Cause)
}

func (e *PredictionError) Unwrap() error {
	return e.Cause
}
