package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast service.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // labels: outcome={success,invalid_input,model_unavailable,prediction_failure}
	PredictionDuration prometheus.Histogram
	ModelLoaded        prometheus.Gauge

	WeatherResolutions *prometheus.CounterVec // labels: source={live,simulated}
	LiveFallbacks      prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_yield",
			Name:      "predictions_total",
			Help:      "Forecast requests by outcome.",
		}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agri_yield",
			Name:      "prediction_duration_seconds",
			Help:      "Duration of a complete validate-predict-advise cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agri_yield",
			Name:      "model_loaded",
			Help:      "1 when a forecasting model is loaded, 0 otherwise.",
		}),
		WeatherResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_yield",
			Name:      "weather_resolutions_total",
			Help:      "Weather observations produced, by source.",
		}, []string{"source"}),
		LiveFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_yield",
			Name:      "weather_live_fallbacks_total",
			Help:      "Live weather resolutions that degraded to the simulated source.",
		}),
	}

	prometheus.MustRegister(
		m.PredictionsTotal,
		m.PredictionDuration,
		m.ModelLoaded,
		m.WeatherResolutions,
		m.LiveFallbacks,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		PredictionsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_yield", Name: "predictions_total"}, []string{"outcome"}),
		PredictionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "agri_yield", Name: "prediction_duration_seconds"}),
		ModelLoaded:        prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "agri_yield", Name: "model_loaded"}),
		WeatherResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_yield", Name: "weather_resolutions_total"}, []string{"source"}),
		LiveFallbacks:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_yield", Name: "weather_live_fallbacks_total"}),
	}
}
