package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the conversion service.
type Metrics struct {
	ConversionTotal      *prometheus.CounterVec
	ConversionDurationMs *prometheus.HistogramVec
	ProviderDurationMs   *prometheus.HistogramVec
	TokensTotal          *prometheus.CounterVec
	ModelFallbackTotal   prometheus.Counter
	FilterActionTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates and registers all metrics on reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConversionTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tsconvert_conversion_total",
			Help: "Conversions handled, by model and outcome.",
		}, []string{"model", "provider", "outcome"}),

		ConversionDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tsconvert_conversion_duration_ms",
			Help:    "End-to-end conversion duration in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}, []string{"model", "provider"}),

		ProviderDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tsconvert_provider_duration_ms",
			Help:    "Completion provider round trip in milliseconds.",
			Buckets: []float64{250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}, []string{"provider"}),

		TokensTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tsconvert_tokens_total",
			Help: "Tokens reported by the completion provider.",
		}, []string{"model", "direction"}),

		ModelFallbackTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "tsconvert_model_fallback_total",
			Help: "Requests whose model was replaced by the default model.",
		}),

		FilterActionTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tsconvert_filter_action_total",
			Help: "Total filter actions taken.",
		}, []string{"filter", "action"}),
	}
}

// ConversionLabels holds the values recorded for one finished conversion.
type ConversionLabels struct {
	Model            string
	Provider         string
	Outcome          string
	DurationMs       float64
	ProviderMs       float64
	PromptTokens     int
	CompletionTokens int
}

// RecordConversion records metrics for a finished conversion, successful or not.
func (m *Metrics) RecordConversion(l ConversionLabels) {
	m.ConversionTotal.WithLabelValues(l.Model, l.Provider, l.Outcome).Inc()
	m.ConversionDurationMs.WithLabelValues(l.Model, l.Provider).Observe(l.DurationMs)

	if l.ProviderMs > 0 {
		m.ProviderDurationMs.WithLabelValues(l.Provider).Observe(l.ProviderMs)
	}
	if l.PromptTokens > 0 {
		m.TokensTotal.WithLabelValues(l.Model, "prompt").Add(float64(l.PromptTokens))
	}
	if l.CompletionTokens > 0 {
		m.TokensTotal.WithLabelValues(l.Model, "completion").Add(float64(l.CompletionTokens))
	}
}

// RecordModelFallback counts a request that was served by the default model.
func (m *Metrics) RecordModelFallback() {
	m.ModelFallbackTotal.Inc()
}

// RecordFilterAction records a filter action metric.
func (m *Metrics) RecordFilterAction(filter, action string) {
	m.FilterActionTotal.WithLabelValues(filter, action).Inc()
}
