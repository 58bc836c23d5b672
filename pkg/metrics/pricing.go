package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records quote activity for the preview API.
type PricingMetrics struct {
	duration *prometheus.HistogramVec
	quotes   *prometheus.CounterVec
	applied  *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_duration_seconds",
		Help:    "Duration of price quote computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"target_kind"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_total",
		Help: "Price quotes served, by target kind and outcome.",
	}, []string{"target_kind", "outcome"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promotions_applied_total",
		Help: "Promotion rules applied to served quotes.",
	}, []string{"promotion_type"})
	reg.MustRegister(duration, quotes, applied)
	return &PricingMetrics{
		duration: duration,
		quotes:   quotes,
		applied:  applied,
	}
}

// ObserveQuoteDuration records how long one quote took.
func (m *PricingMetrics) ObserveQuoteDuration(targetKind string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(targetKind)).Observe(duration.Seconds())
}

// IncQuote counts a served quote with its outcome ("ok" or "error").
func (m *PricingMetrics) IncQuote(targetKind, outcome string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(targetKind), normalizeLabel(outcome)).Inc()
}

// IncPromotionApplied counts a promotion rule landing on a quote.
func (m *PricingMetrics) IncPromotionApplied(promotionType string) {
	if m == nil || m.applied == nil {
		return
	}
	m.applied.WithLabelValues(normalizeLabel(promotionType)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
