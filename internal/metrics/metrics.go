package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the portal
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	LoginsTotal           *prometheus.CounterVec
	BookingsCreatedTotal  prometheus.Counter
	BookingStatusChanges  *prometheus.CounterVec
	BookingRevenueTotal   prometheus.Counter
	SessionsExpiredTotal  prometheus.Counter
	WizardStepTransitions *prometheus.CounterVec
}

// NewMetricsRegistry registers every metric on reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helo_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "helo_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "helo_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helo_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helo_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helo_logins_total",
				Help: "Login and registration attempts by outcome",
			},
			[]string{"kind", "outcome"},
		),
		BookingsCreatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "helo_bookings_created_total",
				Help: "Total bookings created",
			},
		),
		BookingStatusChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helo_booking_status_changes_total",
				Help: "Booking status transitions by target status",
			},
			[]string{"status"},
		),
		BookingRevenueTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "helo_booking_revenue_usd_total",
				Help: "Sum of quoted prices of created bookings",
			},
		),
		SessionsExpiredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "helo_sessions_expired_total",
				Help: "Sessions found expired on read",
			},
		),
		WizardStepTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "helo_wizard_step_transitions_total",
				Help: "Booking wizard step moves by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),
	}
}
