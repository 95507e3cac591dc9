package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hireloop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hireloop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "hireloop",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Entitlement metrics
	entitlementChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hireloop",
			Subsystem: "entitlement",
			Name:      "checks_total",
			Help:      "Total number of entitlement decisions by outcome",
		},
		[]string{"resource", "outcome"},
	)

	// Billing metrics
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hireloop",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Total number of billing webhook deliveries by type and result",
		},
		[]string{"type", "result"},
	)

	checkoutSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hireloop",
			Subsystem: "billing",
			Name:      "checkout_sessions_total",
			Help:      "Total number of checkout sessions created",
		},
		[]string{"plan", "status"},
	)

	subscriptionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hireloop",
			Subsystem: "billing",
			Name:      "subscription_transitions_total",
			Help:      "Total number of subscription status changes applied",
		},
		[]string{"status"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hireloop",
			Subsystem: "billing",
			Name:      "provider_call_duration_seconds",
			Help:      "Duration of billing provider API calls in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Team metrics
	invitationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hireloop",
			Subsystem: "team",
			Name:      "invitations_total",
			Help:      "Total number of team invitation events",
		},
		[]string{"event"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hireloop",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEntitlementCheck records one entitlement decision
func RecordEntitlementCheck(resource, outcome string) {
	entitlementChecksTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordWebhookEvent records a billing webhook delivery
func RecordWebhookEvent(eventType, result string) {
	webhookEventsTotal.WithLabelValues(eventType, result).Inc()
}

// RecordCheckoutSession records a checkout session attempt
func RecordCheckoutSession(planID, status string) {
	checkoutSessionsTotal.WithLabelValues(planID, status).Inc()
}

// RecordSubscriptionTransition records a subscription status write
func RecordSubscriptionTransition(status string) {
	subscriptionTransitionsTotal.WithLabelValues(status).Inc()
}

// RecordProviderCall records the duration of a billing provider call
func RecordProviderCall(operation string, duration time.Duration) {
	providerCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordInvitation records a team invitation event
func RecordInvitation(event string) {
	invitationsTotal.WithLabelValues(event).Inc()
}

// RecordInvitations records n invitation events at once
func RecordInvitations(event string, n int64) {
	invitationsTotal.WithLabelValues(event).Add(float64(n))
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
