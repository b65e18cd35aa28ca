// Package metrics holds the prometheus collectors for HTTP traffic and the
// invitation workflow.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "weddinghub",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "weddinghub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	invitationsPublished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "invitations",
			Name:      "published_total",
			Help:      "Total number of publish operations.",
		},
	)

	invitationViews = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "invitations",
			Name:      "public_views_total",
			Help:      "Total number of public invitation fetches.",
		},
	)

	slugFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "invitations",
			Name:      "slug_fallbacks_total",
			Help:      "Slug allocations that exhausted random attempts.",
		},
	)

	rsvpSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "rsvp",
			Name:      "submissions_total",
			Help:      "RSVP submissions by outcome.",
		},
		[]string{"outcome"},
	)

	guestbookEntries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "guestbook",
			Name:      "entries_total",
			Help:      "Total number of guestbook entries written.",
		},
	)

	paymentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "weddinghub",
			Subsystem: "payments",
			Name:      "transitions_total",
			Help:      "Payment status changes by target status.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		invitationsPublished,
		invitationViews,
		slugFallbacks,
		rsvpSubmissions,
		guestbookEntries,
		paymentTransitions,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func IncInFlight() { httpInFlight.Inc() }
func DecInFlight() { httpInFlight.Dec() }

// RecordHTTPRequest records one finished request. route is the matched route
// template so ids and slugs do not explode label cardinality.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordPublish()      { invitationsPublished.Inc() }
func RecordPublicView()   { invitationViews.Inc() }
func RecordSlugFallback() { slugFallbacks.Inc() }

// RecordRSVP counts a reconciled submission as created or updated.
func RecordRSVP(created bool) {
	outcome := "updated"
	if created {
		outcome = "created"
	}
	rsvpSubmissions.WithLabelValues(outcome).Inc()
}

func RecordGuestbookEntry() { guestbookEntries.Inc() }

func RecordPaymentTransition(status string) {
	paymentTransitions.WithLabelValues(status).Inc()
}
