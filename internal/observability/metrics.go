// Package observability exposes the Prometheus collectors for the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesLogged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Subsystem: "activities",
		Name:      "logged_total",
		Help:      "Number of activities added to a session, by activity type.",
	}, []string{"type"})
	validationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Subsystem: "activities",
		Name:      "validation_failures_total",
		Help:      "Number of rejected activity submissions, by field.",
	}, []string{"field"})
	authAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "footprint",
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Login and registration attempts, by kind and outcome.",
	}, []string{"kind", "outcome"})
	activeSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "footprint",
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Number of live view sessions held in memory.",
	})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "footprint",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(activitiesLogged, validationFailures, authAttempts, activeSessions, requestDuration)
}

// RecordActivityLogged counts a successfully inserted activity.
func RecordActivityLogged(activityType string) {
	activitiesLogged.WithLabelValues(activityType).Inc()
}

// RecordValidationFailure counts a rejected submission.
func RecordValidationFailure(field string) {
	validationFailures.WithLabelValues(field).Inc()
}

// RecordAuthAttempt counts a login or registration.
func RecordAuthAttempt(kind string, ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	authAttempts.WithLabelValues(kind, outcome).Inc()
}

// SetActiveSessions updates the live session gauge.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// ActiveSessionsCollector exposes the live session gauge for assertions.
func ActiveSessionsCollector() prometheus.Collector {
	return activeSessions
}

// ObserveRequest records a finished HTTP request.
func ObserveRequest(route string, code int, elapsed time.Duration) {
	requestDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}
