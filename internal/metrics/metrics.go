// Package metrics holds the Prometheus collectors for audit runs and the HTTP API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every scout metric.
const Namespace = "scout"

// Metrics holds all scout collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	TargetsTotal     *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	InsightsDegraded *prometheus.CounterVec
	RunsTotal        *prometheus.CounterVec
	RunsInFlight     prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers the collectors on reg, or on the default
// registerer when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TargetsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pipeline",
			Name:      "targets_total",
			Help:      "Targets processed, by final status",
		}, []string{"industry", "status"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Time spent in each pipeline stage",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}, []string{"stage"}),
		InsightsDegraded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "insight",
			Name:      "degraded_total",
			Help:      "Insights replaced by a degraded placeholder, by reason",
		}, []string{"reason"}),
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Audit jobs finished, by outcome",
		}, []string{"outcome"}),
		RunsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "jobs",
			Name:      "runs_in_flight",
			Help:      "Audit jobs currently running",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveTarget counts a finished target.
func (m *Metrics) ObserveTarget(industry, status string) {
	if m == nil {
		return
	}
	m.TargetsTotal.WithLabelValues(industry, status).Inc()
}

// ObserveStage records how long a stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveDegradedInsight counts a degraded insight.
func (m *Metrics) ObserveDegradedInsight(reason string) {
	if m == nil {
		return
	}
	m.InsightsDegraded.WithLabelValues(reason).Inc()
}

// RunStarted marks a job as running.
func (m *Metrics) RunStarted() {
	if m == nil {
		return
	}
	m.RunsInFlight.Inc()
}

// RunFinished marks a job as finished with outcome "done" or "error".
func (m *Metrics) RunFinished(outcome string) {
	if m == nil {
		return
	}
	m.RunsInFlight.Dec()
	m.RunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records a served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
