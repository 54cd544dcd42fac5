// Package metrics records service counters for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is implemented by the Prometheus recorder and by Nop.
type Recorder interface {
	RecordCalculation(category string, kg float64)
	RecordReset()
	RecordPersistenceFailure(operation string)
	RecordReport(format, status string)
	RecordNotification(channel, status string)
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// Prometheus is a Recorder backed by a prometheus registry.
type Prometheus struct {
	registry            *prometheus.Registry
	calculationsTotal   *prometheus.CounterVec
	emissionsKgTotal    *prometheus.CounterVec
	resetsTotal         prometheus.Counter
	persistenceFailures *prometheus.CounterVec
	reportsTotal        *prometheus.CounterVec
	notificationsTotal  *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// NewPrometheus registers the service collectors, plus the Go and process
// collectors, on a fresh registry.
func NewPrometheus() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		calculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbontrack_calculations_total",
				Help: "Total number of emission calculations submitted",
			},
			[]string{"category"},
		),
		emissionsKgTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbontrack_emissions_kg_total",
				Help: "Total kg CO2e added by calculations",
			},
			[]string{"category"},
		),
		resetsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "carbontrack_resets_total",
				Help: "Total number of ledger resets",
			},
		),
		persistenceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbontrack_persistence_failures_total",
				Help: "Total number of failed persistence calls",
			},
			[]string{"operation"},
		),
		reportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbontrack_reports_total",
				Help: "Total number of reports rendered",
			},
			[]string{"format", "status"},
		),
		notificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carbontrack_notifications_total",
				Help: "Total number of report notifications dispatched",
			},
			[]string{"channel", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carbontrack_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) RecordCalculation(category string, kg float64) {
	p.calculationsTotal.WithLabelValues(category).Inc()
	if kg > 0 {
		p.emissionsKgTotal.WithLabelValues(category).Add(kg)
	}
}

func (p *Prometheus) RecordReset() {
	p.resetsTotal.Inc()
}

func (p *Prometheus) RecordPersistenceFailure(operation string) {
	p.persistenceFailures.WithLabelValues(operation).Inc()
}

func (p *Prometheus) RecordReport(format, status string) {
	p.reportsTotal.WithLabelValues(format, status).Inc()
}

func (p *Prometheus) RecordNotification(channel, status string) {
	p.notificationsTotal.WithLabelValues(channel, status).Inc()
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, duration time.Duration) {
	p.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordCalculation(string, float64)              {}
func (Nop) RecordReset()                                   {}
func (Nop) RecordPersistenceFailure(string)                {}
func (Nop) RecordReport(string, string)                    {}
func (Nop) RecordNotification(string, string)              {}
func (Nop) ObserveHTTP(string, string, int, time.Duration) {}
