// Package metrics exposes store and notification activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Recorder receives store and feed events.
type Recorder interface {
	IncMutation(op string)
	ObservePersistence(duration time.Duration, err error)
	IncNotification(kind string)
	SetSubscriptions(count int, monthlyBurn float64)
}

// Provider records metrics into its own registry.
type Provider struct {
	registry            *prometheus.Registry
	mutationsTotal      *prometheus.CounterVec
	persistenceTotal    *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	notificationsTotal  *prometheus.CounterVec
	subscriptions       prometheus.Gauge
	monthlyBurn         prometheus.Gauge
}

var _ Recorder = (*Provider)(nil)

// New creates a provider with a private registry.
func New() *Provider {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Provider{
		registry: reg,
		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unroll_mutations_total",
			Help: "Total number of record store mutations",
		}, []string{"op"}),

		persistenceTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unroll_persistence_writes_total",
			Help: "Total number of snapshot writes by result",
		}, []string{"result"}),

		persistenceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "unroll_persistence_duration_seconds",
			Help:    "Duration of snapshot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		notificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unroll_notifications_total",
			Help: "Total number of notifications pushed",
		}, []string{"kind"}),

		subscriptions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "unroll_subscriptions",
			Help: "Current number of subscriptions",
		}),

		monthlyBurn: factory.NewGauge(prometheus.GaugeOpts{
			Name: "unroll_monthly_burn_usd",
			Help: "Current monthly burn in base currency",
		}),
	}
}

func (p *Provider) IncMutation(op string) {
	p.mutationsTotal.WithLabelValues(op).Inc()
}

func (p *Provider) ObservePersistence(duration time.Duration, err error) {
	p.persistenceDuration.Observe(duration.Seconds())
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.persistenceTotal.WithLabelValues(result).Inc()
}

func (p *Provider) IncNotification(kind string) {
	p.notificationsTotal.WithLabelValues(kind).Inc()
}

func (p *Provider) SetSubscriptions(count int, monthlyBurn float64) {
	p.subscriptions.Set(float64(count))
	p.monthlyBurn.Set(monthlyBurn)
}

// Registry exposes the underlying registry for gathering.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (p *Provider) WriteText(w io.Writer) error {
	families, err := p.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Noop returns a recorder that discards everything.
func Noop() Recorder {
	return noopMetrics{}
}

// noopMetrics is a no-op implementation for when metrics are not wanted.
type noopMetrics struct{}

func (noopMetrics) IncMutation(_ string)                        {}
func (noopMetrics) ObservePersistence(_ time.Duration, _ error) {}
func (noopMetrics) IncNotification(_ string)                    {}
func (noopMetrics) SetSubscriptions(_ int, _ float64)           {}
