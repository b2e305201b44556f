// Package metrics records scoring telemetry. The engine talks to a
// Recorder so the Prometheus-backed implementation can be swapped for a
// no-op one without touching scoring code.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unbound-force/clauserisk/internal/taxonomy"
)

// Recorder receives scoring events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	// ClauseScored records one scored clause.
	ClauseScored(cat taxonomy.Category, bucket taxonomy.Bucket, highRisk bool, elapsed time.Duration)

	// ContractScored records one aggregated contract.
	ContractScored(clauses int, normalizedScore float64, elapsed time.Duration)
}

const namespace = "clauserisk"

var durationBuckets = []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.25, 1}

// Prometheus is a Recorder backed by a private Prometheus registry.
type Prometheus struct {
	registry *prometheus.Registry

	clausesTotal     *prometheus.CounterVec
	highRiskTotal    *prometheus.CounterVec
	clauseDuration   prometheus.Histogram
	contractsTotal   prometheus.Counter
	contractDuration prometheus.Histogram
	normalizedScore  prometheus.Histogram
}

// NewPrometheus creates the collectors and registers them with reg. A
// nil reg gets a fresh registry.
func NewPrometheus(reg *prometheus.Registry) (*Prometheus, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	p := &Prometheus{registry: reg}

	p.clausesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clauses_scored_total",
		Help:      "Clauses scored, by canonical category and severity bucket.",
	}, []string{"category", "bucket"})

	p.highRiskTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "high_risk_clauses_total",
		Help:      "Clauses matching at least one high-risk pattern, by category.",
	}, []string{"category"})

	p.clauseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "clause_scoring_duration_seconds",
		Help:      "Time spent scoring a single clause.",
		Buckets:   durationBuckets,
	})

	p.contractsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contracts_scored_total",
		Help:      "Contracts aggregated.",
	})

	p.contractDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "contract_scoring_duration_seconds",
		Help:      "Time spent scoring and aggregating a whole contract.",
		Buckets:   durationBuckets,
	})

	p.normalizedScore = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "contract_normalized_score",
		Help:      "Normalized 0-100 contract risk scores.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	})

	for _, c := range []prometheus.Collector{
		p.clausesTotal, p.highRiskTotal, p.clauseDuration,
		p.contractsTotal, p.contractDuration, p.normalizedScore,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering metrics: %w", err)
		}
	}
	return p, nil
}

// ClauseScored implements Recorder.
func (p *Prometheus) ClauseScored(cat taxonomy.Category, bucket taxonomy.Bucket, highRisk bool, elapsed time.Duration) {
	p.clausesTotal.WithLabelValues(cat.Slug(), string(bucket)).Inc()
	if highRisk {
		p.highRiskTotal.WithLabelValues(cat.Slug()).Inc()
	}
	p.clauseDuration.Observe(elapsed.Seconds())
}

// ContractScored implements Recorder.
func (p *Prometheus) ContractScored(_ int, normalizedScore float64, elapsed time.Duration) {
	p.contractsTotal.Inc()
	p.contractDuration.Observe(elapsed.Seconds())
	p.normalizedScore.Observe(normalizedScore)
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile writes every collected metric to path in the text
// exposition format, for node_exporter's textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}

// Noop discards every event.
type Noop struct{}

// ClauseScored implements Recorder.
func (Noop) ClauseScored(taxonomy.Category, taxonomy.Bucket, bool, time.Duration) {}

// ContractScored implements Recorder.
func (Noop) ContractScored(int, float64, time.Duration) {}

var (
	_ Recorder = (*Prometheus)(nil)
	_ Recorder = Noop{}
)
