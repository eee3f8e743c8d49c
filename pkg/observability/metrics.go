package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/devconsole/pkg/domain"
)

// Metrics records line and node counters for a console.
type Metrics struct {
	Lines        *prometheus.CounterVec
	LineDuration *prometheus.HistogramVec
	NodeRuns     *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Lines: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devconsole_lines_total",
				Help: "Total number of evaluated lines by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		LineDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devconsole_line_duration_seconds",
				Help:    "Duration of line evaluations",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"command"},
		),
		NodeRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devconsole_node_runs_total",
				Help: "Total number of node runs by command and node kind",
			},
			[]string{"command", "kind"},
		),
	}
	var err error
	if m.Lines, err = register(reg, m.Lines); err != nil {
		return nil, err
	}
	if m.LineDuration, err = register(reg, m.LineDuration); err != nil {
		return nil, err
	}
	if m.NodeRuns, err = register(reg, m.NodeRuns); err != nil {
		return nil, err
	}
	return m, nil
}

// register returns the collector already registered under the same
// descriptor, if any, so several consoles can share a registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Hooks returns the lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeRun: func(_ context.Context, e *domain.StepEvent) {
			m.NodeRuns.WithLabelValues(e.Command, e.NodeKind.String()).Inc()
		},
		OnLineEnd: func(_ context.Context, e *domain.LineEvent) {
			m.Lines.WithLabelValues(e.Command, Outcome(e)).Inc()
			m.LineDuration.WithLabelValues(e.Command).Observe(e.Duration.Seconds())
		},
	}
}

// Outcome labels a finished line: the result outcome on success, the error
// kind on failure.
func Outcome(e *domain.LineEvent) string {
	if e.Err != nil {
		return domain.ErrorKind(e.Err)
	}
	return string(e.Outcome)
}
