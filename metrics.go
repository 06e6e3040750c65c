// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vsim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects kernel statistics. A nil *Metrics is valid and collects
// nothing.
//
type Metrics struct {
	steps     prometheus.Counter
	iter      *prometheus.CounterVec
	loops     *prometheus.HistogramVec
	resumes   prometheus.Counter
	failures  *prometheus.CounterVec
	processes prometheus.Gauge
}

// NewMetrics creates kernel metrics and registers them with reg. If reg is
// nil, the metrics are created but not registered.
//
// Several models may share the same Metrics.
//
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		steps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vsim",
			Name:      "eval_steps_total",
			Help:      "Number of completed evaluation steps.",
		}),
		iter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vsim",
			Name:      "region_iterations_total",
			Help:      "Number of convergence loop iterations per region.",
		}, []string{"region"}),
		loops: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vsim",
			Name:      "region_loop_iterations",
			Help:      "Iterations needed by a region to converge.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55, 100},
		}, []string{"region"}),
		resumes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vsim",
			Name:      "process_resumes_total",
			Help:      "Number of times a suspendable process was resumed.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vsim",
			Name:      "convergence_failures_total",
			Help:      "Number of regions that failed to converge.",
		}, []string{"region"}),
		processes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vsim",
			Name:      "suspended_processes",
			Help:      "Number of processes waiting in the delay scheduler.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.steps, m.iter, m.loops, m.resumes, m.failures, m.processes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) stepEvaluated(pending int) {
	if m == nil {
		return
	}
	m.steps.Inc()
	m.processes.Set(float64(pending))
}

func (m *Metrics) loopDone(region string, n int) {
	if m == nil {
		return
	}
	m.iter.WithLabelValues(region).Add(float64(n))
	m.loops.WithLabelValues(region).Observe(float64(n))
}

func (m *Metrics) processResumed() {
	if m == nil {
		return
	}
	m.resumes.Inc()
}

func (m *Metrics) diverged(region string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(region).Inc()
}
