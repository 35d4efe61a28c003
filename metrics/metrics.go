// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package metrics holds the prometheus collectors of exact synthesis.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	BasisLabel   = "basis"
	BackendLabel = "backend"
	ResultLabel  = "result"
	Outcome      = "outcome"

	Sat     = "sat"
	Unsat   = "unsat"
	Timeout = "timeout"

	Proved   = "proved"
	Unproved = "unproved"
	Failed   = "failed"
)

var (
	probeCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exact_probes_total",
			Help: "Monotonic count of size and depth probes by result",
		},
		[]string{BasisLabel, ResultLabel},
	)

	solveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exact_solve_duration_seconds",
			Help:    "The duration of a single SAT solver call",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{BackendLabel},
	)

	synthesisSummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "exact_synthesis_duration_seconds",
			Help:       "The duration of a synthesis run",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{Outcome},
	)

	lastSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "exact_last_size",
			Help: "Size of the network found by the last synthesis run",
		},
		[]string{BasisLabel},
	)

	solutionCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "exact_solutions_total",
			Help: "Monotonic count of enumerated optimum networks",
		},
	)
)

// RegisterExact registers the collectors with the default registry.
func RegisterExact() {
	prometheus.MustRegister(probeCount)
	prometheus.MustRegister(solveDuration)
	prometheus.MustRegister(synthesisSummary)
	prometheus.MustRegister(lastSize)
	prometheus.MustRegister(solutionCount)
}

// Register registers the collectors with reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{probeCount, solveDuration, synthesisSummary, lastSize, solutionCount} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveProbe counts a probe with result Sat, Unsat or Timeout.
func ObserveProbe(basis, result string) {
	probeCount.WithLabelValues(basis, result).Inc()
}

// ObserveSolve records the duration of one solver call.
func ObserveSolve(backend string, d time.Duration) {
	solveDuration.WithLabelValues(backend).Observe(d.Seconds())
}

// ObserveSynthesis records a finished run with outcome Proved, Unproved,
// Timeout or Failed.
func ObserveSynthesis(outcome string, d time.Duration) {
	synthesisSummary.WithLabelValues(outcome).Observe(d.Seconds())
}

// SetLastSize sets the size of the last network found in basis.
func SetLastSize(basis string, size int) {
	lastSize.WithLabelValues(basis).Set(float64(size))
}

// AddSolutions counts n enumerated networks.
func AddSolutions(n int) {
	solutionCount.Add(float64(n))
}
