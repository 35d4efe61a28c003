// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package search

import (
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/xmg"
)

// Stats describes a run.
type Stats struct {
	// Runtime is the wall clock time of the run in seconds.
	Runtime float64 `yaml:"runtime"`
	// LastSize is the size of the network found or, without a network,
	// the last size probed.
	LastSize  int `yaml:"last_size"`
	LastDepth int `yaml:"last_depth"`
	// OptimumProved is true if no smaller network exists and, for
	// the depth objectives, no network of the same size and smaller
	// depth (SizeDepth) or of smaller depth (DepthSize).
	OptimumProved bool `yaml:"optimum_proved"`
	Solutions     int  `yaml:"solutions"`
	Probes        int  `yaml:"probes"`
	Timeouts      int  `yaml:"timeouts"`
	SolveCalls    int  `yaml:"solve_calls"`
	// SolveTime is the time spent in the backends in seconds.
	SolveTime float64 `yaml:"solve_time"`
	Vars      int     `yaml:"vars"`
	Clauses   int     `yaml:"clauses"`
}

// Add accumulates the work of o into s.
func (s *Stats) Add(o Stats) {
	s.Probes += o.Probes
	s.Timeouts += o.Timeouts
	s.SolveCalls += o.SolveCalls
	s.SolveTime += o.SolveTime
	s.Vars += o.Vars
	s.Clauses += o.Clauses
}

func (s *Stats) addBackend(o inter.Stats) {
	s.SolveCalls += o.Solves
	s.SolveTime += o.SolveTime.Seconds()
	s.Vars += o.Vars
	s.Clauses += o.Clauses
}

// Result is the outcome of a run or a probe.
type Result struct {
	// Network is the best network found, nil if there is none.
	Network *xmg.N `yaml:"network,omitempty"`
	// Solutions holds the enumerated networks of the optimum.
	Solutions []*xmg.N `yaml:"solutions,omitempty"`
	Stats     Stats    `yaml:"stats"`
}
