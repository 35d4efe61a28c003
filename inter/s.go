// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package inter

import (
	"context"
	"fmt"
	"time"

	ginter "github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
)

// ErrTimeout is returned by Solve when the context expires before the
// backend reaches a verdict.
var ErrTimeout = errors.New("solve timed out")

// SolverError wraps a fault of the underlying solver.  It is not
// recoverable by retrying.
type SolverError struct {
	Backend string
	Err     error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s: solver error: %v", e.Backend, e.Err)
}

// Cause implements the causer of github.com/pkg/errors.
func (e *SolverError) Cause() error { return e.Err }

// Unwrap implements the wrapper of the standard errors package.
func (e *SolverError) Unwrap() error { return e.Err }

// Backend encapsulates an incremental or one-shot SAT solver to which
// clauses are added as sequences of z.LitNull-terminated literals, as in
// github.com/go-air/gini/inter.Adder.
//
// A Backend also generates fresh variables and is hence usable wherever
// gini's logic.LitAdder is, e.g. to code cardinality constraints.
type Backend interface {
	ginter.MaxVar
	ginter.Liter
	ginter.Adder

	// Solve decides the clauses added so far under the assumptions ms.
	// It returns a nil model and nil error if the clauses are
	// unsatisfiable under ms.  If ctx expires first, the error is
	// ErrTimeout.  Faults of the solver are returned as *SolverError.
	//
	// Assumptions hold only for the one call.
	Solve(ctx context.Context, ms ...z.Lit) (*Model, error)

	// SetModelGeneration controls whether Solve extracts models.  With
	// model generation off, a satisfiable Solve returns an empty model.
	SetModelGeneration(on bool)

	// Incremental reports whether successive calls to Solve share
	// learnt state.
	Incremental() bool

	// Name is the name the backend was selected by.
	Name() string

	// Stats returns the statistics accumulated over all calls.
	Stats() Stats
}

// Stats records the work done by a Backend.
type Stats struct {
	Vars      int
	Clauses   int
	Solves    int
	Sat       int
	Unsat     int
	Timeouts  int
	SolveTime time.Duration
}

// Add accumulates o into s.  Vars and Clauses are summed, as different
// backends have different variables.
func (s *Stats) Add(o Stats) {
	s.Vars += o.Vars
	s.Clauses += o.Clauses
	s.Solves += o.Solves
	s.Sat += o.Sat
	s.Unsat += o.Unsat
	s.Timeouts += o.Timeouts
	s.SolveTime += o.SolveTime
}

// Record updates s after a call to Solve which took d, with result
// 1 (sat), -1 (unsat) or 0 (timeout).
func (s *Stats) Record(res int, d time.Duration) {
	s.Solves++
	s.SolveTime += d
	switch res {
	case 1:
		s.Sat++
	case -1:
		s.Unsat++
	default:
		s.Timeouts++
	}
}

// Clause adds the clause ms to dst followed by the terminating z.LitNull.
func Clause(dst ginter.Adder, ms ...z.Lit) {
	for _, m := range ms {
		dst.Add(m)
	}
	dst.Add(z.LitNull)
}
