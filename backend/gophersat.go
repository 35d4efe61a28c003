// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/crillab/gophersat/solver"
	"github.com/go-air/gini/z"

	"github.com/go-air/exact/inter"
)

// Gophersat is a one-shot backend using github.com/crillab/gophersat.
// Clauses are recorded and every call to Solve solves a fresh problem
// made of the recorded clauses and the assumptions as unit clauses.
//
// A running solve cannot be interrupted: the context is only consulted
// before solving.
type Gophersat struct {
	*Recorder
	model bool
	stats inter.Stats
}

// NewGophersat creates a gophersat backend.
func NewGophersat(opts Options) *Gophersat {
	return &Gophersat{Recorder: NewRecorder(), model: true}
}

func (s *Gophersat) Name() string      { return KindGophersat }
func (s *Gophersat) Incremental() bool { return false }

func (s *Gophersat) SetModelGeneration(on bool) { s.model = on }

func (s *Gophersat) Stats() inter.Stats {
	st := s.stats
	st.Vars = int(s.MaxVar())
	st.Clauses = s.Len()
	return st
}

func (s *Gophersat) Solve(ctx context.Context, ms ...z.Lit) (mdl *inter.Model, err error) {
	if ctx.Err() != nil {
		s.stats.Record(0, 0)
		return nil, inter.ErrTimeout
	}
	defer func() {
		if r := recover(); r != nil {
			err = &inter.SolverError{Backend: KindGophersat, Err: fmt.Errorf("%v", r)}
		}
	}()
	start := time.Now()
	cnf := make([][]int, 0, s.Len()+len(ms))
	for _, c := range s.Clauses() {
		ds, ok := dimacsClause(c)
		if !ok {
			continue
		}
		cnf = append(cnf, ds)
	}
	for _, m := range ms {
		cnf = append(cnf, []int{m.Dimacs()})
	}
	gs := solver.New(solver.ParseSlice(cnf))
	st := gs.Solve()
	switch st {
	case solver.Sat:
		s.stats.Record(1, time.Since(start))
		if !s.model {
			return inter.NewModel(0), nil
		}
		vals := gs.Model()
		mdl := inter.NewModel(s.MaxVar())
		for i, b := range vals {
			if z.Var(i+1) > s.MaxVar() {
				break
			}
			mdl.Set(z.Var(i+1), b)
		}
		return mdl, nil
	case solver.Unsat:
		s.stats.Record(-1, time.Since(start))
		return nil, nil
	}
	s.stats.Record(0, time.Since(start))
	return nil, &inter.SolverError{Backend: KindGophersat, Err: fmt.Errorf("indeterminate status %v", st)}
}

// dimacsClause converts c, dropping repeated literals.  It returns false
// for tautologies.
func dimacsClause(c []z.Lit) ([]int, bool) {
	res := make([]int, 0, len(c))
	seen := make(map[z.Lit]bool, len(c))
	for _, m := range c {
		if seen[m.Not()] {
			return nil, false
		}
		if seen[m] {
			continue
		}
		seen[m] = true
		res = append(res, m.Dimacs())
	}
	return res, true
}
