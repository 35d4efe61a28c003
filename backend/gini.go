// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package backend

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/go-air/exact/inter"
)

// Gini is an incremental backend using github.com/go-air/gini.
type Gini struct {
	g       *gini.Gini
	model   bool
	poll    time.Duration
	clauses int
	stats   inter.Stats
}

// NewGini creates a gini backend.
func NewGini(opts Options) *Gini {
	return &Gini{g: gini.New(), model: true, poll: opts.poll()}
}

func (s *Gini) Name() string      { return KindGini }
func (s *Gini) Incremental() bool { return true }

func (s *Gini) SetModelGeneration(on bool) { s.model = on }

func (s *Gini) Lit() z.Lit { return s.g.Lit() }

func (s *Gini) MaxVar() z.Var { return s.g.MaxVar() }

func (s *Gini) Add(m z.Lit) {
	if m == z.LitNull {
		s.clauses++
	}
	s.g.Add(m)
}

// Write writes the clauses of s in DIMACS format.
func (s *Gini) Write(w io.Writer) error {
	return s.g.Write(w)
}

func (s *Gini) Stats() inter.Stats {
	st := s.stats
	st.Vars = int(s.g.MaxVar())
	st.Clauses = s.clauses
	return st
}

func (s *Gini) Solve(ctx context.Context, ms ...z.Lit) (mdl *inter.Model, err error) {
	if ctx.Err() != nil {
		s.stats.Record(0, 0)
		return nil, inter.ErrTimeout
	}
	defer func() {
		if r := recover(); r != nil {
			err = &inter.SolverError{Backend: KindGini, Err: fmt.Errorf("%v", r)}
		}
	}()
	start := time.Now()
	s.g.Assume(ms...)
	var res int
	if dl, ok := ctx.Deadline(); ok {
		res = s.g.Try(time.Until(dl))
	} else if ctx.Done() != nil {
		res = s.watch(ctx)
	} else {
		res = s.g.Solve()
	}
	s.stats.Record(res, time.Since(start))
	switch res {
	case 1:
		return s.extract(), nil
	case -1:
		return nil, nil
	}
	return nil, inter.ErrTimeout
}

// watch solves in the background until done or ctx is cancelled.
func (s *Gini) watch(ctx context.Context) int {
	gs := s.g.GoSolve()
	t := time.NewTicker(s.poll)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return gs.Stop()
		case <-t.C:
			if r, done := gs.Test(); done {
				return r
			}
		}
	}
}

func (s *Gini) extract() *inter.Model {
	if !s.model {
		return inter.NewModel(0)
	}
	max := s.g.MaxVar()
	mdl := inter.NewModel(max)
	for v := z.Var(1); v <= max; v++ {
		mdl.Set(v, s.g.Value(v.Pos()))
	}
	return mdl
}
