// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package backend

import (
	"io"

	"github.com/go-air/gini/z"

	"github.com/go-air/exact/dimacs"
)

// Recorder records clauses added to it and allocates variables.  It
// implements gini's inter.Adder, inter.Liter and inter.MaxVar.
type Recorder struct {
	max     z.Var
	cur     []z.Lit
	clauses [][]z.Lit
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Lit returns the positive literal of a fresh variable.
func (r *Recorder) Lit() z.Lit {
	r.max++
	return r.max.Pos()
}

// MaxVar returns the maximal variable allocated or added.
func (r *Recorder) MaxVar() z.Var {
	return r.max
}

// Add adds m to the current clause, or ends the clause if m is z.LitNull.
func (r *Recorder) Add(m z.Lit) {
	if m == z.LitNull {
		c := make([]z.Lit, len(r.cur))
		copy(c, r.cur)
		r.clauses = append(r.clauses, c)
		r.cur = r.cur[:0]
		return
	}
	if v := m.Var(); v > r.max {
		r.max = v
	}
	r.cur = append(r.cur, m)
}

// Clauses returns the recorded clauses.  The result is shared with r.
func (r *Recorder) Clauses() [][]z.Lit {
	return r.clauses
}

// Len returns the number of recorded clauses.
func (r *Recorder) Len() int {
	return len(r.clauses)
}

// WriteCnf writes the recorded clauses in DIMACS format.
func (r *Recorder) WriteCnf(w io.Writer, comments ...string) error {
	return dimacs.WriteCnf(w, r.max, r.clauses, comments...)
}

// WriteICnf writes the recorded clauses followed by the assumptions ms in
// the incremental DIMACS format.
func (r *Recorder) WriteICnf(w io.Writer, ms ...z.Lit) error {
	if len(ms) == 0 {
		return dimacs.WriteICnf(w, r.clauses)
	}
	return dimacs.WriteICnf(w, r.clauses, ms)
}

// Replay adds all recorded clauses to dst.
func (r *Recorder) Replay(dst interface{ Add(z.Lit) }) {
	for _, c := range r.clauses {
		for _, m := range c {
			dst.Add(m)
		}
		dst.Add(z.LitNull)
	}
}
