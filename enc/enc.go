// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package enc codes networks in conjunctive normal form.
//
// Network codes a fixed network, gate by gate, with optional blocking
// literals which switch the clauses of each gate on and off.
//
// NewCandidate codes a parametric network of k gate slots whose kinds,
// operands and complemented edges are chosen by the solver, so that a
// model of the clauses describes a network.  Clauses constraining the
// function, the depth and the size of the network are added separately so
// that one candidate can serve several probes under assumptions.
package enc

import (
	ginter "github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"
)

// LitAdder is the destination of an encoding: it gives fresh variables
// and accepts z.LitNull terminated clauses.
type LitAdder interface {
	ginter.Liter
	ginter.Adder
}

// clause adds the literals of ms which are not z.LitNull as a clause.
func clause(dst ginter.Adder, ms ...z.Lit) {
	for _, m := range ms {
		if m != z.LitNull {
			dst.Add(m)
		}
	}
	dst.Add(z.LitNull)
}

// not is z.Lit.Not, preserving z.LitNull.
func not(m z.Lit) z.Lit {
	if m == z.LitNull {
		return m
	}
	return m.Not()
}

// The Tseitin codings below define g from a, b (and c) under the guard
// literal u: every clause contains u, so g is only constrained when u is
// false.  A z.LitNull guard constrains g unconditionally.

func addAnd(dst ginter.Adder, u, g, a, b z.Lit) {
	clause(dst, u, g.Not(), a)
	clause(dst, u, g.Not(), b)
	clause(dst, u, g, a.Not(), b.Not())
}

func addXor(dst ginter.Adder, u, g, a, b z.Lit) {
	clause(dst, u, g.Not(), a, b)
	clause(dst, u, g.Not(), a.Not(), b.Not())
	clause(dst, u, g, a.Not(), b)
	clause(dst, u, g, a, b.Not())
}

func addMaj(dst ginter.Adder, u, g, a, b, c z.Lit) {
	clause(dst, u, g, a.Not(), b.Not())
	clause(dst, u, g, a.Not(), c.Not())
	clause(dst, u, g, b.Not(), c.Not())
	clause(dst, u, g.Not(), a, b)
	clause(dst, u, g.Not(), a, c)
	clause(dst, u, g.Not(), b, c)
}

// addEquiv codes g == a under u.
func addEquiv(dst ginter.Adder, u, g, a z.Lit) {
	clause(dst, u, g.Not(), a)
	clause(dst, u, g, a.Not())
}
