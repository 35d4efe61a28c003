// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"fmt"

	"github.com/go-air/gini/z"

	"github.com/go-air/exact/xmg"
)

// Options control the coding of a fixed network.
type Options struct {
	// BlockingVars guards the clauses of every gate by a fresh literal,
	// so that a gate only constrains its output when its blocking
	// literal is true.
	BlockingVars bool
}

// Enc is the result of coding a fixed network.
type Enc struct {
	// Vars gives the literal of every node of the network reachable
	// from the outputs, indexed by node, z.LitNull elsewhere.
	Vars []z.Lit
	// Blocking gives the blocking literal of every coded gate, if
	// requested.
	Blocking []z.Lit
	// Outs gives the literal of every output.
	Outs []z.Lit
}

// Lit returns the literal of m.
func (e *Enc) Lit(m xmg.Lit) z.Lit {
	v := e.Vars[m.Node()]
	if v == z.LitNull {
		panic(fmt.Sprintf("node %d not coded", m.Node()))
	}
	if m.IsNeg() {
		return v.Not()
	}
	return v
}

// Network codes the part of p reachable from its outputs in dst, binding
// the inputs of p to ins.  Nodes are visited in post order from the
// outputs in order, so coding the same network twice into fresh
// destinations gives the same numbering.
func Network(dst LitAdder, p *xmg.N, ins []z.Lit, opts Options) *Enc {
	if len(ins) != p.NumInputs() {
		panic(fmt.Sprintf("%d input literals for %d inputs", len(ins), p.NumInputs()))
	}
	e := &Enc{Vars: make([]z.Lit, p.Len())}
	if opts.BlockingVars {
		e.Blocking = make([]z.Lit, p.Len())
	}
	p.PostOrder(func(id int) {
		m := xmg.NodeLit(id)
		switch p.Kind(m) {
		case xmg.KConst:
			f := dst.Lit()
			clause(dst, f.Not())
			e.Vars[id] = f
			return
		case xmg.KInput:
			e.Vars[id] = ins[p.InputIndex(m)]
			return
		}
		g := dst.Lit()
		u := z.LitNull
		if opts.BlockingVars {
			b := dst.Lit()
			e.Blocking[id] = b
			u = b.Not()
		}
		ms := p.Ins(m)
		switch p.Kind(m) {
		case xmg.KMaj:
			addMaj(dst, u, g, e.Lit(ms[0]), e.Lit(ms[1]), e.Lit(ms[2]))
		case xmg.KXor:
			addXor(dst, u, g, e.Lit(ms[0]), e.Lit(ms[1]))
		case xmg.KAnd:
			addAnd(dst, u, g, e.Lit(ms[0]), e.Lit(ms[1]))
		}
		e.Vars[id] = g
	}, p.Outputs()...)
	e.Outs = make([]z.Lit, p.NumOutputs())
	for i, o := range p.Outputs() {
		e.Outs[i] = e.Lit(o)
	}
	return e
}

// Miter codes the disjunction of the pairwise differences of the outputs
// of p and q over shared fresh inputs and returns its literal, which is
// satisfiable iff p and q differ on some output.
func Miter(dst LitAdder, p, q *xmg.N) z.Lit {
	if p.NumInputs() != q.NumInputs() || p.NumOutputs() != q.NumOutputs() {
		panic("miter of networks with different interfaces")
	}
	ins := make([]z.Lit, p.NumInputs())
	for i := range ins {
		ins[i] = dst.Lit()
	}
	ep := Network(dst, p, ins, Options{})
	eq := Network(dst, q, ins, Options{})
	ds := make([]z.Lit, len(ep.Outs))
	for i := range ds {
		ds[i] = dst.Lit()
		addXor(dst, z.LitNull, ds[i], ep.Outs[i], eq.Outs[i])
	}
	m := dst.Lit()
	// m -> some difference
	clause(dst, append([]z.Lit{m.Not()}, ds...)...)
	return m
}
