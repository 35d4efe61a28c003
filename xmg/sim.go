// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xmg

import (
	"github.com/go-air/exact/tt"
)

// PostOrder calls fn on every node reachable from roots exactly once,
// operands before the gates using them.  Inputs and the constant are
// visited too.
func (p *N) PostOrder(fn func(id int), roots ...Lit) {
	marks := make([]byte, len(p.nodes))
	type frame struct {
		id int
		i  int
	}
	var stack []frame
	for _, root := range roots {
		if marks[root.Node()] == 2 {
			continue
		}
		stack = append(stack[:0], frame{id: root.Node()})
		marks[root.Node()] = 1
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			n := &p.nodes[top.id]
			if top.i < n.k.Arity() {
				c := n.ins[top.i].Node()
				top.i++
				switch marks[c] {
				case 2:
				case 1:
					panic("loop")
				default:
					if c >= top.id {
						panic("operand after gate")
					}
					marks[c] = 1
					stack = append(stack, frame{id: c})
				}
				continue
			}
			marks[top.id] = 2
			fn(top.id)
			stack = stack[:len(stack)-1]
		}
	}
}

// Size returns the number of gates reachable from the outputs.
func (p *N) Size() int {
	s := 0
	p.PostOrder(func(id int) {
		if p.nodes[id].k.IsGate() {
			s++
		}
	}, p.outs...)
	return s
}

// Levels returns the level of every node: 0 for the constant and inputs,
// and one more than the maximal operand level for gates.
func (p *N) Levels() []int {
	lvl := make([]int, len(p.nodes))
	for i := p.nin + 1; i < len(p.nodes); i++ {
		n := &p.nodes[i]
		for _, m := range n.ins[:n.k.Arity()] {
			if l := lvl[m.Node()] + 1; l > lvl[i] {
				lvl[i] = l
			}
		}
	}
	return lvl
}

// Depth returns the maximal level of an output.
func (p *N) Depth() int {
	lvl := p.Levels()
	d := 0
	for _, m := range p.outs {
		if lvl[m.Node()] > d {
			d = lvl[m.Node()]
		}
	}
	return d
}

// Eval64 evaluates every node on the 64 input patterns given by the bits
// of vs[1..NumInputs()], placing the result of node i in vs[i].  vs[0] is
// set to 0.
func (p *N) Eval64(vs []uint64) {
	vs[0] = 0
	val := func(m Lit) uint64 {
		v := vs[m.Node()]
		if m.IsNeg() {
			return ^v
		}
		return v
	}
	for i := p.nin + 1; i < len(p.nodes); i++ {
		n := &p.nodes[i]
		switch n.k {
		case KMaj:
			a, b, c := val(n.ins[0]), val(n.ins[1]), val(n.ins[2])
			vs[i] = (a & b) | (a & c) | (b & c)
		case KXor:
			vs[i] = val(n.ins[0]) ^ val(n.ins[1])
		case KAnd:
			vs[i] = val(n.ins[0]) & val(n.ins[1])
		}
	}
}

// Tables simulates p exhaustively and returns the truth table of
// every output.  p must have at most tt.MaxVars inputs.
func (p *N) Tables() []tt.T {
	vs := make([]uint64, len(p.nodes))
	for i := 0; i < p.nin; i++ {
		vs[i+1] = tt.Var(p.nin, i).Bits()
	}
	p.Eval64(vs)
	res := make([]tt.T, len(p.outs))
	for i, m := range p.outs {
		v := vs[m.Node()]
		if m.IsNeg() {
			v = ^v
		}
		res[i] = tt.New(p.nin, v)
	}
	return res
}

// Table returns the truth table of output i.
func (p *N) Table(i int) tt.T {
	return p.Tables()[i]
}

// Compact returns a copy of p with only the gates reachable from the
// outputs, in post order, shared by structural hashing.
func (p *N) Compact() *N {
	q := NewCap(p.nin, len(p.nodes))
	m := make([]Lit, len(p.nodes))
	for i := 0; i <= p.nin; i++ {
		m[i] = NodeLit(i)
	}
	tr := func(a Lit) Lit { return m[a.Node()].Cond(a.IsNeg()) }
	p.PostOrder(func(id int) {
		n := &p.nodes[id]
		switch n.k {
		case KMaj:
			m[id] = q.Maj(tr(n.ins[0]), tr(n.ins[1]), tr(n.ins[2]))
		case KXor:
			m[id] = q.Xor(tr(n.ins[0]), tr(n.ins[1]))
		case KAnd:
			m[id] = q.And(tr(n.ins[0]), tr(n.ins[1]))
		}
	}, p.outs...)
	for _, o := range p.outs {
		q.AddOutput(tr(o))
	}
	return q
}

// Convert returns a network computing the same outputs as p using only
// the gate kinds of basis b.  Conjunctions become majority gates with a
// constant operand; exclusive-ors become three conjunctions when b has
// no exclusive-or gates.
func (p *N) Convert(b Basis) *N {
	q := NewCap(p.nin, len(p.nodes))
	m := make([]Lit, len(p.nodes))
	for i := 0; i <= p.nin; i++ {
		m[i] = NodeLit(i)
	}
	tr := func(a Lit) Lit { return m[a.Node()].Cond(a.IsNeg()) }
	p.PostOrder(func(id int) {
		n := &p.nodes[id]
		if !n.k.IsGate() {
			return
		}
		ins := make([]Lit, n.k.Arity())
		for i, a := range n.ins[:n.k.Arity()] {
			ins[i] = tr(a)
		}
		m[id] = b.build(q, n.k, ins)
	}, p.outs...)
	for _, o := range p.outs {
		q.AddOutput(tr(o))
	}
	return q
}
