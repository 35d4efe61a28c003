// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xmg

import (
	"fmt"
	"strings"
)

// Kind is the kind of a node in a network.
type Kind uint8

const (
	KConst Kind = iota
	KInput
	KMaj
	KXor
	KAnd
)

var kindNames = [...]string{"const", "input", "maj", "xor", "and"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Arity gives the number of operands of a gate of kind k.
func (k Kind) Arity() int {
	switch k {
	case KMaj:
		return 3
	case KXor, KAnd:
		return 2
	}
	return 0
}

// IsGate is true for the kinds which have operands.
func (k Kind) IsGate() bool {
	return k.Arity() > 0
}

// Lit is a possibly complemented edge to a node.  The node is Lit >> 1 and
// the low bit is set for complemented edges.
type Lit uint32

const (
	// F is the constant false, node 0.
	F Lit = 0
	// T is the constant true.
	T Lit = 1
)

// Node returns the node m points to.
func (m Lit) Node() int { return int(m >> 1) }

// IsNeg is true if m is complemented.
func (m Lit) IsNeg() bool { return m&1 == 1 }

// Not returns the complement of m.
func (m Lit) Not() Lit { return m ^ 1 }

// Abs returns the uncomplemented edge to m's node.
func (m Lit) Abs() Lit { return m &^ 1 }

// Cond complements m if c.
func (m Lit) Cond(c bool) Lit {
	if c {
		return m ^ 1
	}
	return m
}

// NodeLit returns the uncomplemented edge to node id.
func NodeLit(id int) Lit { return Lit(id << 1) }

type node struct {
	k   Kind
	ins [3]Lit
	n   uint32 // next strash
}

// N is a multi-output network of majority, exclusive-or and conjunction
// gates with complemented edges.
//
// Nodes are kept in an arena in topological order: node 0 is the constant
// false, nodes 1..NumInputs() are the inputs, and every gate only refers to
// nodes before it.
type N struct {
	nodes  []node
	strash []uint32
	nin    int
	outs   []Lit
}

// New creates a network with nin inputs and no gates.
func New(nin int) *N {
	return NewCap(nin, 64)
}

// NewCap is like New with a capacity hint for the number of nodes.
func NewCap(nin, capHint int) *N {
	if capHint < nin+1 {
		capHint = nin + 1
	}
	p := &N{nin: nin}
	p.nodes = make([]node, nin+1, capHint)
	p.strash = make([]uint32, capHint)
	for i := 1; i <= nin; i++ {
		p.nodes[i].k = KInput
	}
	return p
}

// NumInputs returns the number of inputs.
func (p *N) NumInputs() int { return p.nin }

// In returns the i'th input, 0 <= i < NumInputs().
func (p *N) In(i int) Lit {
	if i < 0 || i >= p.nin {
		panic(fmt.Sprintf("input %d out of range", i))
	}
	return NodeLit(i + 1)
}

// Len returns the number of nodes, including the constant and the inputs.
func (p *N) Len() int { return len(p.nodes) }

// NumGates returns the number of gates in the arena, reachable or not.
func (p *N) NumGates() int { return len(p.nodes) - p.nin - 1 }

// Kind returns the kind of the node of m.
func (p *N) Kind(m Lit) Kind { return p.nodes[m.Node()].k }

// Ins returns the operands of the node of m.  The result is empty for
// the constant and inputs.
func (p *N) Ins(m Lit) []Lit {
	n := &p.nodes[m.Node()]
	return n.ins[:n.k.Arity()]
}

// InputIndex returns the input index of m, or -1 if m is not an input.
func (p *N) InputIndex(m Lit) int {
	if p.Kind(m) != KInput {
		return -1
	}
	return m.Node() - 1
}

// AddOutput adds m as an output and returns its index.
func (p *N) AddOutput(m Lit) int {
	p.check(m)
	p.outs = append(p.outs, m)
	return len(p.outs) - 1
}

// Outputs returns the outputs of p.
func (p *N) Outputs() []Lit { return p.outs }

// Output returns the i'th output.
func (p *N) Output(i int) Lit { return p.outs[i] }

// NumOutputs returns the number of outputs.
func (p *N) NumOutputs() int { return len(p.outs) }

func (p *N) check(m Lit) {
	if m.Node() >= len(p.nodes) {
		panic(fmt.Sprintf("reference to node %d beyond %d", m.Node(), len(p.nodes)))
	}
}

// Add appends a gate of kind k with operands ins without any
// simplification or sharing.  Every operand must refer to an existing node.
func (p *N) Add(k Kind, ins ...Lit) Lit {
	if !k.IsGate() || len(ins) != k.Arity() {
		panic(fmt.Sprintf("add %s with %d operands", k, len(ins)))
	}
	for _, m := range ins {
		p.check(m)
	}
	n, id := p.newNode()
	n.k = k
	copy(n.ins[:], ins)
	c := strashCode(k, n.ins) % uint32(cap(p.nodes))
	n.n = p.strash[c]
	p.strash[c] = id
	return NodeLit(int(id))
}

// Maj returns a literal equivalent to the majority of a, b and c, which may
// be a new gate.
func (p *N) Maj(a, b, c Lit) Lit {
	switch {
	case a == b:
		return a
	case a == c:
		return a
	case b == c:
		return b
	case a == b.Not():
		return c
	case a == c.Not():
		return b
	case b == c.Not():
		return a
	}
	neg := false
	if nNeg(a, b, c) >= 2 {
		a, b, c = a.Not(), b.Not(), c.Not()
		neg = true
	}
	ins := sort3(a, b, c)
	return p.hashed(KMaj, ins).Cond(neg)
}

// Xor returns a literal equivalent to a xor b.
func (p *N) Xor(a, b Lit) Lit {
	neg := a.IsNeg() != b.IsNeg()
	a, b = a.Abs(), b.Abs()
	switch {
	case a == b:
		return F.Cond(neg)
	case a == F:
		return b.Cond(neg)
	case b == F:
		return a.Cond(neg)
	}
	if a > b {
		a, b = b, a
	}
	return p.hashed(KXor, [3]Lit{a, b}).Cond(neg)
}

// And returns a literal equivalent to a and b.
func (p *N) And(a, b Lit) Lit {
	if a > b {
		a, b = b, a
	}
	switch {
	case a == b:
		return a
	case a == b.Not():
		return F
	case a == F:
		return F
	case a == T:
		return b
	}
	return p.hashed(KAnd, [3]Lit{a, b})
}

// Or returns a literal equivalent to a or b, as a complemented conjunction.
func (p *N) Or(a, b Lit) Lit {
	return p.And(a.Not(), b.Not()).Not()
}

func (p *N) hashed(k Kind, ins [3]Lit) Lit {
	c := strashCode(k, ins)
	si := p.strash[c%uint32(cap(p.nodes))]
	for si != 0 {
		n := &p.nodes[si]
		if n.k == k && n.ins == ins {
			return NodeLit(int(si))
		}
		si = n.n
	}
	return p.Add(k, ins[:k.Arity()]...)
}

func (p *N) newNode() (*node, uint32) {
	if len(p.nodes) == cap(p.nodes) {
		p.grow()
	}
	id := len(p.nodes)
	p.nodes = p.nodes[:id+1]
	return &p.nodes[id], uint32(id)
}

func (p *N) grow() {
	newCap := cap(p.nodes) * 2
	nodes := make([]node, len(p.nodes), newCap)
	strash := make([]uint32, newCap)
	copy(nodes, p.nodes)
	ucap := uint32(newCap)
	for i := range nodes {
		n := &nodes[i]
		if !n.k.IsGate() {
			continue
		}
		j := strashCode(n.k, n.ins) % ucap
		n.n = strash[j]
		strash[j] = uint32(i)
	}
	p.nodes = nodes
	p.strash = strash
}

func strashCode(k Kind, ins [3]Lit) uint32 {
	return uint32(k)*0x9e3779b1 ^ uint32(ins[0]<<13)*uint32(ins[1]|1) ^ uint32(ins[2])*0x85ebca6b
}

func nNeg(ms ...Lit) int {
	n := 0
	for _, m := range ms {
		if m.IsNeg() {
			n++
		}
	}
	return n
}

func sort3(a, b, c Lit) [3]Lit {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return [3]Lit{a, b, c}
}

// LitString formats m in terms of p's inputs and gates.
func (p *N) LitString(m Lit) string {
	var s string
	switch p.Kind(m) {
	case KConst:
		if m.IsNeg() {
			return "1"
		}
		return "0"
	case KInput:
		s = fmt.Sprintf("x%d", m.Node())
	default:
		s = fmt.Sprintf("g%d", m.Node())
	}
	if m.IsNeg() {
		return "!" + s
	}
	return s
}

// String gives one line per gate in arena order followed by the outputs.
// Two networks with the same gates and outputs in the same order have the
// same string.
func (p *N) String() string {
	var sb strings.Builder
	for i := p.nin + 1; i < len(p.nodes); i++ {
		n := &p.nodes[i]
		fmt.Fprintf(&sb, "g%d = %s(", i, n.k)
		for j, m := range n.ins[:n.k.Arity()] {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.LitString(m))
		}
		sb.WriteString(")\n")
	}
	for i, m := range p.outs {
		fmt.Fprintf(&sb, "o%d = %s\n", i, p.LitString(m))
	}
	return sb.String()
}
