// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"fmt"

	ginter "github.com/go-air/gini/inter"
	"github.com/go-air/gini/z"

	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

// Spec describes the shape of a candidate network.
type Spec struct {
	// Inputs is the number of primary inputs.
	Inputs int
	// Slots is the number of gate slots, the largest representable
	// network size.
	Slots int
	// Basis gives the gate kinds.
	Basis xmg.Basis
	// Binary codes operand selectors as bit vectors instead of one-hot.
	Binary bool
}

// Slot holds the literals describing one gate slot.
//
// The operand selectors of slot i range over the sources 0 (constant
// false), 1..n (the inputs) and n+1+l for slots l < i.
type Slot struct {
	// Act is true if the slot is a gate of the network.
	Act z.Lit
	// Typ is true for exclusive-or gates of an XMG candidate, z.LitNull
	// for the other bases.
	Typ z.Lit
	// Sel selects the source of each operand.
	Sel []*Sel
	// Neg complements each operand.
	Neg []z.Lit
}

// Candidate is the coding of a parametric network: a sequence of gate
// slots whose active slots form a suffix ending in the output slot.
// Inactive slots have all selectors 0, no complemented operands and
// kind majority (or conjunction), so that every network has exactly one
// model of the topology literals.
type Candidate struct {
	dst    LitAdder
	spec   Spec
	Slots  []Slot
	OutNeg z.Lit

	vals  [][]z.Lit // vals[t][i]: value of slot i under minterm t
	depth [][]z.Lit // depth[i][t-1]: depth of slot i is at least t
}

// NewCandidate codes the topology of a candidate network of spec.Slots
// slots in dst.
func NewCandidate(dst LitAdder, spec Spec) *Candidate {
	if spec.Slots < 1 || spec.Inputs < 0 || spec.Inputs > tt.MaxVars {
		panic(fmt.Sprintf("invalid candidate: %d slots over %d inputs", spec.Slots, spec.Inputs))
	}
	c := &Candidate{dst: dst, spec: spec}
	c.vals = make([][]z.Lit, 1<<uint(spec.Inputs))
	n, k, a := spec.Inputs, spec.Slots, spec.Basis.Arity()
	xmgBasis := spec.Basis == xmg.XMG
	c.Slots = make([]Slot, k)
	for i := range c.Slots {
		sl := &c.Slots[i]
		sl.Act = dst.Lit()
		if xmgBasis {
			sl.Typ = dst.Lit()
		}
		sl.Sel = make([]*Sel, a)
		sl.Neg = make([]z.Lit, a)
		for j := 0; j < a; j++ {
			sl.Sel[j] = NewSel(dst, n+1+i, spec.Binary)
			sl.Neg[j] = dst.Lit()
		}
	}
	c.OutNeg = dst.Lit()
	for i := range c.Slots {
		c.topology(i)
	}
	return c
}

func (c *Candidate) topology(i int) {
	n, k := c.spec.Inputs, c.spec.Slots
	sl := &c.Slots[i]
	if i+1 < k {
		clause(c.dst, sl.Act.Not(), c.Slots[i+1].Act)
	} else {
		clause(c.dst, sl.Act)
	}
	// canonical inactive slots
	if sl.Typ != z.LitNull {
		clause(c.dst, sl.Act, sl.Typ.Not())
	}
	for j, s := range sl.Sel {
		clause(c.dst, sl.Act, s.Eq(0))
		clause(c.dst, sl.Act, sl.Neg[j].Not())
		for l := 0; l < i; l++ {
			clause(c.dst, s.Eq(n+1+l).Not(), c.Slots[l].Act)
		}
	}
	// exclusive-or and conjunction operands are not constant; the third
	// operand of an exclusive-or slot is unused.
	switch c.spec.Basis {
	case xmg.AIG:
		for _, s := range sl.Sel {
			clause(c.dst, sl.Act.Not(), s.Eq(0).Not())
		}
	case xmg.XMG:
		for _, s := range sl.Sel[:2] {
			clause(c.dst, sl.Act.Not(), sl.Typ.Not(), s.Eq(0).Not())
		}
		clause(c.dst, sl.Typ.Not(), sl.Sel[2].Eq(0))
		clause(c.dst, sl.Typ.Not(), sl.Neg[2].Not())
	}
	// every active gate but the output is used.
	if i+1 < k {
		used := []z.Lit{sl.Act.Not()}
		for _, o := range c.Slots[i+1:] {
			for _, s := range o.Sel {
				used = append(used, s.Eq(n+1+i))
			}
		}
		clause(c.dst, used...)
	}
}

// Spec returns the shape of c.
func (c *Candidate) Spec() Spec { return c.spec }

// Len returns the number of slots.
func (c *Candidate) Len() int { return c.spec.Slots }

// Inputs returns the number of inputs.
func (c *Candidate) Inputs() int { return c.spec.Inputs }

// Source returns the selector value referring to slot l.
func (c *Candidate) Source(l int) int { return c.spec.Inputs + 1 + l }

// Lit returns a fresh literal of the destination of c.
func (c *Candidate) Lit() z.Lit { return c.dst.Lit() }

// Clause adds the literals of ms which are not z.LitNull as a clause to
// the destination of c.
func (c *Candidate) Clause(ms ...z.Lit) { clause(c.dst, ms...) }

// Kinds returns the gate kinds slots may take.
func (c *Candidate) Kinds() []xmg.Kind { return c.spec.Basis.Kinds() }

// NotKind returns a literal which is false iff slot i has kind k, to be
// added to clauses which only concern gates of kind k.  It returns
// z.LitNull if every slot has kind k.
func (c *Candidate) NotKind(i int, k xmg.Kind) z.Lit {
	if !c.spec.Basis.Has(k) {
		panic(fmt.Sprintf("kind %s not in basis %s", k, c.spec.Basis))
	}
	typ := c.Slots[i].Typ
	if typ == z.LitNull {
		return z.LitNull
	}
	if k == xmg.KXor {
		return typ.Not()
	}
	return typ
}

// Refs returns the literals of the operand selectors of slot i which
// select slot l.
func (c *Candidate) Refs(i, l int) []z.Lit {
	res := make([]z.Lit, 0, len(c.Slots[i].Sel))
	for _, s := range c.Slots[i].Sel {
		res = append(res, s.Eq(c.Source(l)))
	}
	return res
}

// AddTable constrains the output of c to compute f.
func (c *Candidate) AddTable(f tt.T) {
	if f.N() != c.spec.Inputs {
		panic(fmt.Sprintf("table over %d inputs for candidate over %d", f.N(), c.spec.Inputs))
	}
	for t := 0; t < f.Len(); t++ {
		c.AddMinterm(t, f.Bit(t))
	}
}

// AddMinterm constrains the output of c under the input assignment t,
// where input p has value (t >> p) & 1, to be v.
func (c *Candidate) AddMinterm(t int, v bool) {
	if c.vals[t] != nil {
		panic(fmt.Sprintf("minterm %d coded twice", t))
	}
	n := c.spec.Inputs
	xs := make([]z.Lit, len(c.Slots))
	c.vals[t] = xs
	for i := range c.Slots {
		sl := &c.Slots[i]
		ops := make([]z.Lit, len(sl.Sel))
		for j, s := range sl.Sel {
			o := c.dst.Lit()
			ops[j] = o
			neg := sl.Neg[j]
			for src := 0; src < s.Domain(); src++ {
				u := s.Eq(src).Not()
				switch {
				case src == 0:
					addEquiv(c.dst, u, o, neg)
				case src <= n:
					if t&(1<<uint(src-1)) != 0 {
						addEquiv(c.dst, u, o, neg.Not())
					} else {
						addEquiv(c.dst, u, o, neg)
					}
				default:
					addXor(c.dst, u, o, neg, xs[src-n-1])
				}
			}
		}
		x := c.dst.Lit()
		xs[i] = x
		switch c.spec.Basis {
		case xmg.MIG:
			addMaj(c.dst, z.LitNull, x, ops[0], ops[1], ops[2])
		case xmg.AIG:
			addAnd(c.dst, z.LitNull, x, ops[0], ops[1])
		case xmg.XMG:
			addMaj(c.dst, sl.Typ, x, ops[0], ops[1], ops[2])
			addXor(c.dst, sl.Typ.Not(), x, ops[0], ops[1])
		}
	}
	out := xs[len(xs)-1]
	if v {
		addEquiv(c.dst, z.LitNull, out, c.OutNeg.Not())
	} else {
		addEquiv(c.dst, z.LitNull, out, c.OutNeg)
	}
}

// SizeBound returns a literal which limits the number of active slots to
// at most s, or z.LitNull if s does not limit c.
func (c *Candidate) SizeBound(s int) z.Lit {
	if s < 1 {
		panic(fmt.Sprintf("size bound %d", s))
	}
	k := c.spec.Slots
	if s >= k {
		return z.LitNull
	}
	return c.Slots[k-s-1].Act.Not()
}

// Kind returns the kind of slot i under m.
func (c *Candidate) Kind(i int, m ginter.Model) xmg.Kind {
	switch c.spec.Basis {
	case xmg.AIG:
		return xmg.KAnd
	case xmg.XMG:
		if m.Value(c.Slots[i].Typ) {
			return xmg.KXor
		}
	}
	return xmg.KMaj
}

// Size returns the number of active slots under m.
func (c *Candidate) Size(m ginter.Model) int {
	s := 0
	for i := range c.Slots {
		if m.Value(c.Slots[i].Act) {
			s++
		}
	}
	return s
}

// Decode returns the network of the active slots of c under m, one gate
// per active slot in slot order.
func (c *Candidate) Decode(m ginter.Model) *xmg.N {
	n, k := c.spec.Inputs, c.spec.Slots
	p := xmg.NewCap(n, n+1+k)
	ids := make([]xmg.Lit, k)
	act := make([]bool, k)
	for i := range c.Slots {
		sl := &c.Slots[i]
		if !m.Value(sl.Act) {
			continue
		}
		kind := c.Kind(i, m)
		ins := make([]xmg.Lit, kind.Arity())
		for j := range ins {
			var a xmg.Lit
			switch src := sl.Sel[j].Value(m); {
			case src == 0:
				a = xmg.F
			case src <= n:
				a = p.In(src - 1)
			default:
				l := src - n - 1
				if !act[l] {
					panic(fmt.Sprintf("slot %d refers to inactive slot %d", i, l))
				}
				a = ids[l]
			}
			ins[j] = a.Cond(m.Value(sl.Neg[j]))
		}
		ids[i] = p.Add(kind, ins...)
		act[i] = true
	}
	if !act[k-1] {
		panic("inactive output slot")
	}
	p.AddOutput(ids[k-1].Cond(m.Value(c.OutNeg)))
	return p
}

// Block adds a clause to c which excludes the topology of m: the
// activation, kind, selector and complement literals of every slot and
// the output complement.
func (c *Candidate) Block(m ginter.Model) {
	flip := func(a z.Lit) z.Lit {
		if m.Value(a) {
			return a.Not()
		}
		return a
	}
	var ms []z.Lit
	for i := range c.Slots {
		sl := &c.Slots[i]
		ms = append(ms, flip(sl.Act))
		if sl.Typ != z.LitNull {
			ms = append(ms, flip(sl.Typ))
		}
		for j, s := range sl.Sel {
			ms = append(ms, s.Differ(m)...)
			ms = append(ms, flip(sl.Neg[j]))
		}
	}
	ms = append(ms, flip(c.OutNeg))
	clause(c.dst, ms...)
}
