// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sym

import (
	"github.com/go-air/gini/z"

	"github.com/go-air/exact/enc"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

// Add adds the clauses of the strategies in s to c, which is to
// compute f.  Every clause is conditioned on the slots it concerns being
// active, so the clauses hold under any size and depth bound of c.
func Add(c *enc.Candidate, s Set, f tt.T) {
	g := &generator{c: c, f: f}
	for _, st := range s.Strategies() {
		switch st {
		case Commutativity:
			g.commutativity()
		case Inverters:
			g.inverters()
		case Strash:
			g.strash()
		case Assoc:
			g.assoc()
		case CoLex:
			g.colex()
		case Support:
			g.support()
		case Symmetric:
			g.symmetric()
		}
	}
}

type eqKey struct {
	i, j, l, p int
	neg        bool
}

type generator struct {
	c   *enc.Candidate
	f   tt.T
	eqs map[eqKey]z.Lit
}

// less forbids a >= b under the guards us.
func (g *generator) less(a, b *enc.Sel, us ...z.Lit) {
	g.order(a, b, true, us)
}

// leq forbids a > b under the guards us.
func (g *generator) leq(a, b *enc.Sel, us ...z.Lit) {
	g.order(a, b, false, us)
}

func (g *generator) order(a, b *enc.Sel, strict bool, us []z.Lit) {
	n := len(us)
	for u := 0; u < a.Domain(); u++ {
		for w := 0; w < u && w < b.Domain(); w++ {
			us = append(us[:n], a.Eq(u).Not(), b.Eq(w).Not())
			g.c.Clause(us...)
		}
		if strict && u < b.Domain() {
			us = append(us[:n], a.Eq(u).Not(), b.Eq(u).Not())
			g.c.Clause(us...)
		}
	}
}

// arityGuard returns the guard restricting clauses about operand j of
// slot i to the kinds which have it, or false if no kind has it.
func (g *generator) arityGuard(i, j int) (z.Lit, bool) {
	var have []xmg.Kind
	ks := g.c.Kinds()
	for _, k := range ks {
		if k.Arity() > j {
			have = append(have, k)
		}
	}
	switch len(have) {
	case 0:
		return z.LitNull, false
	case len(ks):
		return z.LitNull, true
	}
	return g.c.NotKind(i, have[0]), true
}

func (g *generator) commutativity() {
	for i := range g.c.Slots {
		sl := &g.c.Slots[i]
		for j := 0; j+1 < len(sl.Sel); j++ {
			u, ok := g.arityGuard(i, j+1)
			if !ok {
				continue
			}
			g.less(sl.Sel[j], sl.Sel[j+1], sl.Act.Not(), u)
		}
	}
}

func (g *generator) inverters() {
	basis := g.c.Spec().Basis
	for i := range g.c.Slots {
		sl := &g.c.Slots[i]
		if basis.Has(xmg.KMaj) {
			u := g.c.NotKind(i, xmg.KMaj)
			for j := range sl.Neg {
				for _, o := range sl.Neg[j+1:] {
					g.c.Clause(sl.Act.Not(), u, sl.Neg[j].Not(), o.Not())
				}
			}
		}
		if basis.Has(xmg.KXor) {
			u := g.c.NotKind(i, xmg.KXor)
			for _, m := range sl.Neg[:2] {
				g.c.Clause(sl.Act.Not(), u, m.Not())
			}
		}
	}
}

// differ returns a literal which implies that a and b have different
// values.
func (g *generator) differ(a, b z.Lit) z.Lit {
	d := g.c.Lit()
	g.c.Clause(d.Not(), a, b)
	g.c.Clause(d.Not(), a.Not(), b.Not())
	return d
}

func (g *generator) strash() {
	ss := g.c.Slots
	for i := range ss {
		for h := i + 1; h < len(ss); h++ {
			a, b := &ss[i], &ss[h]
			ds := []z.Lit{a.Act.Not()}
			if a.Typ != z.LitNull {
				ds = append(ds, g.differ(a.Typ, b.Typ))
			}
			for j, s := range a.Sel {
				d := g.c.Lit()
				for v := 0; v < s.Domain(); v++ {
					g.c.Clause(d.Not(), s.Eq(v).Not(), b.Sel[j].Eq(v).Not())
				}
				ds = append(ds, d, g.differ(a.Neg[j], b.Neg[j]))
			}
			g.c.Clause(ds...)
		}
	}
}

// same returns a literal implied by operand j of slot i and operand p
// of slot l < i having the same source, and if neg the same complement.
func (g *generator) same(i, j, l, p int, neg bool) z.Lit {
	k := eqKey{i: i, j: j, l: l, p: p, neg: neg}
	if g.eqs == nil {
		g.eqs = make(map[eqKey]z.Lit)
	}
	if h, ok := g.eqs[k]; ok {
		return h
	}
	h := g.c.Lit()
	a, b := &g.c.Slots[i], &g.c.Slots[l]
	sa, sb := a.Sel[j], b.Sel[p]
	for v := 0; v < sb.Domain(); v++ {
		ea, eb := sa.Eq(v).Not(), sb.Eq(v).Not()
		if !neg {
			g.c.Clause(ea, eb, h)
			continue
		}
		g.c.Clause(ea, eb, a.Neg[j], b.Neg[p], h)
		g.c.Clause(ea, eb, a.Neg[j].Not(), b.Neg[p].Not(), h)
	}
	g.eqs[k] = h
	return h
}

// assoc forbids a gate i with an uncomplemented operand j selecting a
// gate l of the same kind, when the other operands of i are among those
// of l:
//
//	maj(x, u, maj(x, u, z)) = maj(x, u, z)
//	and(x, and(x, z)) = and(x, z)    and(!x, and(x, z)) = 0
//	xor(x, xor(x, z)) = z            (any complements)
//
// Gate i can then be replaced by l, an operand of l or a constant, giving
// a network with fewer gates and no greater depth.
func (g *generator) assoc() {
	basis := g.c.Spec().Basis
	for i := range g.c.Slots {
		sl := &g.c.Slots[i]
		for l := 0; l < i; l++ {
			src := g.c.Source(l)
			if basis.Has(xmg.KMaj) {
				ui, ul := g.c.NotKind(i, xmg.KMaj), g.c.NotKind(l, xmg.KMaj)
				for j := 0; j < 3; j++ {
					j1, j2 := (j+1)%3, (j+2)%3
					for p1 := 0; p1 < 3; p1++ {
						for p2 := 0; p2 < 3; p2++ {
							if p1 == p2 {
								continue
							}
							g.c.Clause(sl.Act.Not(), ui, ul, sl.Sel[j].Eq(src).Not(), sl.Neg[j],
								g.same(i, j1, l, p1, true).Not(), g.same(i, j2, l, p2, true).Not())
						}
					}
				}
			}
			for _, k := range []xmg.Kind{xmg.KXor, xmg.KAnd} {
				if !basis.Has(k) {
					continue
				}
				ui, ul := g.c.NotKind(i, k), g.c.NotKind(l, k)
				for j := 0; j < 2; j++ {
					for p := 0; p < 2; p++ {
						neg := sl.Neg[j]
						if k == xmg.KXor {
							neg = z.LitNull
						}
						g.c.Clause(sl.Act.Not(), ui, ul, sl.Sel[j].Eq(src).Not(), neg,
							g.same(i, 1-j, l, p, false).Not())
					}
				}
			}
		}
	}
}

// colex orders slot i-1 before slot i by their operand sources compared
// from the last operand, unless i uses i-1.
func (g *generator) colex() {
	ss := g.c.Slots
	for i := 1; i < len(ss); i++ {
		a, b := &ss[i-1], &ss[i]
		n := len(a.Sel)
		rs := make([]z.Lit, n)
		for m := range rs {
			rs[m] = g.c.Lit()
		}
		top := append([]z.Lit{a.Act.Not()}, g.c.Refs(i, i-1)...)
		g.c.Clause(append(top, rs[0])...)
		for m, r := range rs {
			sa, sb := a.Sel[n-1-m], b.Sel[n-1-m]
			g.leq(sa, sb, r.Not())
			if m+1 == n {
				continue
			}
			for v := 0; v < sa.Domain(); v++ {
				g.c.Clause(r.Not(), sa.Eq(v).Not(), sb.Eq(v).Not(), rs[m+1])
			}
		}
	}
}

func (g *generator) support() {
	for p := 0; p < g.f.N(); p++ {
		if g.f.DependsOn(p) {
			continue
		}
		for i := range g.c.Slots {
			for _, s := range g.c.Slots[i].Sel {
				g.c.Clause(s.Eq(p + 1).Not())
			}
		}
	}
}

// symmetric requires, for symmetric inputs p < q, that p is selected no
// later than the first slot selecting q.
func (g *generator) symmetric() {
	for _, pq := range g.f.SymmetricPairs() {
		p, q := pq[0]+1, pq[1]+1
		var ps []z.Lit
		for i := range g.c.Slots {
			for _, s := range g.c.Slots[i].Sel {
				ps = append(ps, s.Eq(p))
			}
			for _, s := range g.c.Slots[i].Sel {
				g.c.Clause(append([]z.Lit{s.Eq(q).Not()}, ps...)...)
			}
		}
	}
}
