// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"context"
	"testing"

	"github.com/go-air/gini/z"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/gen"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/xmg"
)

func solve(t *testing.T, b inter.Backend, ms ...z.Lit) *inter.Model {
	t.Helper()
	m, err := b.Solve(context.Background(), ms...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNetworkSimulates(t *testing.T) {
	gen.Seed(5)
	for _, basis := range []xmg.Basis{xmg.MIG, xmg.XMG, xmg.AIG} {
		for i := 0; i < 10; i++ {
			p := gen.Network(4, 7, basis)
			f := p.Table(0)
			b := backend.NewGini(backend.Options{})
			ins := make([]z.Lit, 4)
			for j := range ins {
				ins[j] = b.Lit()
			}
			e := Network(b, p, ins, Options{})
			for row := 0; row < f.Len(); row++ {
				ms := make([]z.Lit, 4)
				for j := range ms {
					ms[j] = ins[j]
					if row&(1<<uint(j)) == 0 {
						ms[j] = ins[j].Not()
					}
				}
				m := solve(t, b, ms...)
				if m == nil {
					t.Fatalf("%s: row %d unsat\n%s", basis, row, p)
				}
				if m.Value(e.Outs[0]) != f.Bit(row) {
					t.Errorf("%s: row %d: output %v, table %v\n%s", basis, row, m.Value(e.Outs[0]), f.Bit(row), p)
				}
			}
		}
	}
}

func TestNetworkDeterministic(t *testing.T) {
	p := gen.Network(3, 5, xmg.XMG)
	r1, r2 := backend.NewRecorder(), backend.NewRecorder()
	for _, r := range []*backend.Recorder{r1, r2} {
		ins := []z.Lit{r.Lit(), r.Lit(), r.Lit()}
		Network(r, p, ins, Options{BlockingVars: true})
	}
	if r1.Len() != r2.Len() || r1.MaxVar() != r2.MaxVar() {
		t.Fatalf("different codings")
	}
	for i, c := range r1.Clauses() {
		for j, m := range c {
			if r2.Clauses()[i][j] != m {
				t.Errorf("clause %d differs", i)
				break
			}
		}
	}
}

func TestBlockingVars(t *testing.T) {
	p := xmg.New(2)
	p.AddOutput(p.And(p.In(0), p.In(1)))
	b := backend.NewGini(backend.Options{})
	x, y := b.Lit(), b.Lit()
	e := Network(b, p, []z.Lit{x, y}, Options{BlockingVars: true})
	g := p.Output(0).Node()
	blk := e.Blocking[g]
	if blk == z.LitNull {
		t.Fatal("no blocking literal")
	}
	if m := solve(t, b, x.Not(), e.Outs[0]); m == nil {
		t.Errorf("blocked gate is constrained")
	}
	if m := solve(t, b, blk, x.Not(), e.Outs[0]); m != nil {
		t.Errorf("active gate is not constrained")
	}
}

func TestMiter(t *testing.T) {
	gen.Seed(9)
	for i := 0; i < 10; i++ {
		p := gen.Network(4, 6, xmg.XMG)
		b := backend.NewGini(backend.Options{})
		m := Miter(b, p, p.Convert(xmg.AIG))
		if solve(t, b, m) != nil {
			t.Errorf("conversion differs\n%s", p)
		}
		b = backend.NewGini(backend.Options{})
		neg := p.Compact()
		neg.Outputs()[0] = neg.Output(0).Not()
		if solve(t, b, Miter(b, p, neg)) == nil {
			t.Errorf("complement equivalent\n%s", p)
		}
	}
}

func TestAtMostOne(t *testing.T) {
	for _, n := range []int{3, pairwiseMax + 5} {
		b := backend.NewGini(backend.Options{})
		ms := make([]z.Lit, n)
		for i := range ms {
			ms[i] = b.Lit()
		}
		AtMostOne(b, ms...)
		if solve(t, b, ms[0], ms[n-1]) != nil {
			t.Errorf("%d: two true", n)
		}
		m := solve(t, b, ms[1])
		if m == nil {
			t.Fatalf("%d: one true unsat", n)
		}
		for i, l := range ms {
			if i != 1 && m.Value(l) {
				t.Errorf("%d: %d true", n, i)
			}
		}
		if solve(t, b) == nil {
			t.Errorf("%d: none true unsat", n)
		}
	}
}

func TestCard(t *testing.T) {
	b := backend.NewGini(backend.Options{})
	ms := make([]z.Lit, 5)
	for i := range ms {
		ms[i] = b.Lit()
	}
	cs := Card(b, ms)
	if solve(t, b, cs.Geq(3), ms[0].Not(), ms[1].Not(), ms[2].Not()) != nil {
		t.Errorf("3 of 2")
	}
	if solve(t, b, cs.Leq(1), ms[0], ms[4]) != nil {
		t.Errorf("2 leq 1")
	}
	if solve(t, b, cs.Leq(-1)) != nil {
		t.Errorf("leq -1 sat")
	}
	if solve(t, b, cs.Geq(5)) == nil {
		t.Errorf("geq 5 unsat")
	}
}
