// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"fmt"
	"testing"

	"github.com/go-air/gini/z"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

type probe struct {
	f      tt.T
	basis  xmg.Basis
	slots  int
	size   int
	depth  int
	binary bool
}

func (p probe) String() string {
	return fmt.Sprintf("%s/%s/k=%d/s=%d/d=%d/bin=%t", p.f, p.basis, p.slots, p.size, p.depth, p.binary)
}

// run codes p and returns the decoded network, or nil if unsat.
func (p probe) run(t *testing.T) *xmg.N {
	t.Helper()
	b := backend.NewGini(backend.Options{})
	c := NewCandidate(b, Spec{Inputs: p.f.N(), Slots: p.slots, Basis: p.basis, Binary: p.binary})
	c.AddTable(p.f)
	var ms []z.Lit
	if p.size > 0 {
		if m := c.SizeBound(p.size); m != z.LitNull {
			ms = append(ms, m)
		}
	}
	if p.depth > 0 {
		c.AddDepth()
		if m := c.DepthBound(p.depth); m != z.LitNull {
			ms = append(ms, m)
		}
	}
	m := solve(t, b, ms...)
	if m == nil {
		return nil
	}
	n := c.Decode(m)
	require.Equal(t, p.f, n.Table(0), "%s\n%s", p, n)
	if p.size > 0 {
		assert.LessOrEqual(t, n.Size(), p.size, "%s", p)
	}
	if p.depth > 0 {
		assert.LessOrEqual(t, n.Depth(), p.depth, "%s", p)
	}
	return n
}

var (
	maj3 = tt.New(3, 0xe8)
	xor2 = tt.New(2, 0x6)
	xor3 = tt.New(3, 0x96)
	and3 = tt.New(3, 0x80)
)

func TestCandidateProbes(t *testing.T) {
	for _, bin := range []bool{false, true} {
		for _, tc := range []struct {
			probe
			sat bool
		}{
			{probe{f: maj3, basis: xmg.MIG, slots: 1}, true},
			{probe{f: maj3, basis: xmg.XMG, slots: 1}, true},
			{probe{f: maj3, basis: xmg.AIG, slots: 3}, false},
			{probe{f: xor2, basis: xmg.XMG, slots: 1}, true},
			{probe{f: xor2, basis: xmg.MIG, slots: 1}, false},
			{probe{f: xor2, basis: xmg.MIG, slots: 3}, true},
			{probe{f: xor2, basis: xmg.AIG, slots: 2}, false},
			{probe{f: xor2, basis: xmg.AIG, slots: 3}, true},
			{probe{f: xor3, basis: xmg.XMG, slots: 2}, true},
			{probe{f: xor3, basis: xmg.XMG, slots: 3, size: 1}, false},
			{probe{f: and3, basis: xmg.MIG, slots: 3, size: 2}, true},
			{probe{f: and3, basis: xmg.MIG, slots: 3, size: 2, depth: 1}, false},
			{probe{f: and3, basis: xmg.AIG, slots: 2, depth: 2}, true},
		} {
			tc.binary = bin
			n := tc.run(t)
			if (n != nil) != tc.sat {
				t.Errorf("%s: sat %t, expected %t\n%v", tc.probe, n != nil, tc.sat, n)
			}
		}
	}
}

// TestCandidateMonotone checks that a network of size s is also found with
// more slots or larger size bounds.
func TestCandidateMonotone(t *testing.T) {
	f := tt.New(3, 0x1e)
	var first int
	for s := 1; s <= 5; s++ {
		n := probe{f: f, basis: xmg.MIG, slots: 5, size: s}.run(t)
		if n != nil && first == 0 {
			first = s
		}
		if n == nil && first != 0 {
			t.Errorf("size %d unsat after %d sat", s, first)
		}
	}
	if first == 0 {
		t.Fatal("no network")
	}
	if n := (probe{f: f, basis: xmg.MIG, slots: first}).run(t); n == nil {
		t.Errorf("exact slots %d unsat", first)
	}
}

// enumerate counts the distinct models of the topology of p by blocking.
func enumerate(t *testing.T, p probe) map[string]bool {
	b := backend.NewGini(backend.Options{})
	c := NewCandidate(b, Spec{Inputs: p.f.N(), Slots: p.slots, Basis: p.basis, Binary: p.binary})
	c.AddTable(p.f)
	seen := map[string]bool{}
	for {
		m := solve(t, b)
		if m == nil {
			return seen
		}
		n := c.Decode(m)
		if !n.Table(0).Equal(p.f) {
			t.Fatalf("wrong network\n%s", n)
		}
		k := n.String()
		if seen[k] {
			t.Fatalf("duplicate\n%s", k)
		}
		seen[k] = true
		c.Block(m)
	}
}

func TestCandidateEnumerate(t *testing.T) {
	// 3! operand orders, each also in the complemented form
	for _, bin := range []bool{false, true} {
		sols := enumerate(t, probe{f: maj3, basis: xmg.MIG, slots: 1, binary: bin})
		assert.Len(t, sols, 12)
	}
	// xor(a, b) in 2 orders, with 4 complement patterns each
	sols := enumerate(t, probe{f: xor2, basis: xmg.XMG, slots: 1})
	assert.Len(t, sols, 8)
}

func TestSelBinary(t *testing.T) {
	b := backend.NewGini(backend.Options{})
	s := NewSel(b, 5, true)
	for v := 0; v < 5; v++ {
		s.Eq(v)
	}
	for v := 0; v < 5; v++ {
		m := solve(t, b, s.Eq(v))
		require.NotNil(t, m)
		assert.Equal(t, v, s.Value(m))
		for w := 0; w < 5; w++ {
			if w != v {
				assert.False(t, m.Value(s.Eq(w)))
			}
		}
	}
	// block every value; 5..7 are excluded by the coding
	for v := 0; v < 5; v++ {
		m := solve(t, b)
		require.NotNil(t, m)
		inter.Clause(b, s.Differ(m)...)
	}
	assert.Nil(t, solve(t, b))
}
