// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/go-air/exact/xmg"
)

// pairwiseMax is the largest set coded by pairwise exclusion.
const pairwiseMax = 8

// AtMostOne constrains at most one of ms to be true.  Small sets are
// coded pairwise, larger ones with a sorting network.
func AtMostOne(dst LitAdder, ms ...z.Lit) {
	if len(ms) <= pairwiseMax {
		for i, a := range ms {
			for _, b := range ms[i+1:] {
				clause(dst, a.Not(), b.Not())
			}
		}
		return
	}
	clause(dst, Card(dst, ms).Leq(1))
}

// CardLits gives access to the cardinality predicates of a set of
// literals coded by Card.
type CardLits struct {
	t   z.Lit
	leq []z.Lit
}

// Leq returns a literal equivalent to at most b of the counted literals
// being true.
func (c *CardLits) Leq(b int) z.Lit {
	switch {
	case b < 0:
		return c.t.Not()
	case b >= len(c.leq):
		return c.t
	}
	return c.leq[b]
}

// Geq returns a literal equivalent to at least b of the counted literals
// being true.
func (c *CardLits) Geq(b int) z.Lit {
	return c.Leq(b - 1).Not()
}

// Card codes the cardinality predicates of ms in dst.  The predicates
// are built as a sorting network in a logic.C, converted to an
// and-inverter network and coded with Network.
func Card(dst LitAdder, ms []z.Lit) *CardLits {
	c := logic.NewCCap(len(ms) * 8)
	ins := make([]z.Lit, len(ms))
	for i := range ins {
		ins[i] = c.Lit()
	}
	cs := c.CardSort(ins)
	roots := make([]z.Lit, len(ms)+1)
	roots[0] = c.T
	for b := 0; b < len(ms); b++ {
		roots[b+1] = cs.Leq(b)
	}
	e := Network(dst, xmg.FromLogic(c, ins, roots...), ms, Options{})
	return &CardLits{t: e.Outs[0], leq: e.Outs[1:]}
}
