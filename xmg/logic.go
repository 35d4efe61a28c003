// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package xmg

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

// FromLogic converts the part of c reachable from roots into an and-inverter
// network.  ins gives the literals of c which are the inputs of the
// result, in order; roots become the outputs.
func FromLogic(c *logic.C, ins []z.Lit, roots ...z.Lit) *N {
	q := NewCap(len(ins), c.Len()+1)
	m := make(map[z.Var]Lit, c.Len())
	m[c.T.Var()] = T.Cond(!c.T.IsPos())
	for i, in := range ins {
		m[in.Var()] = q.In(i).Cond(!in.IsPos())
	}
	tr := func(a z.Lit) Lit {
		return m[a.Var()].Cond(!a.IsPos())
	}
	type frame struct {
		v    z.Var
		done bool
	}
	var stack []frame
	for _, root := range roots {
		stack = append(stack[:0], frame{v: root.Var()})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if _, ok := m[f.v]; ok {
				continue
			}
			a, b := c.Ins(f.v.Pos())
			if a == z.LitNull {
				panic("logic input not among ins")
			}
			if f.done {
				m[f.v] = q.And(tr(a), tr(b))
				continue
			}
			stack = append(stack, frame{v: f.v, done: true}, frame{v: a.Var()}, frame{v: b.Var()})
		}
		q.AddOutput(tr(root))
	}
	return q
}
