// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package enc

import (
	"fmt"

	"github.com/go-air/gini/z"
)

// AddDepth codes the depth of every slot in unary: a literal for each
// slot i and level t in 1..i+1 which is implied by slot i having depth at
// least t.  It is called at most once, before DepthBound.
func (c *Candidate) AddDepth() {
	if c.depth != nil {
		return
	}
	c.depth = make([][]z.Lit, len(c.Slots))
	for i := range c.Slots {
		g := make([]z.Lit, i+1)
		for t := range g {
			g[t] = c.dst.Lit()
		}
		clause(c.dst, g[0])
		c.depth[i] = g
		for _, s := range c.Slots[i].Sel {
			for l := 0; l < i; l++ {
				e := s.Eq(c.Source(l)).Not()
				for t, h := range c.depth[l] {
					clause(c.dst, e, h.Not(), g[t+1])
				}
			}
		}
	}
}

// DepthBound returns a literal which limits the depth of the output to at
// most d, or z.LitNull if d does not limit c.  AddDepth must have been
// called.
func (c *Candidate) DepthBound(d int) z.Lit {
	if c.depth == nil {
		panic("depth bound without depth coding")
	}
	if d < 1 {
		panic(fmt.Sprintf("depth bound %d", d))
	}
	g := c.depth[len(c.depth)-1]
	if d >= len(g) {
		return z.LitNull
	}
	return g[d].Not()
}
