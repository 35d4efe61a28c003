// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"math/rand"
	"sync"

	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

/// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// Table generates a random truth table over n inputs.
func Table(n int) tt.T {
	mu.Lock()
	defer mu.Unlock()
	return tt.New(n, rng.Uint64())
}

// Tables generates k random truth tables over n inputs which all depend
// on every input.
func Tables(n, k int) []tt.T {
	res := make([]tt.T, 0, k)
	for len(res) < k {
		t := Table(n)
		if len(t.Support()) == n {
			res = append(res, t)
		}
	}
	return res
}

// All calls f on every truth table over n inputs, in increasing order,
// until f returns false.  n must be at most 4.
func All(n int, f func(t tt.T) bool) {
	if n > 4 {
		panic("gen.All: too many functions")
	}
	e := uint64(1) << (uint(1) << uint(n))
	for b := uint64(0); b < e; b++ {
		if !f(tt.New(n, b)) {
			return
		}
	}
}

// Network generates a random single output network over nin inputs with
// ngates gates of the kinds of basis b.  Every gate refers to earlier
// nodes; the output is the last gate.
func Network(nin, ngates int, b xmg.Basis) *xmg.N {
	mu.Lock()
	defer mu.Unlock()
	p := xmg.New(nin)
	kinds := b.Kinds()
	pick := func() xmg.Lit {
		return xmg.NodeLit(rng.Intn(p.Len())).Cond(rng.Intn(2) == 1)
	}
	out := xmg.F
	for i := 0; i < ngates; i++ {
		k := kinds[rng.Intn(len(kinds))]
		ins := make([]xmg.Lit, k.Arity())
		for j := range ins {
			ins[j] = pick()
		}
		out = p.Add(k, ins...)
	}
	p.AddOutput(out)
	return p
}
