// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package heur bounds exact synthesis from above by a fast construction
// and tightens the bound by probes of decreasing size.
package heur

import (
	"context"
	"time"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/go-air/exact/search"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

// UpperBound returns a network for t in basis, built by Shannon
// expansion as an and-inverter graph and converted to basis.  For network
// targets the smaller of that and the target network is returned.
func UpperBound(t *search.Target, basis xmg.Basis) *xmg.N {
	if p, ok := t.Trivial(); ok {
		return p
	}
	f := t.Table()
	c := logic.NewC()
	ins := make([]z.Lit, f.N())
	for i := range ins {
		ins[i] = c.Lit()
	}
	memo := make(map[uint64]z.Lit)
	var shannon func(g tt.T) z.Lit
	shannon = func(g tt.T) z.Lit {
		if v, ok := g.IsConst(); ok {
			if v {
				return c.T
			}
			return c.F
		}
		if i, neg, ok := g.IsLiteral(); ok {
			if neg {
				return ins[i].Not()
			}
			return ins[i]
		}
		if m, ok := memo[g.Bits()]; ok {
			return m
		}
		sup := g.Support()
		i := sup[len(sup)-1]
		m := c.Choice(ins[i], shannon(g.Cofactor(i, true)), shannon(g.Cofactor(i, false)))
		memo[g.Bits()] = m
		return m
	}
	best := xmg.FromLogic(c, ins, shannon(f)).Convert(basis)
	if q := t.Network(); q != nil {
		if q = q.Convert(basis); q.Size() < best.Size() {
			best = q
		}
	}
	return best
}

// Run improves the upper bound of t by probes of ctrl for networks with
// fewer gates than the best found, until a probe fails to find one,
// which proves the best optimum, or times out.  An upper bound of at most
// one gate is returned as is, not proved.
func Run(ctx context.Context, ctrl *search.Controller, t *search.Target) (*search.Result, error) {
	start := time.Now()
	cfg := ctrl.Config()
	log := ctrl.Logger().WithFields(logrus.Fields{"target": t.String(), "basis": cfg.Basis.String()})
	best := UpperBound(t, cfg.Basis)
	res := &search.Result{}
	finish := func(proved bool) *search.Result {
		res.Network = best
		res.Stats.LastSize = best.Size()
		res.Stats.LastDepth = best.Depth()
		res.Stats.OptimumProved = proved
		res.Stats.Runtime = time.Since(start).Seconds()
		return res
	}
	log.WithField("size", best.Size()).Debug("upper bound")
	if best.Size() <= 1 {
		return finish(false), nil
	}
	for s := best.Size() - 1; s >= 1; s = best.Size() - 1 {
		pr, err := ctrl.Probe(ctx, t, s, 0)
		if pr != nil {
			res.Stats.Add(pr.Stats)
		}
		switch {
		case errors.Is(err, search.ErrTimeout):
			log.WithField("size", s).Warn("probe timed out, optimum not proved")
			return finish(false), nil
		case err != nil:
			return finish(false), err
		case pr.Network == nil:
			log.WithField("size", best.Size()).Debug("optimum proved")
			return finish(true), nil
		}
		best = pr.Network
		log.WithField("size", best.Size()).Debug("improved")
	}
	// t is not trivial, so there is no network without gates
	return finish(true), nil
}
