// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package search

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/enc"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

// Target is the function to synthesize, given by a truth table or by a
// single output network.
type Target struct {
	f tt.T
	p *xmg.N
}

// FromTable returns the target computing f.
func FromTable(f tt.T) *Target {
	return &Target{f: f}
}

// FromNetwork returns the target computing the output of p.  Results
// for network targets are additionally checked for equivalence with p.
func FromNetwork(p *xmg.N) (*Target, error) {
	if p.NumOutputs() != 1 {
		return nil, errors.Errorf("target network has %d outputs, expected 1", p.NumOutputs())
	}
	if p.NumInputs() > tt.MaxVars {
		return nil, errors.Errorf("target network has %d inputs, at most %d supported", p.NumInputs(), tt.MaxVars)
	}
	return &Target{f: p.Table(0), p: p}, nil
}

// NumInputs returns the number of inputs of t.
func (t *Target) NumInputs() int { return t.f.N() }

// Table returns the truth table of t.
func (t *Target) Table() tt.T { return t.f }

// Network returns the network t was given by, or nil.
func (t *Target) Network() *xmg.N { return t.p }

func (t *Target) String() string {
	if t.p != nil {
		return fmt.Sprintf("network %s", t.f)
	}
	return t.f.String()
}

// Trivial returns the network without gates computing t, if there is
// one.
func (t *Target) Trivial() (*xmg.N, bool) {
	n := t.f.N()
	if v, ok := t.f.IsConst(); ok {
		p := xmg.New(n)
		p.AddOutput(xmg.F.Cond(v))
		return p, true
	}
	if i, neg, ok := t.f.IsLiteral(); ok {
		p := xmg.New(n)
		p.AddOutput(p.In(i).Cond(neg))
		return p, true
	}
	return nil, false
}

// verify panics unless p computes t.
func (t *Target) verify(p *xmg.N) {
	if g := p.Table(0); !g.Equal(t.f) {
		panic(fmt.Sprintf("network computes %s, expected %s\n%s", g, t.f, p))
	}
	if t.p == nil {
		return
	}
	m, err := miter(t.p, p)
	if err != nil {
		panic(fmt.Sprintf("miter: %v", err))
	}
	if m != nil {
		panic(fmt.Sprintf("network differs from the target network\n%s", p))
	}
}

// miter returns a non-nil model if p and q differ on some input.  Only
// the answer is used, so the model is empty.
func miter(p, q *xmg.N) (*inter.Model, error) {
	b := backend.NewGini(backend.Options{})
	b.SetModelGeneration(false)
	return b.Solve(context.Background(), enc.Miter(b, p, q))
}
