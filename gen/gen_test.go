// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

func TestTables(t *testing.T) {
	Seed(3)
	for _, f := range Tables(4, 20) {
		if len(f.Support()) != 4 {
			t.Errorf("%s does not depend on all inputs", f)
		}
	}
}

func TestAll(t *testing.T) {
	n := 0
	All(2, func(f tt.T) bool {
		n++
		return true
	})
	if n != 16 {
		t.Errorf("got %d functions of 2 inputs", n)
	}
	n = 0
	All(3, func(f tt.T) bool {
		n++
		return n < 5
	})
	if n != 5 {
		t.Errorf("All did not stop: %d", n)
	}
}

func TestNetwork(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := Network(4, 6, xmg.XMG)
		if p.NumGates() != 6 || p.NumOutputs() != 1 {
			t.Errorf("bad network\n%s", p)
		}
	}
}

func TestDelayed(t *testing.T) {
	b := Delayed(backend.NewGini(backend.Options{}), time.Hour)
	inter.Clause(b, b.Lit())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := b.Solve(ctx)
	if !errors.Is(err, inter.ErrTimeout) {
		t.Errorf("expected timeout, got %v", err)
	}
	if b.Stats().Timeouts != 1 {
		t.Errorf("timeout not recorded")
	}
	q := Delayed(backend.NewGophersat(backend.Options{}), time.Millisecond)
	inter.Clause(q, q.Lit())
	m, err := q.Solve(context.Background())
	if err != nil || m == nil {
		t.Errorf("delayed solve: %v %v", m, err)
	}
}
