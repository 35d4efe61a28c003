// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/go-air/gini/z"

	"github.com/go-air/exact/inter"
)

// Delayed wraps b in a backend whose Solve waits for a random period of
// time chosen from [0..d) before solving with b.  If the context of Solve
// expires while waiting, Solve returns inter.ErrTimeout.
//
// This is useful for testing the handling of timeouts by applications
// using inter.Backend.
func Delayed(b inter.Backend, d time.Duration) inter.Backend {
	return DelayedR(b, d, rand.NewSource(33))
}

// DelayedR is like Delayed with a given source of randomness.
func DelayedR(b inter.Backend, d time.Duration, src rand.Source) inter.Backend {
	return &delayed{Backend: b, dur: d, rand: rand.New(src)}
}

type delayed struct {
	inter.Backend
	mu   sync.Mutex
	dur  time.Duration
	rand *rand.Rand
	st   inter.Stats
}

func (r *delayed) Solve(ctx context.Context, ms ...z.Lit) (*inter.Model, error) {
	r.mu.Lock()
	w := time.Duration(0)
	if ns := r.dur.Nanoseconds(); ns > 0 {
		w = time.Duration(r.rand.Int63n(ns))
	}
	r.mu.Unlock()
	alarm := time.NewTimer(w)
	defer alarm.Stop()
	select {
	case <-alarm.C:
		return r.Backend.Solve(ctx, ms...)
	case <-ctx.Done():
		r.mu.Lock()
		r.st.Record(0, w)
		r.mu.Unlock()
		return nil, inter.ErrTimeout
	}
}

func (r *delayed) Stats() inter.Stats {
	st := r.Backend.Stats()
	r.mu.Lock()
	defer r.mu.Unlock()
	st.Add(r.st)
	return st
}
