// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package backend

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	ggen "github.com/go-air/gini/gen"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/exact/inter"
)

func each(t *testing.T, f func(t *testing.T, b inter.Backend)) {
	for _, k := range Kinds() {
		k := k
		t.Run(k, func(t *testing.T) {
			b, err := New(k, Options{})
			require.NoError(t, err)
			f(t, b)
		})
	}
}

func satisfies(t *testing.T, r *Recorder, m *inter.Model) {
	for i, c := range r.Clauses() {
		ok := false
		for _, l := range c {
			if m.Value(l) {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("clause %d %v not satisfied", i, c)
		}
	}
}

func TestPhp(t *testing.T) {
	each(t, func(t *testing.T, b inter.Backend) {
		r := NewRecorder()
		ggen.Php(r, 3, 2)
		r.Replay(b)
		m, err := b.Solve(context.Background())
		require.NoError(t, err)
		assert.Nil(t, m)
	})
	each(t, func(t *testing.T, b inter.Backend) {
		r := NewRecorder()
		ggen.Php(r, 3, 3)
		r.Replay(b)
		m, err := b.Solve(context.Background())
		require.NoError(t, err)
		require.NotNil(t, m)
		satisfies(t, r, m)
	})
}

func TestAssumptions(t *testing.T) {
	each(t, func(t *testing.T, b inter.Backend) {
		x, y := b.Lit(), b.Lit()
		inter.Clause(b, x, y)
		m, err := b.Solve(context.Background(), x.Not(), y.Not())
		require.NoError(t, err)
		assert.Nil(t, m, "unsat under assumptions")
		m, err = b.Solve(context.Background(), x.Not())
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.True(t, m.Value(y))
		assert.Equal(t, inter.False, m.Get(x))
		m, err = b.Solve(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, m, "assumptions hold for one call")
		st := b.Stats()
		assert.Equal(t, 3, st.Solves)
		assert.Equal(t, 1, st.Unsat)
		assert.Equal(t, 1, st.Clauses)
	})
}

func TestDifferential(t *testing.T) {
	ggen.Seed(17)
	for i := 0; i < 40; i++ {
		r := NewRecorder()
		ggen.Rand3Cnf(r, 20, 86)
		var res []bool
		for _, k := range Kinds() {
			b, err := New(k, Options{})
			require.NoError(t, err)
			r.Replay(b)
			m, err := b.Solve(context.Background())
			require.NoError(t, err)
			if m != nil {
				satisfies(t, r, m)
			}
			res = append(res, m != nil)
		}
		for _, v := range res[1:] {
			if v != res[0] {
				t.Errorf("instance %d: backends disagree: %v", i, res)
			}
		}
	}
}

func TestTimeout(t *testing.T) {
	each(t, func(t *testing.T, b inter.Backend) {
		ggen.Php(b, 3, 2)
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()
		_, err := b.Solve(ctx)
		assert.True(t, errors.Is(err, inter.ErrTimeout))
		assert.Equal(t, 1, b.Stats().Timeouts)
	})
}

func TestCancelWithoutDeadline(t *testing.T) {
	b := NewGini(Options{Poll: time.Millisecond})
	ggen.Php(b, 4, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m, err := b.Solve(ctx)
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestCardSort(t *testing.T) {
	each(t, func(t *testing.T, b inter.Backend) {
		c := logic.NewC()
		ms := make([]z.Lit, 6)
		for i := range ms {
			ms[i] = c.Lit()
		}
		leq := c.CardSort(ms).Leq(1)
		c.ToCnf(b)
		inter.Clause(b, leq)
		m, err := b.Solve(context.Background(), ms[1], ms[4])
		require.NoError(t, err)
		assert.Nil(t, m)
		m, err = b.Solve(context.Background(), ms[4])
		require.NoError(t, err)
		require.NotNil(t, m)
		for i, l := range ms {
			if i != 4 && m.Value(l) {
				t.Errorf("lit %d true besides 4", i)
			}
		}
	})
}

func TestModelGeneration(t *testing.T) {
	each(t, func(t *testing.T, b inter.Backend) {
		x := b.Lit()
		inter.Clause(b, x)
		b.SetModelGeneration(false)
		m, err := b.Solve(context.Background())
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.False(t, m.Known(x.Var()))
	})
}

func TestRecorderDimacs(t *testing.T) {
	r := NewRecorder()
	ggen.Php(r, 2, 2)
	var buf bytes.Buffer
	require.NoError(t, r.WriteCnf(&buf, "php 2 2"))
	assert.True(t, strings.HasPrefix(buf.String(), "c php 2 2\np cnf 4 "))
}

func TestNew(t *testing.T) {
	_, err := New("minisat", Options{})
	assert.Error(t, err)
	assert.True(t, Known("Gini"))
	assert.True(t, Incremental(KindGini))
	assert.False(t, Incremental(KindGophersat))
}
