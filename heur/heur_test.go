// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package heur

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/exact/backend"
	"github.com/go-air/exact/gen"
	"github.com/go-air/exact/inter"
	"github.com/go-air/exact/search"
	"github.com/go-air/exact/tt"
	"github.com/go-air/exact/xmg"
)

func controller(t *testing.T, basis xmg.Basis, opts ...search.Option) *search.Controller {
	t.Helper()
	cfg := search.Defaults()
	cfg.Basis = basis
	l, _ := test.NewNullLogger()
	c, err := search.New(cfg, append([]search.Option{search.WithLogger(l)}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestUpperBound(t *testing.T) {
	gen.Seed(21)
	for _, basis := range []xmg.Basis{xmg.MIG, xmg.XMG, xmg.AIG} {
		gen.All(3, func(f tt.T) bool {
			p := UpperBound(search.FromTable(f), basis)
			require.True(t, p.Table(0).Equal(f), "%s %s\n%s", basis, f, p)
			for _, k := range []xmg.Kind{xmg.KMaj, xmg.KXor, xmg.KAnd} {
				if basis.Has(k) {
					continue
				}
				p.PostOrder(func(id int) {
					assert.NotEqual(t, k, p.Kind(xmg.NodeLit(id)), "%s %s", basis, f)
				}, p.Outputs()...)
			}
			return true
		})
	}
}

func TestUpperBoundNetwork(t *testing.T) {
	p := xmg.New(3)
	p.AddOutput(p.Maj(p.In(0), p.In(1), p.In(2)))
	tg, err := search.FromNetwork(p)
	require.NoError(t, err)
	q := UpperBound(tg, xmg.MIG)
	assert.Equal(t, 1, q.Size())
	assert.Greater(t, UpperBound(search.FromTable(p.Table(0)), xmg.MIG).Size(), 1)
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		f     tt.T
		basis xmg.Basis
		size  int
	}{
		{tt.New(3, 0xe8), xmg.MIG, 1},
		{tt.New(3, 0x96), xmg.XMG, 2},
		{tt.New(3, 0x80), xmg.AIG, 2},
	} {
		res, err := Run(context.Background(), controller(t, tc.basis), search.FromTable(tc.f))
		require.NoError(t, err)
		require.NotNil(t, res.Network)
		assert.True(t, res.Network.Table(0).Equal(tc.f))
		assert.Equal(t, tc.size, res.Network.Size(), "%s %s", tc.basis, tc.f)
		assert.Equal(t, tc.size, res.Stats.LastSize)
		assert.True(t, res.Stats.OptimumProved)
		assert.Greater(t, res.Stats.Probes, 0)
	}
}

// TestIdempotent runs the wrapper on its own result: the size stays and
// the optimum is proved by a single probe.
func TestIdempotent(t *testing.T) {
	c := controller(t, xmg.XMG)
	res, err := Run(context.Background(), c, search.FromTable(tt.New(3, 0x96)))
	require.NoError(t, err)
	tg, err := search.FromNetwork(res.Network)
	require.NoError(t, err)
	again, err := Run(context.Background(), c, tg)
	require.NoError(t, err)
	assert.Equal(t, res.Network.Size(), again.Network.Size())
	assert.True(t, again.Stats.OptimumProved)
	assert.Equal(t, 1, again.Stats.Probes)
}

func TestSmallBound(t *testing.T) {
	c := controller(t, xmg.AIG)
	for _, f := range []tt.T{tt.Var(2, 0), tt.New(2, 0x8)} {
		res, err := Run(context.Background(), c, search.FromTable(f))
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Network.Size(), 1)
		assert.False(t, res.Stats.OptimumProved)
		assert.Equal(t, 0, res.Stats.Probes)
	}
}

func TestTimeout(t *testing.T) {
	slow := func(kind string, opts backend.Options) (inter.Backend, error) {
		b, err := backend.New(kind, opts)
		return gen.Delayed(b, time.Hour), err
	}
	cfg := search.Defaults()
	cfg.Timeout = 20 * time.Millisecond
	l, hook := test.NewNullLogger()
	c, err := search.New(cfg, search.WithLogger(l), search.WithBackendFactory(slow))
	require.NoError(t, err)
	f := tt.New(3, 0xe8)
	res, err := Run(context.Background(), c, search.FromTable(f))
	require.NoError(t, err)
	require.NotNil(t, res.Network)
	assert.True(t, res.Network.Table(0).Equal(f))
	assert.False(t, res.Stats.OptimumProved)
	assert.Equal(t, 1, res.Stats.Timeouts)
	assert.NotEmpty(t, hook.AllEntries())
}
