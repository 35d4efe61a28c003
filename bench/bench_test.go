// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/exact/search"
	"github.com/go-air/exact/xmg"
)

func TestSelectAll(t *testing.T) {
	fs := SelectAll(2)
	assert.Len(t, fs, 10)
	for _, f := range fs {
		assert.Len(t, f.Support(), 2, "%s", f)
	}
	assert.Len(t, SelectRandom(4, 7), 7)
}

func TestSuiteRun(t *testing.T) {
	root := filepath.Join(t.TempDir(), "s2")
	s, err := CreateSuite(root, SelectAll(2))
	require.NoError(t, err)
	assert.True(t, IsSuiteDir(root))
	_, err = CreateSuite(root, nil)
	assert.Error(t, err)

	cfg := search.Defaults()
	r, err := s.Run("mig", cfg, 0)
	require.NoError(t, err)
	assert.True(t, IsRunDir(r.Root))
	l, _ := test.NewNullLogger()
	require.NoError(t, r.Do(context.Background(), 2, search.WithLogger(l)))
	assert.Equal(t, 10, ProvedTotal(r))
	assert.Equal(t, map[int]int{1: 8, 3: 2}, Histogram(r))

	cfg.Basis = xmg.XMG
	x, err := s.Run("xmg", cfg, 0)
	require.NoError(t, err)
	require.NoError(t, x.Do(context.Background(), 0, search.WithLogger(l)))
	assert.Equal(t, map[int]int{1: 10}, Histogram(x))
	assert.Len(t, Compare(r, x), 2)

	_, err = s.Run("mig", cfg, 0)
	assert.Error(t, err, "duplicate run")
	_, err = s.Run("a/b", cfg, 0)
	assert.Error(t, err)

	o, err := OpenSuite(root)
	require.NoError(t, err)
	require.Len(t, o.Runs, 2)
	assert.Equal(t, s.Tables, o.Tables)
	for i, r := range o.Runs {
		assert.Equal(t, s.Runs[i].Name, r.Name)
		assert.Equal(t, s.Runs[i].Config, r.Config)
		require.Len(t, r.InstRuns, 10)
		for j, ir := range r.InstRuns {
			want := s.Runs[i].InstRuns[j]
			assert.Equal(t, want.Size, ir.Size)
			assert.Equal(t, want.Result, ir.Result)
			require.NotNil(t, ir.Net)
			assert.Equal(t, o.Tables[j], ir.Net.Table(0))
		}
	}
	sum := Summary(o)
	assert.Contains(t, sum, "mig")
	assert.Contains(t, sum, "xmg")
	assert.Len(t, strings.Split(Listing(o), "\n"), 11)

	require.NoError(t, o.RemoveRun("xmg"))
	assert.Len(t, o.Runs, 1)
	o, err = OpenSuite(root)
	require.NoError(t, err)
	assert.Len(t, o.Runs, 1)
}

func TestRunTimeout(t *testing.T) {
	s, err := CreateSuite(filepath.Join(t.TempDir(), "s"), SelectRandom(3, 3))
	require.NoError(t, err)
	cfg := search.Defaults()
	cfg.Basis = xmg.AIG
	r, err := s.Run("short", cfg, 1)
	require.NoError(t, err)
	l, _ := test.NewNullLogger()
	require.NoError(t, r.Do(context.Background(), 1, search.WithLogger(l)))
	require.Len(t, r.InstRuns, 3)
	for _, ir := range r.InstRuns {
		assert.NotEqual(t, 1, ir.Result, "%s", ir.Table)
		assert.NotEmpty(t, ir.Error)
	}
}
