// Copyright 2024 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveProbe(t *testing.T) {
	before := testutil.ToFloat64(probeCount.WithLabelValues("mig", Unsat))
	ObserveProbe("mig", Unsat)
	ObserveProbe("mig", Unsat)
	ObserveProbe("mig", Sat)
	assert.Equal(t, before+2, testutil.ToFloat64(probeCount.WithLabelValues("mig", Unsat)))
}

func TestLastSize(t *testing.T) {
	SetLastSize("xmg", 4)
	SetLastSize("xmg", 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(lastSize.WithLabelValues("xmg")))
}

func TestSolutions(t *testing.T) {
	before := testutil.ToFloat64(solutionCount)
	AddSolutions(12)
	assert.Equal(t, before+12, testutil.ToFloat64(solutionCount))
}

func TestRegister(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, Register(reg))
	ObserveSolve("gini", 3*time.Millisecond)
	ObserveSynthesis(Proved, time.Second)
	n, err := testutil.GatherAndCount(reg, "exact_solve_duration_seconds", "exact_synthesis_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Error(t, Register(reg), "registered twice")
}
