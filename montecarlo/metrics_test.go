// SPDX-License-Identifier: MIT
package montecarlo

import (
	"context"
	"strings"
	"testing"

	"github.com/katalvlaran/unfold/matrix"
	"github.com/katalvlaran/unfold/unfold"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecordRun(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	r, err := matrix.NewIdentity(2)
	require.NoError(t, err)
	rErr, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	solver, err := unfold.NewSolver(unfold.MethodMLEM, unfold.DefaultOptions())
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Draws = 50
	opts.Metrics = m
	_, err = Propagate(context.Background(), solver, []float64{10, 20}, []float64{3, 4}, r, rErr, opts)
	require.NoError(t, err)

	require.Equal(t, 50.0, testutil.ToFloat64(m.draws.WithLabelValues(outcomeSuccess)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.draws.WithLabelValues(outcomeFailure)))
	require.Equal(t, 0.0, testutil.ToFloat64(m.clipped.WithLabelValues(inputResponse)))
	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 7, count) // two outcomes, two inputs, three unlabelled

	expected := `
# HELP unfold_montecarlo_redraws_total Negative samples resampled under the redraw policy.
# TYPE unfold_montecarlo_redraws_total counter
unfold_montecarlo_redraws_total 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "unfold_montecarlo_redraws_total"))
}

func TestNewMetricsDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	require.Error(t, err)

	m, err := NewMetrics(nil)
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestNilMetricsObserve(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() { m.observe(Health{Requested: 1}, nil, 0) })
}
