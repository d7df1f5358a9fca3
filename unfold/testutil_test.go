// SPDX-License-Identifier: MIT
package unfold_test

import (
	"testing"

	"github.com/katalvlaran/unfold/matrix"
	"github.com/stretchr/testify/require"
)

const epsTight = 1e-9

// mustRows builds a Dense or fails the test.
func mustRows(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewFromRows(rows)
	require.NoError(t, err)

	return m
}

func identity(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewIdentity(n)
	require.NoError(t, err)

	return m
}

func ones(m int) []float64 {
	x := make([]float64, m)
	for i := range x {
		x[i] = 1
	}

	return x
}

// wellPosed returns a 3×2 response and the noise-free counts of x = [100, 50].
func wellPosed(t *testing.T) (*matrix.Dense, []float64) {
	t.Helper()

	return mustRows(t, [][]float64{
		{0.8, 0.1},
		{0.3, 0.6},
		{0.1, 0.9},
	}), []float64{85, 60, 55}
}
