// SPDX-License-Identifier: MIT
package unfold_test

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/unfold/matrix"
	"github.com/katalvlaran/unfold/unfold"
	"github.com/stretchr/testify/require"
)

func algorithms() []unfold.Algorithm {
	return []unfold.Algorithm{unfold.MLEM{}, unfold.Gravel{}}
}

// TestIdentityRecovery: with R = I the first correction lands on N and the
// second difference of J flattens by the fourth iteration.
func TestIdentityRecovery(t *testing.T) {
	t.Parallel()

	for _, alg := range algorithms() {
		alg := alg
		t.Run(alg.Name(), func(t *testing.T) {
			t.Parallel()

			n := []float64{10, 20}
			res, err := alg.Unfold(context.Background(), identity(t, 2), n, ones(2), unfold.DefaultOptions())
			require.NoError(t, err)
			require.InDeltaSlice(t, n, res.X, 1e-6)
			require.Equal(t, unfold.StopPlateau, res.Stop)
			require.Equal(t, 4, res.Iterations)
			require.Len(t, res.History, 4)
			require.Len(t, res.Fit, 4)
			require.InDelta(t, 221, res.Fit[0], 1e-6)
		})
	}
}

func TestEarlyAcceptance(t *testing.T) {
	t.Parallel()

	r, n := wellPosed(t)
	for _, alg := range algorithms() {
		alg := alg
		t.Run(alg.Name(), func(t *testing.T) {
			t.Parallel()

			res, err := alg.Unfold(context.Background(), r, n, ones(2), unfold.DefaultOptions())
			require.NoError(t, err)
			require.Equal(t, unfold.StopAccepted, res.Stop)
			require.Equal(t, 2, res.Iterations)
			require.Len(t, res.History, 1)
			require.Len(t, res.Fit, 2)
			require.InDelta(t, 1, res.Fit[1], 0.1)
		})
	}
}

// TestFitNonIncreasing: on a noise-free well-posed problem J never grows,
// and with acceptance disabled the run plateaus close to the truth.
func TestFitNonIncreasing(t *testing.T) {
	t.Parallel()

	r, n := wellPosed(t)
	opts := unfold.DefaultOptions()
	opts.AcceptanceWindow = 0

	for _, alg := range algorithms() {
		alg := alg
		t.Run(alg.Name(), func(t *testing.T) {
			t.Parallel()

			res, err := alg.Unfold(context.Background(), r, n, ones(2), opts)
			require.NoError(t, err)
			require.Equal(t, unfold.StopPlateau, res.Stop)
			for k := 1; k < len(res.Fit); k++ {
				require.LessOrEqual(t, res.Fit[k], res.Fit[k-1], "iteration %d", k+1)
			}
			require.InDelta(t, 100, res.X[0], 0.1)
			require.InDelta(t, 50, res.X[1], 0.1)
		})
	}
}

// TestIteratesStayNonNegative runs random non-negative problems, including
// zero-count channels, and checks every returned estimate.
func TestIteratesStayNonNegative(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))
	opts := unfold.DefaultOptions()
	for trial := 0; trial < 20; trial++ {
		rows, cols := 2+rng.IntN(5), 2+rng.IntN(5)
		data := make([][]float64, rows)
		for i := range data {
			data[i] = make([]float64, cols)
			for j := range data[i] {
				data[i][j] = rng.Float64()
			}
		}
		n := make([]float64, rows)
		for i := range n {
			if rng.IntN(4) > 0 {
				n[i] = 100 * rng.Float64()
			}
		}
		x0, err := unfold.InitialGuess(cols, unfold.GuessRandom, rng)
		require.NoError(t, err)
		r := mustRows(t, data)

		for _, alg := range algorithms() {
			for _, limit := range []int{1, 5, 50} {
				opts.MaxIterations = limit
				res, err := alg.Unfold(context.Background(), r, n, x0, opts)
				if err != nil {
					require.ErrorIs(t, err, unfold.ErrNonConvergence)
				}
				for j, v := range res.X {
					require.GreaterOrEqual(t, v, 0.0, "%s trial %d bin %d", alg.Name(), trial, j)
				}
			}
		}
	}
}

func TestNonConvergence(t *testing.T) {
	t.Parallel()

	r, n := wellPosed(t)
	opts := unfold.DefaultOptions()
	opts.AcceptanceWindow = 0
	opts.Tolerance = 1e-12
	opts.MaxIterations = 3

	for _, alg := range algorithms() {
		res, err := alg.Unfold(context.Background(), r, n, ones(2), opts)
		require.ErrorIs(t, err, unfold.ErrNonConvergence)

		var nce *unfold.NonConvergenceError
		require.ErrorAs(t, err, &nce)
		require.Equal(t, alg.Name(), nce.Algorithm)
		require.Equal(t, 3, nce.Iterations)
		require.Greater(t, nce.LastDelta, opts.Tolerance)
		require.Equal(t, 3, res.Iterations)
		require.Len(t, res.X, 2)
		require.Equal(t, unfold.StopNone, res.Stop)
	}
}

func TestUnfoldCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, n := wellPosed(t)
	for _, alg := range algorithms() {
		res, err := alg.Unfold(ctx, r, n, ones(2), unfold.DefaultOptions())
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, res.Iterations)
		require.Equal(t, ones(2), res.X, "cancelled before the first step")
	}
}

func TestUnfoldDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	r, n := wellPosed(t)
	before := r.Clone()
	x0 := ones(2)
	nCopy := append([]float64(nil), n...)

	for _, alg := range algorithms() {
		_, err := alg.Unfold(context.Background(), r, n, x0, unfold.DefaultOptions())
		require.NoError(t, err)
	}
	require.Equal(t, before, r)
	require.Equal(t, nCopy, n)
	require.Equal(t, ones(2), x0)
}

func TestUnfoldConfigurationErrors(t *testing.T) {
	t.Parallel()

	r, n := wellPosed(t)
	zeroCol := mustRows(t, [][]float64{{1, 0}, {1, 0}})
	negative := mustRows(t, [][]float64{{1, -1}, {1, 1}})

	cases := []struct {
		name   string
		r      *matrix.Dense
		n, x0  []float64
		mutate func(*unfold.Options)
		inner  error
	}{
		{name: "nil response", r: nil, n: n, x0: ones(2), inner: matrix.ErrNilMatrix},
		{name: "zero column", r: zeroCol, n: []float64{1, 1}, x0: ones(2), inner: matrix.ErrZeroColumn},
		{name: "negative response", r: negative, n: []float64{1, 1}, x0: ones(2), inner: matrix.ErrNegative},
		{name: "counts length", r: r, n: []float64{1, 2}, x0: ones(2)},
		{name: "negative counts", r: r, n: []float64{1, -2, 3}, x0: ones(2), inner: matrix.ErrNegative},
		{name: "guess length", r: r, n: n, x0: ones(3)},
		{name: "zero guess", r: r, n: n, x0: []float64{1, 0}},
		{name: "tolerance", r: r, n: n, x0: ones(2), mutate: func(o *unfold.Options) { o.Tolerance = 0 }},
		{name: "cap", r: r, n: n, x0: ones(2), mutate: func(o *unfold.Options) { o.MaxIterations = 0 }},
		{name: "window", r: r, n: n, x0: ones(2), mutate: func(o *unfold.Options) { o.AcceptanceWindow = -1 }},
		{name: "epsilon", r: r, n: n, x0: ones(2), mutate: func(o *unfold.Options) { o.Epsilon = 0 }},
		{name: "guess kind", r: r, n: n, x0: ones(2), mutate: func(o *unfold.Options) { o.Guess = 7 }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := unfold.DefaultOptions()
			if tc.mutate != nil {
				tc.mutate(&opts)
			}
			for _, alg := range algorithms() {
				_, err := alg.Unfold(context.Background(), tc.r, tc.n, tc.x0, opts)
				require.ErrorIs(t, err, unfold.ErrConfiguration)
				if tc.inner != nil {
					require.ErrorIs(t, err, tc.inner)
				}
			}
		})
	}
}

// TestZeroCountRecovery: with R = I a zero count drives its bin to 0 and
// both algorithms agree.
func TestZeroCountRecovery(t *testing.T) {
	t.Parallel()

	n := []float64{0, 5}
	for _, alg := range algorithms() {
		alg := alg
		t.Run(alg.Name(), func(t *testing.T) {
			t.Parallel()

			res, err := alg.Unfold(context.Background(), identity(t, 2), n, ones(2), unfold.DefaultOptions())
			require.NoError(t, err)
			require.Equal(t, unfold.StopPlateau, res.Stop)
			require.Equal(t, 4, res.Iterations)
			require.InDeltaSlice(t, n, res.X, 1e-6)
			for _, v := range res.X {
				require.False(t, math.IsNaN(v))
			}
		})
	}
}
