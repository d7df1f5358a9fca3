// SPDX-License-Identifier: MIT

package unfold

import (
	"context"
	"fmt"

	"github.com/katalvlaran/unfold/matrix"
)

// Result is the outcome of one solve.
type Result struct {
	// X is the spectrum estimate, length m. Owned by the caller.
	X []float64

	// History holds one |ΔJₖ − ΔJₖ₋₁| per non-accepted iteration.
	// Empty for direct solvers.
	History []float64

	// Fit holds J per iteration, including an accepted final one.
	Fit []float64

	// Iterations is the number of completed iterations (0 for direct solvers).
	Iterations int

	// Stop tells which criterion ended the run.
	Stop StopReason
}

// Algorithm is an iterative unfolding back-end.
type Algorithm interface {
	// Name is the lower-case method name ("mlem", "gravel").
	Name() string

	// Unfold iterates from x0 until a stopping criterion holds.
	// r, n and x0 are read-only; the result owns fresh slices.
	Unfold(ctx context.Context, r *matrix.Dense, n, x0 []float64, opts Options) (Result, error)
}

// workspace holds the per-solve buffers shared by every correction.
type workspace struct {
	r   *matrix.Dense
	n   []float64
	eps float64

	q []float64 // R·x + ε, length n
	v []float64 // (N + ε) / q, length n

	// scratch; corrections use them freely between projections
	rowTmp []float64 // length n
	colA   []float64 // length m
	colB   []float64 // length m

	invColSum []float64 // 1 / Σᵢ R[i,j]
}

func newWorkspace(r *matrix.Dense, n []float64, eps float64) (*workspace, error) {
	sums, err := matrix.ColumnSums(r)
	if err != nil {
		return nil, err
	}
	for j := range sums {
		sums[j] = 1 / sums[j]
	}
	rows, cols := r.Shape()

	return &workspace{
		r:         r,
		n:         n,
		eps:       eps,
		q:         make([]float64, rows),
		v:         make([]float64, rows),
		rowTmp:    make([]float64, rows),
		colA:      make([]float64, cols),
		colB:      make([]float64, cols),
		invColSum: sums,
	}, nil
}

// project fills q = R·x + ε and v = (N + ε)/q.
func (ws *workspace) project(x []float64) error {
	if err := matrix.MatVecTo(ws.q, ws.r, x); err != nil {
		return err
	}
	for i := range ws.q {
		ws.q[i] += ws.eps
		ws.v[i] = (ws.n[i] + ws.eps) / ws.q[i]
	}

	return nil
}

// fit returns J = Σ(N − q)² / Σq for the current projection.
func (ws *workspace) fit() float64 {
	var num, den float64
	for i, q := range ws.q {
		d := ws.n[i] - q
		num += d * d
		den += q
	}

	return num / den
}

// stepFunc applies one multiplicative correction to x in place, using the
// projection already stored in ws.
type stepFunc func(ws *workspace, x []float64) error

// iterate is the driver shared by MLEM and GRAVEL.
//
// Stage 1 (validate): options and problem, before any arithmetic.
// Stage 2 (loop): cancellation check → projection → correction → fit →
// tracker, at most opts.MaxIterations times.
// Stage 3 (cap): *NonConvergenceError with the partial result.
//
// J is computed from the projection that drove the correction, so the fit of
// iteration k describes the iterate k−1.
//
// Complexity: O(MaxIterations·n·m) time, O(n + m) extra memory.
func iterate(ctx context.Context, name string, r *matrix.Dense, n, x0 []float64, opts Options, step stepFunc) (Result, error) {
	if err := validateIterative(r, n, x0, opts); err != nil {
		return Result{}, fmt.Errorf("unfold: %s: %w", name, err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ws, err := newWorkspace(r, n, opts.Epsilon)
	if err != nil {
		return Result{}, fmt.Errorf("unfold: %s: %w", name, err)
	}

	x := make([]float64, len(x0))
	copy(x, x0)
	tr := NewTracker(opts.Tolerance, opts.AcceptanceWindow)
	result := func(k int, reason StopReason) Result {
		return Result{X: x, History: tr.History(), Fit: tr.Fit(), Iterations: k, Stop: reason}
	}

	for k := 1; k <= opts.MaxIterations; k++ {
		if err = ctx.Err(); err != nil {
			return result(k-1, StopNone), fmt.Errorf("unfold: %s: iteration %d: %w", name, k, err)
		}
		if err = ws.project(x); err != nil {
			return result(k-1, StopNone), fmt.Errorf("unfold: %s: %w", name, err)
		}
		if err = step(ws, x); err != nil {
			return result(k-1, StopNone), fmt.Errorf("unfold: %s: %w", name, err)
		}
		if reason, stop := tr.Observe(ws.fit()); stop {
			return result(k, reason), nil
		}
	}

	fits := tr.Fit()

	return result(opts.MaxIterations, StopNone), &NonConvergenceError{
		Algorithm:  name,
		Iterations: opts.MaxIterations,
		LastDelta:  tr.LastDelta(),
		Fit:        fits[len(fits)-1],
	}
}
