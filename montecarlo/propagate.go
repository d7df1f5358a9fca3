// SPDX-License-Identifier: MIT

package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/katalvlaran/unfold/internal/logging"
	"github.com/katalvlaran/unfold/matrix"
	"github.com/katalvlaran/unfold/unfold"
	"golang.org/x/sync/errgroup"
)

// Health summarises the ensemble of one run.
type Health struct {
	Requested       int     // Options.Draws
	Succeeded       int     // draws that contributed to the ensemble
	Failed          int     // Requested − Succeeded
	ClippedCounts   int     // count samples clipped to zero
	ClippedResponse int     // response samples clipped to zero
	Redrawn         int     // resamples under the Redraw policy
	FailureRate     float64 // Failed / Requested
	FirstFailure    error   // error of the lowest failed draw index, or nil
}

// Report is the outcome of Propagate.
type Report struct {
	Mean   []float64 // column mean of the ensemble, length m
	Std    []float64 // population standard deviation, length m
	Health Health
}

// drawOutcome is written by exactly one worker, at its draw index.
type drawOutcome struct {
	x               []float64
	err             error
	iterations      int
	clippedCounts   int
	clippedResponse int
	redrawn         int
}

// Propagate runs opts.Draws resampled solves of (r, n) and reduces them to a
// mean spectrum and its standard deviation.
//
// Stage 1 (validate): options, input shapes, and the nominal problem when
// the solver implements unfold.Validator; failures wrap ErrConfiguration.
// Stage 2 (draws): a bounded errgroup evaluates draws concurrently; each
// draw seeds its own stream, samples N' and R', and calls solver.Solve.
// Per-draw errors are recorded, never fatal.
// Stage 3 (reduce): in draw order, collect successes, build Health, compute
// the column mean and population std, emit logs and metrics.
//
// Cancelling ctx aborts the run with the context error.
//
// Complexity: O(Draws·(n·m + solve)) time, O(Draws·m) memory.
func Propagate(ctx context.Context, solver unfold.Solver, n, nErr []float64, r, rErr *matrix.Dense, opts Options) (Report, error) {
	start := time.Now()
	if err := validateInputs(solver, n, nErr, r, rErr, opts); err != nil {
		return Report{}, fmt.Errorf("montecarlo: Propagate: %w", err)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	outcomes := make([]drawOutcome, opts.Draws)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for d := 0; d < opts.Draws; d++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[d] = runDraw(gctx, d, solver, n, nErr, r, rErr, opts)
			return nil
		})
	}
	_ = g.Wait() // draws never return errors
	if err := ctx.Err(); err != nil {
		return Report{}, fmt.Errorf("montecarlo: Propagate: %w", err)
	}

	// Stage 3: reduce in draw order.
	h := Health{Requested: opts.Draws}
	m := r.Cols()
	var (
		rows       [][]float64
		iterations []int
	)
	for d := range outcomes {
		o := &outcomes[d]
		h.ClippedCounts += o.clippedCounts
		h.ClippedResponse += o.clippedResponse
		h.Redrawn += o.redrawn
		if o.err == nil && len(o.x) != m {
			o.err = fmt.Errorf("%w: solver returned %d bins, want %d", ErrConfiguration, len(o.x), m)
		}
		if o.err != nil {
			h.Failed++
			if h.FirstFailure == nil {
				h.FirstFailure = fmt.Errorf("draw %d: %w", d, o.err)
			}
			log.Debug("draw failed", "draw", d, "error", o.err)
			continue
		}
		h.Succeeded++
		rows = append(rows, o.x)
		if o.iterations > 0 {
			iterations = append(iterations, o.iterations)
		}
	}
	h.FailureRate = float64(h.Failed) / float64(h.Requested)

	opts.Metrics.observe(h, iterations, time.Since(start))
	log.Info("monte carlo run complete",
		"draws", h.Requested,
		"succeeded", h.Succeeded,
		"failed", h.Failed,
		"clipped_counts", h.ClippedCounts,
		"clipped_response", h.ClippedResponse,
		"redrawn", h.Redrawn,
		"elapsed", time.Since(start),
	)

	if h.Succeeded == 0 || h.FailureRate > opts.MaxFailureRate {
		log.Warn("failure rate above threshold",
			"failure_rate", h.FailureRate,
			"max_failure_rate", opts.MaxFailureRate,
			"error", h.FirstFailure,
		)
		return Report{Health: h}, fmt.Errorf("montecarlo: Propagate: %w: %d of %d draws failed (rate %.3g > %.3g): %w",
			ErrTooManyFailures, h.Failed, h.Requested, h.FailureRate, opts.MaxFailureRate, h.FirstFailure)
	}

	ensemble, err := matrix.NewFromRows(rows)
	if err != nil {
		return Report{Health: h}, fmt.Errorf("montecarlo: Propagate: %w", err)
	}
	mean, std, err := matrix.ColumnMeanStd(ensemble)
	if err != nil {
		return Report{Health: h}, fmt.Errorf("montecarlo: Propagate: %w", err)
	}

	return Report{Mean: mean, Std: std, Health: h}, nil
}

// runDraw evaluates draw d. The solver sees a private R' and N'; the draw's
// stream continues into the solver's rng after sampling.
func runDraw(ctx context.Context, d int, solver unfold.Solver, n, nErr []float64, r, rErr *matrix.Dense, opts Options) drawOutcome {
	src := drawSource(opts.Seed, d)
	s := newSampler(src, opts)

	out := drawOutcome{}
	record := func(err error) drawOutcome {
		out.err = err
		out.clippedCounts, out.clippedResponse, out.redrawn = s.clippedCounts, s.clippedResponse, s.redrawn
		return out
	}

	nPrime := make([]float64, len(n))
	if err := s.counts(nPrime, n, nErr); err != nil {
		return record(err)
	}
	rPrime := r.Clone()
	if err := s.response(rPrime, r, rErr); err != nil {
		return record(err)
	}

	if opts.DrawTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.DrawTimeout)
		defer cancel()
	}
	res, err := solver.Solve(ctx, rPrime, nPrime, rand.New(src))
	if err != nil {
		return record(err)
	}
	if res.X == nil {
		return record(errors.New("solver returned no estimate"))
	}
	if err = matrix.ValidateVecFinite(res.X); err != nil {
		return record(err)
	}
	out.x = res.X
	out.iterations = res.Iterations

	return record(nil)
}

// validateInputs checks options and the problem before any draw.
// Complexity: O(n·m).
func validateInputs(solver unfold.Solver, n, nErr []float64, r, rErr *matrix.Dense, opts Options) error {
	if err := validateOptions(opts); err != nil {
		return err
	}
	if solver == nil {
		return configErrorf("nil solver")
	}
	if err := matrix.ValidateSameShape(r, rErr); err != nil {
		return fmt.Errorf("%w: response/error: %w", ErrConfiguration, err)
	}
	if err := matrix.ValidateNonNegative(r); err != nil {
		return fmt.Errorf("%w: response: %w", ErrConfiguration, err)
	}
	if err := matrix.ValidateNonNegative(rErr); err != nil {
		return fmt.Errorf("%w: response error: %w", ErrConfiguration, err)
	}
	if len(n) != r.Rows() || len(nErr) != r.Rows() {
		return configErrorf("counts %d / count errors %d, want %d", len(n), len(nErr), r.Rows())
	}
	if err := matrix.ValidateVecNonNegative(n); err != nil {
		return fmt.Errorf("%w: counts: %w", ErrConfiguration, err)
	}
	if err := matrix.ValidateVecNonNegative(nErr); err != nil {
		return fmt.Errorf("%w: count errors: %w", ErrConfiguration, err)
	}
	if v, ok := solver.(unfold.Validator); ok {
		if err := v.Validate(r, n); err != nil {
			return fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}

	return nil
}
