// SPDX-License-Identifier: MIT

package montecarlo

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"strings"
	"time"
)

// Defaults (single source of truth).
const (
	DefaultDraws          = 1000
	DefaultMaxRedraws     = 100
	DefaultMaxFailureRate = 0.05
)

// NegativePolicy decides what happens to a sampled count or response cell
// that falls below zero.
type NegativePolicy int

const (
	// ClipToZero replaces the sample by 0 and counts it in Health.
	ClipToZero NegativePolicy = iota
	// Redraw resamples the cell up to Options.MaxRedraws times.
	Redraw
)

// String implements fmt.Stringer.
func (p NegativePolicy) String() string {
	switch p {
	case ClipToZero:
		return "clip"
	case Redraw:
		return "redraw"
	default:
		return fmt.Sprintf("NegativePolicy(%d)", int(p))
	}
}

// ParseNegativePolicy maps "clip" / "redraw" (any case) to a policy.
func ParseNegativePolicy(s string) (NegativePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clip":
		return ClipToZero, nil
	case "redraw":
		return Redraw, nil
	default:
		return 0, configErrorf("unknown negative policy %q", s)
	}
}

// Options configures Propagate.
type Options struct {
	// Draws is the number of Monte Carlo draws. Must be > 0.
	Draws int

	// Seed is the base seed; 0 selects a fixed default.
	Seed uint64

	// Workers bounds concurrent draws; ≤ 0 means runtime.GOMAXPROCS(0).
	Workers int

	// NegativePolicy handles negative samples.
	NegativePolicy NegativePolicy

	// MaxRedraws bounds resampling of one cell under Redraw. Must be > 0
	// when NegativePolicy is Redraw.
	MaxRedraws int

	// MaxFailureRate is the tolerated fraction of failed draws, in [0, 1].
	MaxFailureRate float64

	// DrawTimeout bounds each solve; 0 disables the per-draw deadline.
	DrawTimeout time.Duration

	// Logger receives per-failure debug records and a run summary.
	// nil discards.
	Logger *slog.Logger

	// Metrics, when non-nil, receives run counters and histograms.
	Metrics *Metrics
}

// DefaultOptions returns the defaults: 1000 draws, default seed, GOMAXPROCS
// workers, clip-to-zero, 5 % failure tolerance, no per-draw deadline.
func DefaultOptions() Options {
	return Options{
		Draws:          DefaultDraws,
		NegativePolicy: ClipToZero,
		MaxRedraws:     DefaultMaxRedraws,
		MaxFailureRate: DefaultMaxFailureRate,
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// validateOptions checks the option set in isolation.
// Complexity: O(1).
func validateOptions(o Options) error {
	switch {
	case o.Draws <= 0:
		return configErrorf("draws %d must be > 0", o.Draws)
	case o.NegativePolicy != ClipToZero && o.NegativePolicy != Redraw:
		return configErrorf("unknown negative policy %v", o.NegativePolicy)
	case o.NegativePolicy == Redraw && o.MaxRedraws <= 0:
		return configErrorf("max redraws %d must be > 0 under redraw", o.MaxRedraws)
	case math.IsNaN(o.MaxFailureRate) || o.MaxFailureRate < 0 || o.MaxFailureRate > 1:
		return configErrorf("max failure rate %g must be in [0, 1]", o.MaxFailureRate)
	case o.DrawTimeout < 0:
		return configErrorf("draw timeout %v must be ≥ 0", o.DrawTimeout)
	}

	return nil
}
