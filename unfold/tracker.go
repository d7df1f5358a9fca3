// SPDX-License-Identifier: MIT

package unfold

// Tracker owns the stopping policy of the iterative solvers.
//
// Per observed fit J:
//  1. |J − 1| < window ⇒ StopAccepted. The history is not extended.
//  2. Otherwise ΔJ = Jprev − J, dd = |ΔJ − ΔJprev|; dd is appended to the
//     history and dd ≤ tolerance ⇒ StopPlateau.
//
// Jprev starts at 0 and ΔJprev at 1, so the first dd is |−J − 1| and a
// plateau can never be declared on the first observation.
//
// A Tracker is not safe for concurrent use; each solve owns one.
type Tracker struct {
	tolerance float64
	window    float64

	prevJ  float64
	prevDJ float64

	history []float64
	fit     []float64
}

// NewTracker returns a tracker with the given plateau tolerance and
// acceptance window.
func NewTracker(tolerance, window float64) *Tracker {
	return &Tracker{tolerance: tolerance, window: window, prevJ: 0, prevDJ: 1}
}

// Observe records J and reports whether the run should stop, and why.
// Complexity: O(1) amortised.
func (t *Tracker) Observe(J float64) (StopReason, bool) {
	t.fit = append(t.fit, J)

	d := J - 1
	if d < 0 {
		d = -d
	}
	if d < t.window {
		return StopAccepted, true
	}

	dJ := t.prevJ - J
	dd := dJ - t.prevDJ
	if dd < 0 {
		dd = -dd
	}
	t.history = append(t.history, dd)
	t.prevJ, t.prevDJ = J, dJ
	if dd <= t.tolerance {
		return StopPlateau, true
	}

	return StopNone, false
}

// History returns the recorded |ΔJₖ − ΔJₖ₋₁| values. The slice is owned by
// the tracker.
func (t *Tracker) History() []float64 { return t.history }

// Fit returns every observed J, including an accepted final one.
func (t *Tracker) Fit() []float64 { return t.fit }

// LastDelta returns the most recent dd, or 0 before the first non-accepted
// observation.
func (t *Tracker) LastDelta() float64 {
	if len(t.history) == 0 {
		return 0
	}

	return t.history[len(t.history)-1]
}
