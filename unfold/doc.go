// SPDX-License-Identifier: MIT

// Package unfold reconstructs a discretised neutron spectrum x from measured
// counts N and a detector response R (n channels × m energy bins) so that
// R·x ≈ N.
//
// Iterative back-ends share one driver and differ only in the multiplicative
// correction applied to x each step:
//
//   - MLEM: x[j] ← x[j]·(Σᵢ R[i,j]·v[i]) / Σᵢ R[i,j], with v = (N+ε)/(R·x+ε).
//   - GRAVEL: x[j] ← x[j]·exp(Σᵢ W[i,j]·ln v[i] / Σᵢ W[i,j]),
//     with Poisson weights W[i,j] = N[i]·R[i,j]·x[j] / (R·x+ε)[i].
//
// Both corrections are multiplicative, so a positive initial guess and a
// non-negative problem keep every iterate non-negative.
//
// Stopping is delegated to a Tracker over the reduced chi-square-like fit
// J = Σ(N−q)²/Σq, q = R·x+ε: the run is accepted as soon as |J−1| falls inside
// Options.AcceptanceWindow, and otherwise ends on a plateau of the second
// difference |ΔJₖ − ΔJₖ₋₁| below Options.Tolerance. Reaching
// Options.MaxIterations is a *NonConvergenceError.
//
// Direct back-ends solve the linear system without iteration: SolveExact
// (LU, square and well-conditioned R only) and SolvePinv (Moore–Penrose
// pseudo-inverse through a thin SVD). Neither enforces x ≥ 0.
//
// NewSolver selects any of the four behind the Solver interface consumed by
// the Monte Carlo driver.
//
// All entry points are pure: inputs are never mutated, nothing is logged, and
// every failure is a sentinel error matched with errors.Is / errors.As.
package unfold
