// SPDX-License-Identifier: MIT

// Package montecarlo propagates measurement and response uncertainty through
// any unfold.Solver by resampling.
//
// One Propagate call performs Options.Draws independent draws. Draw d:
//
//  1. seeds its own PCG stream from (Options.Seed, d);
//  2. samples N' ~ Normal(N, N_err) and R' ~ Normal(R, R_err) element-wise,
//     handling negative samples per Options.NegativePolicy;
//  3. runs the solver once on (R', N') and stores x in ensemble row d.
//
// The ensemble is reduced column-wise to the mean and the population standard
// deviation over successful draws.
//
// Determinism: a draw depends only on (Seed, d), and reductions run in draw
// order, so equal seeds give identical reports for any worker count.
//
// Failures of individual draws are recorded in Health rather than aborting
// the run; the run fails with ErrTooManyFailures only when the failure rate
// exceeds Options.MaxFailureRate or nothing succeeded.
package montecarlo
