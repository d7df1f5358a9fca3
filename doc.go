// Package unfold is a neutron spectrum unfolding engine: it reconstructs a
// discretised energy spectrum from detector counts and a response matrix, and
// propagates the measurement uncertainty onto the result.
//
// 🚀 What is inside?
//
//	• Rebinning: integral-preserving aggregation of a fine response onto
//	  coarse energy bins, with a Maxwell–Boltzmann weighted thermal bin
//	• Iterative unfolding: MLEM and GRAVEL behind one Algorithm interface,
//	  with a shared convergence tracker
//	• Direct solves: LU (square, well-conditioned) and pseudo-inverse (any shape)
//	• Monte Carlo: resampled ensembles on a bounded worker pool, with
//	  reproducible per-draw seeding and an ensemble health report
//
// Packages:
//
//	matrix/       row-major Dense container, validators, kernels, column statistics
//	rebin/        fine → coarse response rebinning
//	unfold/       MLEM, GRAVEL, LU, SVD pseudo-inverse and the Solver selector
//	montecarlo/   uncertainty propagation, health report, Prometheus metrics
//	config/       YAML run configuration
//
// Quick pipeline:
//
//	R, Rerr  ← rebin.Matrix(E, fine, fineErr, edges, rebin.WithThermal())
//	solver   ← unfold.NewSolver(unfold.MethodMLEM, unfold.DefaultOptions())
//	report   ← montecarlo.Propagate(ctx, solver, N, Nerr, R, Rerr, opts)
//
// report.Mean is the spectrum, report.Std its 1σ uncertainty per bin.
//
//	go get github.com/katalvlaran/unfold
package unfold
