// SPDX-License-Identifier: MIT

// Package config loads the YAML run configuration of an unfolding job and
// turns it into solver, Monte Carlo, rebin and logging settings.
//
// A document may be partial: absent keys keep the values of Default.
// Unknown keys are rejected.
package config
