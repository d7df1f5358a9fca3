// SPDX-License-Identifier: MIT

package montecarlo

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates invalid options or inconsistent inputs
	// (shapes, negative or non-finite values). Raised before any draw.
	ErrConfiguration = errors.New("montecarlo: invalid configuration")

	// ErrTooManyFailures indicates that the fraction of failed draws exceeded
	// Options.MaxFailureRate, or that no draw succeeded.
	ErrTooManyFailures = errors.New("montecarlo: too many failed draws")

	// ErrNegativeInput indicates a cell that stayed negative after
	// Options.MaxRedraws resamples under the Redraw policy.
	ErrNegativeInput = errors.New("montecarlo: negative sample after redraws")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
