// SPDX-License-Identifier: MIT

package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/unfold/matrix"
)

// ExampleMatVec computes the expected detector counts R·x for a 2-channel,
// 3-bin response.
func ExampleMatVec() {
	r, _ := matrix.NewFromRows([][]float64{
		{0.2, 0.5, 0.1},
		{0.0, 0.3, 0.9},
	})
	q, _ := matrix.MatVec(r, []float64{10, 20, 30})
	fmt.Printf("%.1f %.1f\n", q[0], q[1])

	// Output:
	// 15.0 33.0
}

// ExampleColumnMeanStd reduces a small ensemble of spectra.
func ExampleColumnMeanStd() {
	ens, _ := matrix.NewFromRows([][]float64{
		{9, 21},
		{11, 19},
	})
	mean, std, _ := matrix.ColumnMeanStd(ens)
	fmt.Println(mean, std)

	// Output:
	// [10 20] [1 1]
}
