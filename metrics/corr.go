package metrics

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/stat"
)

// Corr computes the Pearson correlation coefficient between two equal-length
// sequences of scalars, e.g. predicted vs. true lesion volumes across a
// batch of image pairs. Sequences must have the same length, at least 2.
// A degenerate input (constant sequence, hence zero variance) yields the
// explicit undefined result rather than a silent NaN.
func Corr(xs, ys []float64) (Result, error) {
	if len(xs) != len(ys) {
		return Undefined, pfx.Err(fmt.Errorf("sequence length mismatch: %d vs %d", len(xs), len(ys)))
	}
	if len(xs) < 2 {
		return Undefined, pfx.Err(fmt.Errorf("correlation needs at least 2 observations, got %d", len(xs)))
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) {
		return Undefined, nil
	}
	return Defined(r), nil
}
