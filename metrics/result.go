// Package metrics implements the voxel-level agreement metrics between a
// predicted and a ground-truth binary segmentation, the ISBI 2015 composite
// score, and Pearson correlation across a batch of scalar volumes.
package metrics

import "math"

// Result is a metric value that is either a computed scalar or explicitly
// undefined (zero denominator). Keeping the tag explicit means an undefined
// metric cannot be silently summed or averaged: aggregators must decide what
// to do with undefined entries.
type Result struct {
	value   float64
	defined bool
}

// Defined wraps a computed value.
func Defined(v float64) Result {
	return Result{value: v, defined: true}
}

// Undefined is the sentinel for mathematically meaningless results.
var Undefined = Result{value: math.NaN()}

// IsDefined reports whether the metric was computable.
func (r Result) IsDefined() bool { return r.defined }

// Value returns the computed scalar, or NaN when the result is undefined.
func (r Result) Value() float64 {
	if !r.defined {
		return math.NaN()
	}
	return r.value
}
