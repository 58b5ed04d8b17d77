// Package summarize computes cross-pair summary statistics for batches of
// metric results. Undefined results are excluded from every statistic rather
// than silently polluting means and percentiles.
package summarize

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/jcreinhold/lesion-metrics/metrics"
)

// Labels names the summary rows, in the order Rows returns them.
var Labels = []string{"Avg", "Std", "Min", "25%", "50%", "75%", "Max"}

// Summary holds the batch statistics of one metric column. Fields are
// undefined when no defined entries were available.
type Summary struct {
	Avg    metrics.Result
	Std    metrics.Result
	Min    metrics.Result
	Q25    metrics.Result
	Median metrics.Result
	Q75    metrics.Result
	Max    metrics.Result
}

// Rows returns the statistics in Labels order.
func (s Summary) Rows() []metrics.Result {
	return []metrics.Result{s.Avg, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
}

// Statistics summarizes a metric column, skipping undefined entries.
// Quartiles linearly interpolate between order statistics.
func Statistics(values []metrics.Result) Summary {
	defined := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if v.IsDefined() {
			defined = append(defined, v.Value())
		}
	}
	sorted := append(stats.Float64Data{}, defined...)
	sort.Float64s(sorted)
	return Summary{
		Avg:    lift(stats.Mean(defined)),
		Std:    lift(stats.StandardDeviation(defined)),
		Min:    lift(stats.Min(defined)),
		Q25:    lift(quantile(sorted, 0.25)),
		Median: lift(stats.Median(defined)),
		Q75:    lift(quantile(sorted, 0.75)),
		Max:    lift(stats.Max(defined)),
	}
}

// quantile evaluates the quantile of a sorted sample at rank (n-1)*p,
// linearly interpolating between the two nearest order statistics.
func quantile(sorted stats.Float64Data, p float64) (float64, error) {
	if len(sorted) == 0 {
		return math.NaN(), stats.EmptyInput
	}
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo+1 >= len(sorted) {
		return sorted[len(sorted)-1], nil
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo]), nil
}

// Floats wraps a plain scalar column (volumes, lesion counts) as defined
// results so it can share the Statistics path.
func Floats(xs []float64) []metrics.Result {
	out := make([]metrics.Result, len(xs))
	for i, x := range xs {
		out[i] = metrics.Defined(x)
	}
	return out
}

func lift(v float64, err error) metrics.Result {
	if err != nil {
		return metrics.Undefined
	}
	return metrics.Defined(v)
}
