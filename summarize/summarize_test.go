package summarize

import (
	"math"
	"testing"

	"github.com/jcreinhold/lesion-metrics/metrics"
)

func TestStatistics(t *testing.T) {
	s := Statistics(Floats([]float64{1, 2, 3, 4, 5}))
	for _, v := range []struct {
		name string
		got  metrics.Result
		want float64
	}{
		{"avg", s.Avg, 3},
		{"min", s.Min, 1},
		{"median", s.Median, 3},
		{"max", s.Max, 5},
		{"q25", s.Q25, 2},
		{"q75", s.Q75, 4},
	} {
		if !v.got.IsDefined() || math.Abs(v.got.Value()-v.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", v.name, v.got.Value(), v.want)
		}
	}
	if !s.Std.IsDefined() || s.Std.Value() <= 0 {
		t.Errorf("std = %v, want > 0", s.Std.Value())
	}
}

// Quartile ranks falling between order statistics interpolate linearly
// rather than snapping to the nearest sample.
func TestStatisticsQuartileInterpolation(t *testing.T) {
	s := Statistics(Floats([]float64{1, 2, 3, 4}))
	for _, v := range []struct {
		name string
		got  metrics.Result
		want float64
	}{
		{"q25", s.Q25, 1.75},
		{"median", s.Median, 2.5},
		{"q75", s.Q75, 3.25},
	} {
		if !v.got.IsDefined() || math.Abs(v.got.Value()-v.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", v.name, v.got.Value(), v.want)
		}
	}
}

func TestStatisticsSkipsUndefined(t *testing.T) {
	s := Statistics([]metrics.Result{
		metrics.Defined(2),
		metrics.Undefined,
		metrics.Defined(4),
	})
	if got := s.Avg.Value(); math.Abs(got-3) > 1e-12 {
		t.Errorf("avg over defined entries = %v, want 3", got)
	}
	if got := s.Max.Value(); got != 4 {
		t.Errorf("max = %v, want 4", got)
	}
}

func TestStatisticsAllUndefined(t *testing.T) {
	s := Statistics([]metrics.Result{metrics.Undefined, metrics.Undefined})
	for _, r := range s.Rows() {
		if r.IsDefined() {
			t.Errorf("expected every statistic undefined, got %v", r.Value())
		}
	}
}

func TestRowsMatchLabels(t *testing.T) {
	if got, want := len(Summary{}.Rows()), len(Labels); got != want {
		t.Errorf("Rows length %d != Labels length %d", got, want)
	}
}
