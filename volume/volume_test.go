package volume

import (
	"math"
	"testing"

	"github.com/jcreinhold/lesion-metrics/mask"
)

func fourVoxelMask(t *testing.T) *mask.Dense {
	t.Helper()
	d, err := mask.NewDense(4, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range [][]int{{0, 0, 0}, {1, 0, 0}, {2, 2, 2}, {3, 3, 3}} {
		if err := d.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestVolume(t *testing.T) {
	m := fourVoxelMask(t)
	for _, v := range []struct {
		spacing []float64
		unit    Unit
		want    float64
	}{
		{[]float64{1, 1, 1}, Microliter, 4.0},
		{[]float64{1, 1, 1}, Milliliter, 0.004},
		{[]float64{1, 1, 1}, Liter, 0.000004},
		{[]float64{0.5, 0.5, 2}, Microliter, 2.0},
	} {
		seg, err := NewSegmentation(m, v.spacing, v.unit)
		if err != nil {
			t.Fatalf("spacing %v: %v", v.spacing, err)
		}
		if got := seg.Volume(); math.Abs(got-v.want) > 1e-12 {
			t.Errorf("Volume with spacing %v in %s = %v, want %v", v.spacing, v.unit, got, v.want)
		}
	}
}

func TestSegmentationValidation(t *testing.T) {
	m := fourVoxelMask(t)
	for _, v := range []struct {
		name    string
		spacing []float64
		unit    Unit
	}{
		{"wrong rank", []float64{1, 1}, Microliter},
		{"zero spacing", []float64{1, 0, 1}, Microliter},
		{"negative spacing", []float64{1, -2, 1}, Microliter},
		{"inf spacing", []float64{1, math.Inf(1), 1}, Microliter},
		{"nan spacing", []float64{1, math.NaN(), 1}, Microliter},
		{"bad unit", []float64{1, 1, 1}, Unit("hogshead")},
	} {
		if _, err := NewSegmentation(m, v.spacing, v.unit); err == nil {
			t.Errorf("%s: expected an error", v.name)
		}
	}
}
