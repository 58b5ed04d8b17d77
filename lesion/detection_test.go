package lesion

import (
	"math"
	"testing"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// fixture builds the reference 3-D pair: truth lesions of 8, 1, and 1
// voxels, predicted lesions of 2, 1, and 1 voxels, intersecting in 3 voxels;
// one predicted lesion and one truth lesion overlap nothing.
func fixture(t *testing.T) (pred, truth *mask.Dense) {
	t.Helper()
	pred, err := mask.NewDense(8, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	truth, err = mask.NewDense(8, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				if err := truth.SetAt(1, x, y, z); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	for _, c := range [][]int{{5, 5, 0}, {0, 6, 3}} {
		if err := truth.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	for _, c := range [][]int{{0, 0, 0}, {1, 0, 0}, {5, 5, 0}, {7, 0, 3}} {
		if err := pred.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	return pred, truth
}

func TestIoUPerLesion(t *testing.T) {
	pred, truth := fixture(t)

	predIoUs, n, err := IoUPerLesion(pred, truth)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("pred lesion count = %d, want 3", n)
	}
	// Lesion at the origin sits fully inside the truth block; the lone
	// voxel at (5,5,0) matches exactly; (7,0,3) overlaps nothing.
	for i, want := range []float64{1, 1, 0} {
		if math.Abs(predIoUs[i]-want) > 1e-12 {
			t.Errorf("pred lesion %d IoU = %v, want %v", i+1, predIoUs[i], want)
		}
	}

	truthIoUs, n, err := IoUPerLesion(truth, pred)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("truth lesion count = %d, want 3", n)
	}
	// First-encounter raster order labels the block first, then (0,6,3)
	// (overlapping nothing), then (5,5,0) (matched exactly).
	for i, want := range []float64{2.0 / 8.0, 0, 1} {
		if math.Abs(truthIoUs[i]-want) > 1e-12 {
			t.Errorf("truth lesion %d IoU = %v, want %v", i+1, truthIoUs[i], want)
		}
	}
}

func TestDetectionRates(t *testing.T) {
	pred, truth := fixture(t)

	lfdr, predCount, err := LFDR(pred, truth, 0)
	if err != nil {
		t.Fatal(err)
	}
	if predCount != 3 {
		t.Errorf("pred count = %d, want 3", predCount)
	}
	if want := 1.0 / 3.0; math.Abs(lfdr.Value()-want) > 1e-12 {
		t.Errorf("lfdr = %v, want %v", lfdr.Value(), want)
	}

	ltpr, truthCount, err := LTPR(pred, truth, 0)
	if err != nil {
		t.Fatal(err)
	}
	if truthCount != 3 {
		t.Errorf("truth count = %d, want 3", truthCount)
	}
	if want := 2.0 / 3.0; math.Abs(ltpr.Value()-want) > 1e-12 {
		t.Errorf("ltpr = %v, want %v", ltpr.Value(), want)
	}
}

func TestDetectionRatesZeroLesions(t *testing.T) {
	empty, err := mask.NewDense(8, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	pred, truth := fixture(t)

	lfdr, n, err := LFDR(empty, truth, 0)
	if err != nil {
		t.Fatal(err)
	}
	if lfdr.IsDefined() || n != 0 {
		t.Errorf("lfdr with zero predicted lesions: defined=%v n=%d, want undefined and 0", lfdr.IsDefined(), n)
	}

	ltpr, n, err := LTPR(pred, empty, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ltpr.IsDefined() || n != 0 {
		t.Errorf("ltpr with zero truth lesions: defined=%v n=%d, want undefined and 0", ltpr.IsDefined(), n)
	}
}

func TestThresholdValidation(t *testing.T) {
	pred, truth := fixture(t)
	for _, bad := range []float64{-0.1, 1.0, 1.5, math.NaN()} {
		if _, _, err := LFDR(pred, truth, bad); err == nil {
			t.Errorf("LFDR accepted threshold %v", bad)
		}
		if _, _, err := LTPR(pred, truth, bad); err == nil {
			t.Errorf("LTPR accepted threshold %v", bad)
		}
	}
}

// A lesion whose IoU lands exactly on the threshold is a miss for both
// rates: LFDR counts it a false positive (<=), LTPR does not count it a true
// positive (strict >).
func TestThresholdComparatorAsymmetry(t *testing.T) {
	pred, err := mask.NewDense(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	truth, err := mask.NewDense(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Two-voxel runs overlapping in one voxel: IoU is exactly 1/2 from both
	// lesions' bounding boxes.
	for _, c := range [][]int{{0, 0}, {1, 0}} {
		if err := pred.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	for _, c := range [][]int{{1, 0}, {2, 0}} {
		if err := truth.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}

	lfdr, _, err := LFDR(pred, truth, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if lfdr.Value() != 1 {
		t.Errorf("lfdr at threshold = %v, want 1 (false positive)", lfdr.Value())
	}

	ltpr, _, err := LTPR(pred, truth, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if ltpr.Value() != 0 {
		t.Errorf("ltpr at threshold = %v, want 0 (miss)", ltpr.Value())
	}
}

func TestISBI15Score(t *testing.T) {
	pred, truth := fixture(t)
	got, err := ISBI15Score(pred, truth, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	if want := 0.6408730158730158; math.Abs(got.Value()-want) > 1e-3 {
		t.Errorf("isbi15 = %v, want %v", got.Value(), want)
	}
}
