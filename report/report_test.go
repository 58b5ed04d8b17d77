package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/jcreinhold/lesion-metrics/imgio"
	"github.com/jcreinhold/lesion-metrics/mask"
	"github.com/jcreinhold/lesion-metrics/metrics"
)

// fixturePair builds the reference pair as loaded images with unit spacing.
func fixturePair(t *testing.T) (pred, truth *imgio.Image) {
	t.Helper()
	p, err := mask.NewDense(8, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := mask.NewDense(8, 8, 4)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			for z := 0; z < 2; z++ {
				if err := tr.SetAt(1, x, y, z); err != nil {
					t.Fatal(err)
				}
			}
		}
	}
	for _, c := range [][]int{{5, 5, 0}, {0, 6, 3}} {
		if err := tr.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	for _, c := range [][]int{{0, 0, 0}, {1, 0, 0}, {5, 5, 0}, {7, 0, 3}} {
		if err := p.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	spacing := []float64{1, 1, 1}
	return &imgio.Image{Grid: p, Spacing: spacing, Path: "pred/pred.nii.gz"},
		&imgio.Image{Grid: tr, Spacing: spacing, Path: "truth/truth.nii.gz"}
}

func TestEvaluate(t *testing.T) {
	pred, truth := fixturePair(t)
	row, err := Evaluate(pred, truth, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if row.Pred != "pred" || row.Truth != "truth" {
		t.Errorf("names = %q, %q; want pred, truth", row.Pred, row.Truth)
	}
	for _, v := range []struct {
		name string
		got  Cell
		want float64
	}{
		{"dice", row.Dice, 2 * 3.0 / 14.0},
		{"jaccard", row.Jaccard, 3.0 / 11.0},
		{"ppv", row.PPV, 0.75},
		{"tpr", row.TPR, 0.3},
		{"lfdr", row.LFDR, 1.0 / 3.0},
		{"ltpr", row.LTPR, 2.0 / 3.0},
		{"avd", row.AVD, 0.6},
		{"isbi15", row.ISBI15, 0.6408730158730158},
		{"pred volume", row.PredVolume, 4.0},
		{"truth volume", row.TruthVolume, 10.0},
		{"pred count", row.PredCount, 3},
		{"truth count", row.TruthCount, 3},
	} {
		if !v.got.IsDefined() || math.Abs(v.got.Value()-v.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", v.name, v.got.Value(), v.want)
		}
	}
}

// Volumes come from the full grid with its spacing: a single-slice mask with
// 2 mm slice thickness occupies twice its in-plane area, even though the
// mask metrics run on the squeezed grid.
func TestEvaluateSingleSliceVolume(t *testing.T) {
	p, err := mask.NewDense(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := mask.NewDense(4, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range [][]int{{0, 0, 0}, {1, 0, 0}} {
		if err := p.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	for _, c := range [][]int{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}} {
		if err := tr.SetAt(1, c...); err != nil {
			t.Fatal(err)
		}
	}
	spacing := []float64{1, 1, 2}
	pred := &imgio.Image{Grid: p, Spacing: spacing, Path: "pred.nii.gz"}
	truth := &imgio.Image{Grid: tr, Spacing: spacing, Path: "truth.nii.gz"}

	row, err := Evaluate(pred, truth, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := row.PredVolume.Value(); math.Abs(got-4.0) > 1e-12 {
		t.Errorf("pred volume = %v, want 4 (2 voxels x 2 mm slice)", got)
	}
	if got := row.TruthVolume.Value(); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("truth volume = %v, want 6", got)
	}
	if got := row.Dice.Value(); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("dice = %v, want 0.8", got)
	}
}

func TestEvaluateThresholdValidation(t *testing.T) {
	pred, truth := fixturePair(t)
	if _, err := Evaluate(pred, truth, Options{IoUThreshold: 1.0}); err == nil {
		t.Error("expected an error for an out-of-range threshold")
	}
}

func TestCellMarshal(t *testing.T) {
	for _, v := range []struct {
		cell Cell
		want string
	}{
		{NewCell(metrics.Defined(0.5)), "0.5"},
		{NewCell(metrics.Undefined), ""},
		{Count(3), "3"},
	} {
		got, err := v.cell.MarshalCSV()
		if err != nil {
			t.Fatal(err)
		}
		if got != v.want {
			t.Errorf("MarshalCSV = %q, want %q", got, v.want)
		}
	}

	var c Cell
	if err := c.UnmarshalCSV(""); err != nil || c.IsDefined() {
		t.Errorf("blank field should read back undefined (err %v)", err)
	}
	if err := c.UnmarshalCSV("0.25"); err != nil || c.Value() != 0.25 {
		t.Errorf("field 0.25 read back as %v (err %v)", c.Value(), err)
	}
}

func TestWriteCSV(t *testing.T) {
	pred, truth := fixturePair(t)
	row, err := Evaluate(pred, truth, Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []*Pair{&row}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d CSV lines, want header + 1 row:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Pred,Truth,Dice,Jaccard,PPV,TPR,LFDR,LTPR,AVD,ISBI15 Score") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "pred,truth,") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}
