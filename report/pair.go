package report

import (
	"github.com/jcreinhold/lesion-metrics/imgio"
	"github.com/jcreinhold/lesion-metrics/lesion"
	"github.com/jcreinhold/lesion-metrics/metrics"
	"github.com/jcreinhold/lesion-metrics/volume"
)

// Pair is one row of the output table: the full metric battery for a single
// prediction/truth mask pair. Column names match the original report layout.
type Pair struct {
	Pred        string `csv:"Pred"`
	Truth       string `csv:"Truth"`
	Dice        Cell   `csv:"Dice"`
	Jaccard     Cell   `csv:"Jaccard"`
	PPV         Cell   `csv:"PPV"`
	TPR         Cell   `csv:"TPR"`
	LFDR        Cell   `csv:"LFDR"`
	LTPR        Cell   `csv:"LTPR"`
	AVD         Cell   `csv:"AVD"`
	ISBI15      Cell   `csv:"ISBI15 Score"`
	PredVolume  Cell   `csv:"Pred. Vol."`
	TruthVolume Cell   `csv:"Truth. Vol."`
	PredCount   Cell   `csv:"Pred. Count"`
	TruthCount  Cell   `csv:"Truth. Count"`
}

// PairWithCorrelation extends Pair with the batch-level correlation columns,
// populated on the first row only.
type PairWithCorrelation struct {
	Pair
	VolCorrelation   Cell `csv:"Vol. Correlation"`
	CountCorrelation Cell `csv:"Count Correlation"`
}

// Options tunes a pair evaluation.
type Options struct {
	// IoUThreshold is the detection threshold for LFDR/LTPR, in [0,1).
	IoUThreshold float64
	// Unit for the reported volumes. Empty defaults to microliters.
	Unit volume.Unit
	// Unweighted disables the 4/3 rescale of the ISBI15 score.
	Unweighted bool
}

// Evaluate computes the whole battery for one loaded pair. The volumes come
// from the full grids with their spacing; the mask metrics run on squeezed
// grids. The LFDR and LTPR lesion counts are each taken from their own
// computation. A failure surfaces directly: batch callers decide their own
// fault tolerance.
func Evaluate(pred, truth *imgio.Image, opts Options) (Pair, error) {
	unit := opts.Unit
	if unit == "" {
		unit = volume.Microliter
	}

	predSeg, err := volume.NewSegmentation(pred.Grid, pred.Spacing, unit)
	if err != nil {
		return Pair{}, err
	}
	truthSeg, err := volume.NewSegmentation(truth.Grid, truth.Spacing, unit)
	if err != nil {
		return Pair{}, err
	}

	p := pred.Grid.Squeeze()
	t := truth.Grid.Squeeze()

	row := Pair{
		PredVolume:  Float(predSeg.Volume()),
		TruthVolume: Float(truthSeg.Volume()),
	}
	_, row.Pred, _ = imgio.SplitFilename(pred.Path)
	_, row.Truth, _ = imgio.SplitFilename(truth.Path)

	if row.Dice, err = cellOf(metrics.Dice(p, t)); err != nil {
		return Pair{}, err
	}
	if row.Jaccard, err = cellOf(metrics.Jaccard(p, t)); err != nil {
		return Pair{}, err
	}
	if row.PPV, err = cellOf(metrics.PPV(p, t)); err != nil {
		return Pair{}, err
	}
	if row.TPR, err = cellOf(metrics.TPR(p, t)); err != nil {
		return Pair{}, err
	}
	if row.AVD, err = cellOf(metrics.AVD(p, t)); err != nil {
		return Pair{}, err
	}

	lfdr, predCount, err := lesion.LFDR(p, t, opts.IoUThreshold)
	if err != nil {
		return Pair{}, err
	}
	ltpr, truthCount, err := lesion.LTPR(p, t, opts.IoUThreshold)
	if err != nil {
		return Pair{}, err
	}
	row.LFDR = NewCell(lfdr)
	row.LTPR = NewCell(ltpr)
	row.PredCount = Count(predCount)
	row.TruthCount = Count(truthCount)

	row.ISBI15 = NewCell(metrics.ISBI15FromResults(
		row.Dice.Result, row.PPV.Result, lfdr, ltpr, !opts.Unweighted))

	return row, nil
}

func cellOf(r metrics.Result, err error) (Cell, error) {
	if err != nil {
		return Cell{}, err
	}
	return NewCell(r), nil
}
