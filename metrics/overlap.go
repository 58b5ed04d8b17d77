package metrics

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// Dice computes the Dice coefficient 2|P∩T| / (|P|+|T|) between predicted
// and true binary masks. Undefined when both masks are empty. Symmetric in
// its arguments.
func Dice(pred, truth mask.Label) (Result, error) {
	p, t, err := binarize(pred, truth)
	if err != nil {
		return Undefined, err
	}
	inter, err := p.And(t)
	if err != nil {
		return Undefined, err
	}
	cardinality := p.Sum() + t.Sum()
	if cardinality == 0 {
		return Undefined, nil
	}
	return Defined(2 * inter.Sum() / cardinality), nil
}

// Jaccard computes the Jaccard index (IoU) |P∩T| / |P∪T| between predicted
// and true binary masks. Undefined when the union is empty. Symmetric.
func Jaccard(pred, truth mask.Label) (Result, error) {
	p, t, err := binarize(pred, truth)
	if err != nil {
		return Undefined, err
	}
	inter, err := p.And(t)
	if err != nil {
		return Undefined, err
	}
	union, err := p.Or(t)
	if err != nil {
		return Undefined, err
	}
	u := union.Sum()
	if u == 0 {
		return Undefined, nil
	}
	return Defined(inter.Sum() / u), nil
}

// PPV computes the positive predictive value (precision) |P∩T| / |P|.
// Undefined when the prediction is empty. PPV(pred, truth) equals
// TPR(truth, pred).
func PPV(pred, truth mask.Label) (Result, error) {
	p, t, err := binarize(pred, truth)
	if err != nil {
		return Undefined, err
	}
	inter, err := p.And(t)
	if err != nil {
		return Undefined, err
	}
	denom := p.Sum()
	if denom == 0 {
		return Undefined, nil
	}
	return Defined(inter.Sum() / denom), nil
}

// TPR computes the true positive rate (sensitivity) |P∩T| / |T|. Undefined
// when the truth is empty.
func TPR(pred, truth mask.Label) (Result, error) {
	p, t, err := binarize(pred, truth)
	if err != nil {
		return Undefined, err
	}
	inter, err := p.And(t)
	if err != nil {
		return Undefined, err
	}
	denom := t.Sum()
	if denom == 0 {
		return Undefined, nil
	}
	return Defined(inter.Sum() / denom), nil
}

// AVD computes the absolute volume difference ||P|-|T|| / |T|. Undefined
// when the truth is empty. Not symmetric.
func AVD(pred, truth mask.Label) (Result, error) {
	p, t, err := binarize(pred, truth)
	if err != nil {
		return Undefined, err
	}
	denom := t.Sum()
	if denom == 0 {
		return Undefined, nil
	}
	return Defined(math.Abs(p.Sum()-t.Sum()) / denom), nil
}

// binarize validates that the two grids share a shape and thresholds both at
// zero. Shape mismatch is a caller error and fails before any computation.
func binarize(pred, truth mask.Label) (mask.Label, mask.Label, error) {
	if !mask.SameShape(pred, truth) {
		return nil, nil, pfx.Err(fmt.Errorf("mask shape mismatch: pred %v vs truth %v", pred.Shape(), truth.Shape()))
	}
	return pred.GreaterThan(0), truth.GreaterThan(0), nil
}
