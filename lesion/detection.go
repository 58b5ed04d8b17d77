package lesion

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"

	"github.com/jcreinhold/lesion-metrics/mask"
	"github.com/jcreinhold/lesion-metrics/metrics"
)

// LFDR computes the lesion false-discovery rate: the fraction of predicted
// lesions whose IoU against the truth mask is <= iouThreshold. Undefined
// when the prediction has zero lesions. The predicted-lesion count is
// returned alongside the rate.
//
// Note the comparator: a predicted lesion exactly at the threshold counts as
// a false positive, mirroring LTPR's strict > so that a lesion at the
// threshold is a miss for both rates.
func LFDR(pred, truth mask.Label, iouThreshold float64) (metrics.Result, int, error) {
	if err := checkThreshold(iouThreshold); err != nil {
		return metrics.Undefined, 0, err
	}
	ious, n, err := IoUPerLesion(pred, truth)
	if err != nil {
		return metrics.Undefined, 0, err
	}
	if n == 0 {
		return metrics.Undefined, 0, nil
	}
	falsePositives := 0
	for _, iou := range ious {
		if iou <= iouThreshold {
			falsePositives++
		}
	}
	return metrics.Defined(float64(falsePositives) / float64(n)), n, nil
}

// LTPR computes the lesion true-positive rate: the fraction of truth lesions
// whose IoU against the prediction mask is > iouThreshold (strict).
// Undefined when the truth has zero lesions. The truth-lesion count is
// returned alongside the rate.
func LTPR(pred, truth mask.Label, iouThreshold float64) (metrics.Result, int, error) {
	if err := checkThreshold(iouThreshold); err != nil {
		return metrics.Undefined, 0, err
	}
	ious, n, err := IoUPerLesion(truth, pred)
	if err != nil {
		return metrics.Undefined, 0, err
	}
	if n == 0 {
		return metrics.Undefined, 0, nil
	}
	truePositives := 0
	for _, iou := range ious {
		if iou > iouThreshold {
			truePositives++
		}
	}
	return metrics.Defined(float64(truePositives) / float64(n)), n, nil
}

// ISBI15Score evaluates Dice, PPV, LFDR and LTPR on the pair and combines
// them into the reweighted-optional composite score. Undefined when any
// constituent metric is undefined.
func ISBI15Score(pred, truth mask.Label, iouThreshold float64, reweighted bool) (metrics.Result, error) {
	dice, err := metrics.Dice(pred, truth)
	if err != nil {
		return metrics.Undefined, err
	}
	ppv, err := metrics.PPV(pred, truth)
	if err != nil {
		return metrics.Undefined, err
	}
	lfdr, _, err := LFDR(pred, truth, iouThreshold)
	if err != nil {
		return metrics.Undefined, err
	}
	ltpr, _, err := LTPR(pred, truth, iouThreshold)
	if err != nil {
		return metrics.Undefined, err
	}
	return metrics.ISBI15FromResults(dice, ppv, lfdr, ltpr, reweighted), nil
}

func checkThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t >= 1 {
		return pfx.Err(fmt.Errorf("iou threshold %v outside [0,1)", t))
	}
	return nil
}
