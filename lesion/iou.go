package lesion

import (
	"fmt"

	"github.com/carbocation/pfx"

	"github.com/jcreinhold/lesion-metrics/mask"
	"github.com/jcreinhold/lesion-metrics/metrics"
)

// IoUPerLesion labels target's connected components and scores each lesion's
// IoU against other. The comparison is against the entirety of other within
// the lesion's bounding box, i.e. the union of whatever lesions in other
// happen to overlap the box, not a 1:1 counterpart. Cropping both masks to
// the box bounds the per-lesion cost by the lesion's extent.
//
// The returned scores follow label-id order, which is stable for a given
// mask, paired with the lesion count.
func IoUPerLesion(target, other mask.Label) ([]float64, int, error) {
	if !mask.SameShape(target, other) {
		return nil, 0, pfx.Err(fmt.Errorf("mask shape mismatch: target %v vs other %v", target.Shape(), other.Shape()))
	}
	cc, err := Components(target)
	if err != nil {
		return nil, 0, err
	}
	o := other.GreaterThan(0)

	ious := make([]float64, 0, cc.N())
	for i := 1; i <= cc.N(); i++ {
		indicator := cc.LesionMask(i)
		box, err := mask.BoundingBox(indicator)
		if err != nil {
			return nil, 0, err
		}
		targetCrop, err := indicator.Slice(box)
		if err != nil {
			return nil, 0, err
		}
		otherCrop, err := o.Slice(box)
		if err != nil {
			return nil, 0, err
		}
		// The union is never empty here: the box contains the lesion.
		iou, err := metrics.Jaccard(otherCrop, targetCrop)
		if err != nil {
			return nil, 0, err
		}
		ious = append(ious, iou.Value())
	}
	return ious, cc.N(), nil
}
