package metrics

import (
	"errors"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// ErrNotImplemented marks declared extension points that have no
// implementation yet.
var ErrNotImplemented = errors.New("average symmetric surface distance is not implemented")

// ASSD is the average symmetric surface distance between predicted and true
// binary masks. It is an extension point only: it fails unconditionally
// rather than hiding behind a default value.
func ASSD(pred, truth mask.Label) (Result, error) {
	return Undefined, ErrNotImplemented
}
