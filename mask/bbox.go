package mask

import "errors"

// ErrEmptyMask is returned when an operation that needs at least one
// foreground voxel is handed an all-background grid.
var ErrEmptyMask = errors.New("mask has no foreground voxels")

// BoundingBox computes the tightest axis-aligned region containing every
// foreground voxel of l, as half-open per-axis ranges. It fails with
// ErrEmptyMask when l has no foreground.
//
// Callers crop both compared grids to this box before elementwise work so
// that per-lesion cost scales with the lesion's extent rather than the whole
// volume.
func BoundingBox(l Label) (Box, error) {
	if d, ok := l.(*Dense); ok {
		return denseBoundingBox(d)
	}

	// Generic path over the capability set: project onto each axis in turn
	// by any-reducing across all the others, then take the first and last
	// foreground index.
	ndim := l.NDim()
	box := make(Box, ndim)
	for axis := 0; axis < ndim; axis++ {
		// Rank 1 has no other axes to reduce over, and Any with no
		// arguments reduces over every axis.
		line := l
		if ndim > 1 {
			others := make([]int, 0, ndim-1)
			for ax := 0; ax < ndim; ax++ {
				if ax != axis {
					others = append(others, ax)
				}
			}
			line = l.Any(others...)
		}
		hits := line.Nonzero()
		if len(hits) == 0 {
			return nil, ErrEmptyMask
		}
		box[axis] = Range{Lo: hits[0][0], Hi: hits[len(hits)-1][0] + 1}
	}
	return box, nil
}

// denseBoundingBox tracks running per-axis min and max in a single pass.
func denseBoundingBox(d *Dense) (Box, error) {
	shape := d.shape
	lo := make([]int, len(shape))
	hi := make([]int, len(shape))
	for i := range lo {
		lo[i] = shape[i]
		hi[i] = -1
	}
	coords := make([]int, len(shape))
	for _, v := range d.data {
		if v > 0 {
			for ax, c := range coords {
				if c < lo[ax] {
					lo[ax] = c
				}
				if c > hi[ax] {
					hi[ax] = c
				}
			}
		}
		increment(coords, shape)
	}
	if hi[0] < 0 {
		return nil, ErrEmptyMask
	}
	box := make(Box, len(shape))
	for ax := range shape {
		box[ax] = Range{Lo: lo[ax], Hi: hi[ax] + 1}
	}
	return box, nil
}
