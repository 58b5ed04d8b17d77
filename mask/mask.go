// Package mask defines the occupancy-grid contract shared by every metric in
// this module. A grid element is foreground iff its value is strictly greater
// than zero; no other binarization threshold exists at this layer.
package mask

// Range is a half-open index interval [Lo, Hi) along one axis.
type Range struct {
	Lo, Hi int
}

// Box is an axis-ordered set of ranges describing a rectangular region of a
// grid, one Range per axis.
type Box []Range

// Label is the capability set required of an array backend. Any container
// that can answer these queries is usable by the metric packages without
// them knowing the concrete type. Implementations must treat the receiver as
// read-only: every operation returns a fresh value.
type Label interface {
	// NDim reports the rank of the grid.
	NDim() int

	// Shape reports the per-axis extents.
	Shape() []int

	// GreaterThan returns the boolean mask (as a 0/1 grid) of elements
	// strictly greater than threshold.
	GreaterThan(threshold float64) Label

	// And returns the elementwise boolean AND of two same-shape grids,
	// treating values > 0 as true.
	And(other Label) (Label, error)

	// Or returns the elementwise boolean OR of two same-shape grids,
	// treating values > 0 as true.
	Or(other Label) (Label, error)

	// Slice extracts the rectangular region described by box, which must
	// have one Range per axis.
	Slice(box Box) (Label, error)

	// Sum totals all elements. For a binarized grid this is the foreground
	// voxel count.
	Sum() float64

	// Any reduces over the given axes with logical OR, removing them from
	// the result's shape. With no axes it reduces over every axis, yielding
	// a single-element grid.
	Any(axes ...int) Label

	// Nonzero returns the coordinates of every foreground element in
	// raster (row-major) order.
	Nonzero() [][]int

	// Squeeze removes axes of extent 1. A grid whose axes are all singleton
	// keeps one axis so that it remains addressable.
	Squeeze() Label

	// Dense converts to the canonical dense in-memory representation.
	Dense() (*Dense, error)
}

// SameShape reports whether two labels have identical rank and extents.
func SameShape(a, b Label) bool {
	as, bs := a.Shape(), b.Shape()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
