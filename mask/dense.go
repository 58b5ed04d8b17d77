package mask

import (
	"fmt"

	"github.com/carbocation/pfx"
)

// Dense is the canonical array backend: a row-major float64 grid.
type Dense struct {
	shape   []int
	strides []int
	data    []float64
}

// NewDense allocates a zero-filled grid with the given extents.
func NewDense(shape ...int) (*Dense, error) {
	n := 1
	for _, dim := range shape {
		if dim < 1 {
			return nil, pfx.Err(fmt.Errorf("invalid axis extent %d in shape %v", dim, shape))
		}
		n *= dim
	}
	if len(shape) == 0 {
		return nil, pfx.Err(fmt.Errorf("a grid needs at least one axis"))
	}
	return &Dense{
		shape:   append([]int{}, shape...),
		strides: rowMajorStrides(shape),
		data:    make([]float64, n),
	}, nil
}

// NewDenseFromData wraps an existing row-major backing slice whose length
// must equal the product of the extents. The slice is not copied.
func NewDenseFromData(data []float64, shape ...int) (*Dense, error) {
	d, err := NewDense(shape...)
	if err != nil {
		return nil, err
	}
	if len(data) != len(d.data) {
		return nil, pfx.Err(fmt.Errorf("data length %d does not match shape %v (want %d)", len(data), shape, len(d.data)))
	}
	d.data = data
	return d, nil
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

func (d *Dense) NDim() int { return len(d.shape) }

func (d *Dense) Shape() []int { return append([]int{}, d.shape...) }

// Raw exposes the row-major backing slice. Callers must treat it as
// read-only; the metric packages never write through it.
func (d *Dense) Raw() []float64 { return d.data }

// At reads the element at the given coordinates.
func (d *Dense) At(coords ...int) (float64, error) {
	off, err := d.offset(coords)
	if err != nil {
		return 0, err
	}
	return d.data[off], nil
}

// SetAt writes the element at the given coordinates. Only the owner of the
// grid should call this; grids handed to the metric packages are read-only.
func (d *Dense) SetAt(v float64, coords ...int) error {
	off, err := d.offset(coords)
	if err != nil {
		return err
	}
	d.data[off] = v
	return nil
}

func (d *Dense) offset(coords []int) (int, error) {
	if len(coords) != len(d.shape) {
		return 0, pfx.Err(fmt.Errorf("got %d coordinates for a rank-%d grid", len(coords), len(d.shape)))
	}
	off := 0
	for i, c := range coords {
		if c < 0 || c >= d.shape[i] {
			return 0, pfx.Err(fmt.Errorf("coordinate %d out of range [0,%d) on axis %d", c, d.shape[i], i))
		}
		off += c * d.strides[i]
	}
	return off, nil
}

func (d *Dense) GreaterThan(threshold float64) Label {
	out := make([]float64, len(d.data))
	for i, v := range d.data {
		if v > threshold {
			out[i] = 1
		}
	}
	res, _ := NewDenseFromData(out, d.shape...)
	return res
}

func (d *Dense) And(other Label) (Label, error) {
	o, err := d.alignedDense(other)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(d.data))
	for i := range d.data {
		if d.data[i] > 0 && o.data[i] > 0 {
			out[i] = 1
		}
	}
	res, _ := NewDenseFromData(out, d.shape...)
	return res, nil
}

func (d *Dense) Or(other Label) (Label, error) {
	o, err := d.alignedDense(other)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(d.data))
	for i := range d.data {
		if d.data[i] > 0 || o.data[i] > 0 {
			out[i] = 1
		}
	}
	res, _ := NewDenseFromData(out, d.shape...)
	return res, nil
}

func (d *Dense) alignedDense(other Label) (*Dense, error) {
	if !SameShape(d, other) {
		return nil, pfx.Err(fmt.Errorf("shape mismatch: %v vs %v", d.shape, other.Shape()))
	}
	return other.Dense()
}

func (d *Dense) Slice(box Box) (Label, error) {
	if len(box) != len(d.shape) {
		return nil, pfx.Err(fmt.Errorf("box has %d ranges for a rank-%d grid", len(box), len(d.shape)))
	}
	outShape := make([]int, len(box))
	for i, r := range box {
		if r.Lo < 0 || r.Hi > d.shape[i] || r.Lo >= r.Hi {
			return nil, pfx.Err(fmt.Errorf("range [%d,%d) invalid on axis %d with extent %d", r.Lo, r.Hi, i, d.shape[i]))
		}
		outShape[i] = r.Hi - r.Lo
	}
	out, err := NewDense(outShape...)
	if err != nil {
		return nil, err
	}
	coords := make([]int, len(outShape))
	for i := range out.data {
		src := 0
		for ax := range coords {
			src += (box[ax].Lo + coords[ax]) * d.strides[ax]
		}
		out.data[i] = d.data[src]
		increment(coords, outShape)
	}
	return out, nil
}

func (d *Dense) Sum() float64 {
	var total float64
	for _, v := range d.data {
		total += v
	}
	return total
}

func (d *Dense) Any(axes ...int) Label {
	if len(axes) == 0 {
		axes = make([]int, len(d.shape))
		for i := range axes {
			axes[i] = i
		}
	}
	reduced := make([]bool, len(d.shape))
	for _, ax := range axes {
		if ax >= 0 && ax < len(d.shape) {
			reduced[ax] = true
		}
	}
	outShape := make([]int, 0, len(d.shape))
	kept := make([]int, 0, len(d.shape))
	for i, dim := range d.shape {
		if !reduced[i] {
			outShape = append(outShape, dim)
			kept = append(kept, i)
		}
	}
	if len(outShape) == 0 {
		outShape = []int{1}
		kept = nil
	}
	out, _ := NewDense(outShape...)
	coords := make([]int, len(d.shape))
	for _, v := range d.data {
		if v > 0 {
			off := 0
			if kept == nil {
				off = 0
			} else {
				for oi, ax := range kept {
					off += coords[ax] * out.strides[oi]
				}
			}
			out.data[off] = 1
		}
		increment(coords, d.shape)
	}
	return out
}

func (d *Dense) Nonzero() [][]int {
	var found [][]int
	coords := make([]int, len(d.shape))
	for _, v := range d.data {
		if v > 0 {
			found = append(found, append([]int{}, coords...))
		}
		increment(coords, d.shape)
	}
	return found
}

func (d *Dense) Squeeze() Label {
	outShape := make([]int, 0, len(d.shape))
	for _, dim := range d.shape {
		if dim != 1 {
			outShape = append(outShape, dim)
		}
	}
	if len(outShape) == 0 {
		outShape = []int{1}
	}
	out, _ := NewDenseFromData(append([]float64{}, d.data...), outShape...)
	return out
}

func (d *Dense) Dense() (*Dense, error) { return d, nil }

// increment advances row-major coordinates by one position within shape.
func increment(coords, shape []int) {
	for ax := len(coords) - 1; ax >= 0; ax-- {
		coords[ax]++
		if coords[ax] < shape[ax] {
			return
		}
		coords[ax] = 0
	}
}
