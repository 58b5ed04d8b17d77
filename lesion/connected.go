// Package lesion implements lesion-level analysis of binary segmentation
// masks: connected-component labeling, per-lesion overlap against a second
// mask, and the lesion detection-rate metrics built on top of both.
package lesion

import (
	"github.com/theodesp/unionfind"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// LabelMap partitions a mask's foreground into connected lesions. Background
// voxels hold id 0 and each lesion's voxels share one id from 1..N.
type LabelMap struct {
	ids     []int32
	shape   []int
	strides []int
	n       int
}

// Components labels the connected components of l's foreground. Two
// foreground voxels share a component when they are neighbors along any
// combination of axis-aligned and diagonal directions (26-connectivity in
// 3-D), which merges corner-touching lesions that a face-only rule would
// split. An all-background mask yields N = 0 and an all-zero map.
//
// The pass is a raster scan joining provisional labels through a union-find,
// then a relabeling pass assigning contiguous ids in first-encounter order,
// so ids are deterministic for a given mask.
func Components(l mask.Label) (*LabelMap, error) {
	d, err := l.Dense()
	if err != nil {
		return nil, err
	}
	shape := d.Shape()
	data := d.Raw()

	out := &LabelMap{
		ids:     make([]int32, len(data)),
		shape:   shape,
		strides: rowMajorStrides(shape),
	}

	foreground := 0
	for _, v := range data {
		if v > 0 {
			foreground++
		}
	}
	if foreground == 0 {
		return out, nil
	}

	// Provisional labels never exceed the foreground voxel count.
	uf := unionfind.NewThreadSafeUnionFind(foreground + 1)
	offsets := predecessorOffsets(len(shape))

	provisional := make([]int32, len(data))
	var next int32 = 1
	coords := make([]int, len(shape))
	for i, v := range data {
		if v > 0 {
			var ref int32
			for _, off := range offsets {
				j, ok := offsetIndex(coords, off, shape, out.strides)
				if !ok {
					continue
				}
				lbl := provisional[j]
				if lbl == 0 {
					continue
				}
				if ref == 0 {
					ref = lbl
				} else if lbl != ref {
					// Two previously distinct runs meet at this voxel.
					uf.Union(int(ref), int(lbl))
					if lbl < ref {
						ref = lbl
					}
				}
			}
			if ref == 0 {
				ref = next
				next++
			}
			provisional[i] = ref
		}
		incrementCoords(coords, shape)
	}

	// Resolve each provisional label to its set representative, then hand
	// out contiguous ids in the order representatives first appear.
	resolved := make(map[int32]int32)
	var n int32
	for i, p := range provisional {
		if p == 0 {
			continue
		}
		rep := p
		if root := uf.Root(int(p)); root >= 0 {
			rep = int32(root)
		}
		id, ok := resolved[rep]
		if !ok {
			n++
			id = n
			resolved[rep] = id
		}
		out.ids[i] = id
	}
	out.n = int(n)
	return out, nil
}

// N reports the number of connected lesions.
func (m *LabelMap) N() int { return m.n }

// Shape reports the map's per-axis extents.
func (m *LabelMap) Shape() []int { return append([]int{}, m.shape...) }

// At reads the lesion id at the given coordinates, 0 for background.
func (m *LabelMap) At(coords ...int) int {
	off := 0
	for i, c := range coords {
		off += c * m.strides[i]
	}
	return int(m.ids[off])
}

// LesionMask builds the binary indicator of the union of the given lesion
// ids. With a single id it is the indicator of that one lesion.
func (m *LabelMap) LesionMask(ids ...int) *mask.Dense {
	want := make(map[int32]bool, len(ids))
	for _, id := range ids {
		want[int32(id)] = true
	}
	data := make([]float64, len(m.ids))
	for i, id := range m.ids {
		if id != 0 && want[id] {
			data[i] = 1
		}
	}
	out, _ := mask.NewDenseFromData(data, m.shape...)
	return out
}

// Indicator builds the binary foreground mask of the whole map.
func (m *LabelMap) Indicator() *mask.Dense {
	data := make([]float64, len(m.ids))
	for i, id := range m.ids {
		if id != 0 {
			data[i] = 1
		}
	}
	out, _ := mask.NewDenseFromData(data, m.shape...)
	return out
}

// predecessorOffsets enumerates the neighbor offsets in {-1,0,1}^ndim whose
// first nonzero entry is -1: exactly the full-adjacency neighbors already
// visited by a raster scan.
func predecessorOffsets(ndim int) [][]int {
	var out [][]int
	off := make([]int, ndim)
	for i := range off {
		off[i] = -1
	}
	for {
		for _, v := range off {
			if v == 0 {
				continue
			}
			if v == -1 {
				out = append(out, append([]int{}, off...))
			}
			break
		}
		// Advance through {-1,0,1}^ndim.
		ax := ndim - 1
		for ; ax >= 0; ax-- {
			off[ax]++
			if off[ax] <= 1 {
				break
			}
			off[ax] = -1
		}
		if ax < 0 {
			return out
		}
	}
}

// offsetIndex computes the flat index of coords+off, reporting false when
// the neighbor falls outside the grid.
func offsetIndex(coords, off, shape, strides []int) (int, bool) {
	idx := 0
	for ax := range coords {
		c := coords[ax] + off[ax]
		if c < 0 || c >= shape[ax] {
			return 0, false
		}
		idx += c * strides[ax]
	}
	return idx, true
}

func incrementCoords(coords, shape []int) {
	for ax := len(coords) - 1; ax >= 0; ax-- {
		coords[ax]++
		if coords[ax] < shape[ax] {
			return
		}
		coords[ax] = 0
	}
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
