package mask

import (
	"fmt"

	"github.com/carbocation/pfx"
	"gorgonia.org/tensor"
)

// FromTensor adapts a gorgonia dense tensor into the canonical backend, so
// that grids produced by a tensor pipeline can feed the metric packages
// without a handwritten conversion at every call site. The backing data is
// copied.
func FromTensor(t *tensor.Dense) (*Dense, error) {
	shape := []int(t.Shape())
	var data []float64
	switch backing := t.Data().(type) {
	case []float64:
		data = append([]float64{}, backing...)
	case []float32:
		data = make([]float64, len(backing))
		for i, v := range backing {
			data[i] = float64(v)
		}
	case []int:
		data = make([]float64, len(backing))
		for i, v := range backing {
			data[i] = float64(v)
		}
	case []uint8:
		data = make([]float64, len(backing))
		for i, v := range backing {
			data[i] = float64(v)
		}
	case []bool:
		data = make([]float64, len(backing))
		for i, v := range backing {
			if v {
				data[i] = 1
			}
		}
	default:
		return nil, pfx.Err(fmt.Errorf("unsupported tensor backing type %T", backing))
	}
	return NewDenseFromData(data, shape...)
}
