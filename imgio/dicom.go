package imgio

import (
	"fmt"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/dicomtag"
	"github.com/suyashkumar/dicom/element"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// LoadDICOM reads a single uncompressed DICOM file as a 2-D mask (or 3-D for
// multi-frame files, frames as the leading axis). Encapsulated transfer
// syntaxes are not supported; masks are expected as native pixel data.
func LoadDICOM(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, pfx.Err(err)
	}

	p, err := dicom.NewParser(f, stat.Size(), nil)
	if err != nil {
		return nil, pfx.Err(err)
	}
	parsed, err := p.Parse(dicom.ParseOptions{DropPixelData: false})
	if parsed == nil || err != nil {
		return nil, pfx.Err(fmt.Errorf("error parsing DICOM %s: %v", path, err))
	}

	var rows, cols int
	rowSpacing, colSpacing := 1.0, 1.0
	var pixelData *element.PixelDataInfo

	for _, elem := range parsed.Elements {
		if elem.Tag == dicomtag.Rows {
			rows = int(elem.Value[0].(uint16))
		} else if elem.Tag == dicomtag.Columns {
			cols = int(elem.Value[0].(uint16))
		} else if elem.Tag == dicomtag.PixelSpacing && len(elem.Value) >= 2 {
			if v, err := strconv.ParseFloat(elem.Value[0].(string), 64); err == nil {
				rowSpacing = v
			}
			if v, err := strconv.ParseFloat(elem.Value[1].(string), 64); err == nil {
				colSpacing = v
			}
		} else if elem.Tag == dicomtag.PixelData {
			data := elem.Value[0].(element.PixelDataInfo)
			pixelData = &data
		}
	}
	if pixelData == nil || rows == 0 || cols == 0 {
		return nil, pfx.Err(fmt.Errorf("no native pixel data in %s", path))
	}

	nframes := len(pixelData.Frames)
	data := make([]float64, 0, nframes*rows*cols)
	for _, fr := range pixelData.Frames {
		if fr.IsEncapsulated() {
			return nil, pfx.Err(fmt.Errorf("encapsulated pixel data in %s is not supported", path))
		}
		if got := len(fr.NativeData.Data); got != rows*cols {
			return nil, pfx.Err(fmt.Errorf("frame has %d pixels, want %dx%d", got, rows, cols))
		}
		for _, samples := range fr.NativeData.Data {
			data = append(data, float64(samples[0]))
		}
	}

	shape := []int{rows, cols}
	spacing := []float64{rowSpacing, colSpacing}
	if nframes > 1 {
		shape = []int{nframes, rows, cols}
		spacing = []float64{1, rowSpacing, colSpacing}
	}
	grid, err := mask.NewDenseFromData(data, shape...)
	if err != nil {
		return nil, err
	}
	return &Image{Grid: grid, Spacing: spacing, Path: path}, nil
}
