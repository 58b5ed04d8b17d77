package imgio

import (
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/henghuang/nifti"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// LoadNIfTI reads a .nii or .nii.gz volume. The grid keeps the file's full
// rank with every axis's spacing, singleton axes included, so volume
// computations see the true slice thickness; callers squeeze the grid
// themselves where a lower rank is wanted.
func LoadNIfTI(path string) (*Image, error) {
	var img nifti.Nifti1Image
	img.LoadImage(path, true)

	var hdr nifti.Nifti1Header
	hdr.LoadHeader(path)

	dims := img.GetDims()
	xm, ym, zm, tm := dims[0], dims[1], dims[2], dims[3]
	if xm == 0 {
		return nil, pfx.Err(fmt.Errorf("could not read NIfTI volume from %s", path))
	}
	if ym < 1 {
		ym = 1
	}
	if zm < 1 {
		zm = 1
	}
	if tm < 1 {
		tm = 1
	}

	data := make([]float64, 0, xm*ym*zm*tm)
	for x := 0; x < xm; x++ {
		for y := 0; y < ym; y++ {
			for z := 0; z < zm; z++ {
				for t := 0; t < tm; t++ {
					data = append(data, float64(img.GetAt(x, y, z, t)))
				}
			}
		}
	}

	full := []int{xm, ym, zm, tm}
	ndim := int(hdr.Dim[0])
	if ndim < 1 || ndim > 4 {
		ndim = 4
	}
	// Keep any nonsingleton axis the header's rank would cut off.
	for ndim < 4 && full[ndim] > 1 {
		ndim++
	}
	shape := full[:ndim]
	spacing := make([]float64, ndim)
	for i := range spacing {
		sp := float64(hdr.Pixdim[i+1])
		if sp <= 0 {
			sp = 1
		}
		spacing[i] = sp
	}

	grid, err := mask.NewDenseFromData(data, shape...)
	if err != nil {
		return nil, err
	}
	return &Image{Grid: grid, Spacing: spacing, Path: path}, nil
}
