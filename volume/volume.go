// Package volume converts a segmentation mask's foreground voxel count into
// a physical lesion burden using per-axis voxel spacing.
package volume

import (
	"fmt"
	"math"

	"github.com/carbocation/pfx"

	"github.com/jcreinhold/lesion-metrics/mask"
)

// Unit is a volume unit for reporting lesion burden.
type Unit string

const (
	Microliter Unit = "microliter"
	Milliliter Unit = "milliliter"
	Liter      Unit = "liter"
)

// Segmentation pairs a mask with the physical spacing of its voxels.
type Segmentation struct {
	label   mask.Label
	spacing []float64
	unit    Unit
}

// NewSegmentation validates that spacing has one positive, finite entry per
// axis of label. Spacing is in millimeters per voxel along each axis, so a
// single voxel at unit spacing occupies one microliter.
func NewSegmentation(label mask.Label, spacing []float64, unit Unit) (*Segmentation, error) {
	if len(spacing) != label.NDim() {
		return nil, pfx.Err(fmt.Errorf("got %d spacing values for a rank-%d mask", len(spacing), label.NDim()))
	}
	for i, s := range spacing {
		if s <= 0 || math.IsInf(s, 0) || math.IsNaN(s) {
			return nil, pfx.Err(fmt.Errorf("spacing %v on axis %d is not a positive finite value", s, i))
		}
	}
	switch unit {
	case Microliter, Milliliter, Liter:
	default:
		return nil, pfx.Err(fmt.Errorf("invalid unit: %q", unit))
	}
	return &Segmentation{label: label, spacing: append([]float64{}, spacing...), unit: unit}, nil
}

// Volume reports the total lesion burden in the segmentation's unit.
func (s *Segmentation) Volume() float64 {
	micro := s.Microliters()
	switch s.unit {
	case Milliliter:
		return micro / 1e3
	case Liter:
		return micro / 1e6
	default:
		return micro
	}
}

// Microliters reports the burden as foreground voxel count times the
// per-voxel volume.
func (s *Segmentation) Microliters() float64 {
	perVoxel := 1.0
	for _, sp := range s.spacing {
		perVoxel *= sp
	}
	return s.label.GreaterThan(0).Sum() * perVoxel
}
