// Package weight derives purchase weight from stock dimensions and
// alloy density. The trade prices precious metal stock per
// pennyweight, so the result is DWT.
package weight

import (
	"bangler/core/density"
	"bangler/core/types"
)

const (
	// MmPerInch is the millimeters-per-inch conversion constant
	MmPerInch = 25.4

	// GramsPerDwt converts grams to pennyweight
	GramsPerDwt = 1.55517384

	// Mm3PerCm3 converts cubic millimeters to cubic centimeters
	Mm3PerCm3 = 1000.0
)

// Calculator computes theoretical stock weights from first-principles
// density. Float64 arithmetic is fine here; the orchestrator converts
// the final weight to fixed-point before it touches money.
type Calculator struct {
	densities *density.Table
}

// NewCalculator creates a weight calculator over a density table
func NewCalculator(densities *density.Table) *Calculator {
	return &Calculator{densities: densities}
}

// TheoreticalWeightDwt computes the weight of a strip of stock.
//
// A one-inch prism of widthMm x thicknessMm cross-section has volume
// widthMm * thicknessMm * 25.4 mm3, converted to cm3 for the density
// multiply, then grams to DWT, then scaled by length.
func (c *Calculator) TheoreticalWeightDwt(widthMm, thicknessMm, lengthIn float64, quality, color string) (types.TheoreticalWeight, error) {
	d, err := c.densities.DensityGramsPerCm3(quality, color)
	if err != nil {
		return types.TheoreticalWeight{}, err
	}

	volumeCm3PerIn := widthMm * thicknessMm * MmPerInch / Mm3PerCm3
	gramsPerIn := volumeCm3PerIn * d
	dwtPerIn := gramsPerIn / GramsPerDwt

	return types.TheoreticalWeight{
		DensityGPerCm3: d,
		VolumeCm3PerIn: volumeCm3PerIn,
		GramsPerIn:     gramsPerIn,
		DwtPerIn:       dwtPerIn,
		TotalDwt:       dwtPerIn * lengthIn,
	}, nil
}
