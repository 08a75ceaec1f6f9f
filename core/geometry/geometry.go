// Package geometry converts bangle size codes to physical dimensions.
//
// The size table stores inside diameters, not circumferences. Sizes
// step by one sixteenth of an inch of diameter, which is why the mm
// values look irregular at two decimals.
package geometry

import (
	"math"
	"sort"

	"bangler/internal/errors"
)

// insideDiameterMm maps a size code to the bangle's inside diameter.
// Fixed process-wide data; strictly increasing with size.
var insideDiameterMm = map[int]float64{
	10: 52.39,
	11: 53.98,
	12: 55.56,
	13: 57.15,
	14: 58.74,
	15: 60.32,
	16: 61.91,
	17: 63.50,
	18: 65.09,
	19: 66.68,
	20: 68.26,
	21: 69.85,
	22: 71.44,
	23: 73.02,
	24: 74.61,
	25: 76.20,
	26: 77.79,
	27: 79.38,
}

// MmPerInch is the millimeters-per-inch conversion constant
const MmPerInch = 25.4

// InsideDiameterMm returns the inside diameter for a size code
func InsideDiameterMm(size int) (float64, error) {
	d, ok := insideDiameterMm[size]
	if !ok {
		return 0, errors.Newf(errors.TypeInvalidInput,
			"size %d is not a valid bangle size", size).
			WithDetail("valid sizes are %d-%d", minSize(), maxSize())
	}
	return d, nil
}

// CircumferenceMm returns the inside circumference for a size code.
// The table stores diameters, so the conversion is explicit here.
func CircumferenceMm(size int) (float64, error) {
	d, err := InsideDiameterMm(size)
	if err != nil {
		return 0, err
	}
	return math.Pi * d, nil
}

// CircumferenceIn returns the inside circumference in inches
func CircumferenceIn(size int) (float64, error) {
	mm, err := CircumferenceMm(size)
	if err != nil {
		return 0, err
	}
	return mm / MmPerInch, nil
}

// ValidSizes returns the table's domain sorted ascending
func ValidSizes() []int {
	sizes := make([]int, 0, len(insideDiameterMm))
	for s := range insideDiameterMm {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}

func minSize() int {
	return ValidSizes()[0]
}

func maxSize() int {
	sizes := ValidSizes()
	return sizes[len(sizes)-1]
}
