// Package material computes the linear stock length a bangle needs.
//
// The model is a seamed ring unrolled flat: the bend line sits at the
// neutral axis inside the strip, so the flat length is the
// circumference of a circle k thicknesses larger than the inside
// diameter, plus a seam allowance for the cut and join.
package material

import (
	"math"
	"strconv"
	"strings"

	"bangler/core/types"
	"bangler/internal/errors"
)

// MmPerInch is the millimeters-per-inch conversion constant
const MmPerInch = 25.4

// Config holds the strip-length calculation parameters
type Config struct {
	// KFactor places the neutral axis within the thickness
	// (0.5 = mid-thickness)
	KFactor float64

	// SeamAllowanceIn is extra length for the cut and join
	SeamAllowanceIn float64

	// RoundIncrementIn is the supplier's selling increment. Rounding
	// is always upward: a shortfall must never occur.
	RoundIncrementIn float64
}

// DefaultConfig returns the shop's standard parameters
func DefaultConfig() Config {
	return Config{
		KFactor:          0.5,
		SeamAllowanceIn:  0.04,
		RoundIncrementIn: 0.25,
	}
}

// Calculator computes strip lengths. Pure; safe for concurrent use.
type Calculator struct {
	config Config
}

// NewCalculator creates a calculator with the given config
func NewCalculator(config Config) *Calculator {
	if config.RoundIncrementIn <= 0 {
		config.RoundIncrementIn = DefaultConfig().RoundIncrementIn
	}
	return &Calculator{config: config}
}

// ComputeLength converts a circumference and thickness into the stock
// length required.
//
// L = pi * (ID_in + 2 * k * t_in) + seam, then ceiling to the selling
// increment. The inside diameter is recovered from the circumference
// rather than carried through from the size table, so this package has
// no dependency on the table's representation.
func (c *Calculator) ComputeLength(circumferenceMm, thicknessMm float64) (types.LengthCalculation, error) {
	if circumferenceMm <= 0 {
		return types.LengthCalculation{}, errors.Newf(errors.TypeInvalidInput,
			"circumference must be positive, got %.2fmm", circumferenceMm)
	}
	if thicknessMm <= 0 {
		return types.LengthCalculation{}, errors.Newf(errors.TypeInvalidInput,
			"thickness must be positive, got %.2fmm", thicknessMm)
	}

	circumferenceIn := circumferenceMm / MmPerInch
	thicknessIn := thicknessMm / MmPerInch
	insideDiameterIn := circumferenceIn / math.Pi

	rawLength := math.Pi*(insideDiameterIn+2*c.config.KFactor*thicknessIn) + c.config.SeamAllowanceIn
	roundedLength := math.Ceil(rawLength/c.config.RoundIncrementIn) * c.config.RoundIncrementIn

	return types.LengthCalculation{
		CircumferenceMm: circumferenceMm,
		CircumferenceIn: circumferenceIn,
		ThicknessMm:     thicknessMm,
		ThicknessIn:     thicknessIn,
		RawLengthIn:     rawLength,
		RoundedLengthIn: roundedLength,
		KFactor:         c.config.KFactor,
		SeamAllowanceIn: c.config.SeamAllowanceIn,
	}, nil
}

// ParseThickness parses a catalog thickness string like "1.5 Mm" into
// millimeters. A trailing unit token is stripped; anything non-numeric
// underneath is an input error.
func ParseThickness(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	if strings.HasSuffix(lower, "mm") {
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-2])
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, errors.Newf(errors.TypeInvalidInput,
			"invalid thickness format: %q", s)
	}
	return v, nil
}
