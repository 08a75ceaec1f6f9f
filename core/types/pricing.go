// Package types - Pricing result types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// LengthCalculation is the strip-length breakdown for one request.
// Computed fresh per pricing call, immutable once produced.
type LengthCalculation struct {
	// CircumferenceMm is the inside circumference from the size table
	CircumferenceMm float64 `json:"circumference_mm"`

	// CircumferenceIn is the same circumference in inches
	CircumferenceIn float64 `json:"circumference_in"`

	// ThicknessMm is the material thickness
	ThicknessMm float64 `json:"thickness_mm"`

	// ThicknessIn is the material thickness in inches
	ThicknessIn float64 `json:"thickness_in"`

	// RawLengthIn is the unrolled length before rounding
	RawLengthIn float64 `json:"raw_length_in"`

	// RoundedLengthIn is rounded up to the purchasable increment
	RoundedLengthIn float64 `json:"rounded_length_in"`

	// KFactor is the neutral-axis factor used
	KFactor float64 `json:"k_factor"`

	// SeamAllowanceIn is the seam allowance used
	SeamAllowanceIn float64 `json:"seam_allowance_in"`
}

// TheoreticalWeight is the first-principles weight breakdown for a
// strip of stock material.
type TheoreticalWeight struct {
	// DensityGPerCm3 is the density resolved for the quality/color
	DensityGPerCm3 float64 `json:"density_g_per_cm3"`

	// VolumeCm3PerIn is the volume of one inch of stock
	VolumeCm3PerIn float64 `json:"volume_cm3_per_in"`

	// GramsPerIn is the mass of one inch of stock
	GramsPerIn float64 `json:"grams_per_in"`

	// DwtPerIn is the pennyweight of one inch of stock
	DwtPerIn float64 `json:"dwt_per_in"`

	// TotalDwt is the weight of the full strip
	TotalDwt float64 `json:"total_dwt"`
}

// PriceBreakdown is the terminal output of a successful pricing run.
// Immutable once constructed.
type PriceBreakdown struct {
	// SKU is the resolved catalog item
	SKU string `json:"sku"`

	// UnitPrice is the live supplier price per DWT
	UnitPrice decimal.Decimal `json:"unit_price"`

	// WeightDwt is the purchase weight, fixed-point
	WeightDwt decimal.Decimal `json:"weight_dwt"`

	// MaterialLengthIn is the rounded strip length purchased
	MaterialLengthIn float64 `json:"material_length_in"`

	// MaterialCost is UnitPrice x WeightDwt
	MaterialCost decimal.Decimal `json:"material_cost"`

	// BaseFee is the flat fabrication fee
	BaseFee decimal.Decimal `json:"base_fee"`

	// TotalPrice is MaterialCost + BaseFee
	TotalPrice decimal.Decimal `json:"total_price"`

	// Currency is the pricing currency
	Currency Currency `json:"currency"`

	// Length is the full strip-length calculation
	Length LengthCalculation `json:"length"`

	// Weight is the full weight calculation
	Weight TheoreticalWeight `json:"weight"`
}
