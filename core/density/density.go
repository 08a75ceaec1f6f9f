// Package density resolves alloy densities for weight calculation.
//
// Resolution precedence is strict and never interpolates:
// calibration override > color-adjusted base > base-by-karat.
// Overrides carry empirically corrected values and always win.
package density

import (
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"bangler/internal/errors"
	"bangler/internal/logging"
)

// Densities in g/cm3 for typical jewelry alloys, keyed by karat.
// Yellow and rose share the base value.
var standardDensities = map[string]float64{
	"24K": 19.32,
	"22K": 18.0,
	"18K": 15.65,
	"14K": 13.3,
	"10K": 11.65,
}

// White alloys run lighter than yellow/rose of the same karat due to
// palladium/nickel content.
var whiteGoldAdjustments = map[string]float64{
	"18K": 15.2,
	"14K": 13.0,
	"10K": 11.4,
}

// SterlingSilverDensity is the density of 92.5% silver alloy
const SterlingSilverDensity = 10.36

var karatPattern = regexp.MustCompile(`(\d+)K`)

// silver designators matched case-insensitively against quality strings
var silverDesignators = []string{"sterling silver", "continuum sterling silver"}

// CalibrationKey identifies a calibrated density override
type CalibrationKey struct {
	// Karat is the normalized karat token, e.g. "14K"
	Karat string

	// Color is the metal color
	Color string

	// AlloyCode is the supplier alloy code, empty when unknown
	AlloyCode string
}

// Calibration is an empirically corrected density value
type Calibration struct {
	Key     CalibrationKey
	Density float64
	Source  string
}

// Table resolves densities. The static data is fixed; calibration
// overrides are additive at runtime and never deleted, so a RWMutex
// keeps concurrent pricing requests safe.
type Table struct {
	mu           sync.RWMutex
	calibrations map[CalibrationKey]Calibration
}

// NewTable creates a density table with no calibrations
func NewTable() *Table {
	return &Table{
		calibrations: make(map[CalibrationKey]Calibration),
	}
}

// AddCalibration layers an empirical override over the static table
func (t *Table) AddCalibration(karat, color, alloyCode string, density float64, source string) {
	key := CalibrationKey{
		Karat:     normalizeKarat(karat),
		Color:     normalizeColor(color),
		AlloyCode: alloyCode,
	}
	t.mu.Lock()
	t.calibrations[key] = Calibration{Key: key, Density: density, Source: source}
	t.mu.Unlock()

	logging.Info("added calibrated density",
		zap.String("karat", key.Karat),
		zap.String("color", key.Color),
		zap.String("alloy_code", alloyCode),
		zap.Float64("density_g_per_cm3", density),
		zap.String("source", source))
}

// DensityGramsPerCm3 resolves the density for a quality/color pair.
// Silver qualities short-circuit; color is ignored for silver.
func (t *Table) DensityGramsPerCm3(quality, color string) (float64, error) {
	if isSilver(quality) {
		return SterlingSilverDensity, nil
	}

	karat := ExtractKarat(quality)
	if karat == "" {
		return 0, errors.Newf(errors.TypeCalculation,
			"could not extract karat from quality %q", quality)
	}

	// Ordered lookup strategies; first hit wins.
	strategies := []func(karat, color string) (float64, bool){
		t.lookupCalibrated,
		lookupColorAdjusted,
		lookupBase,
	}
	for _, lookup := range strategies {
		if d, ok := lookup(karat, normalizeColor(color)); ok {
			return d, nil
		}
	}

	return 0, errors.Newf(errors.TypeCalculation,
		"unknown karat type %q", karat)
}

func (t *Table) lookupCalibrated(karat, color string) (float64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	// Alloy-specific entries shadow the alloy-agnostic one, but with
	// only (karat, color) to go on the agnostic entry is the match.
	if c, ok := t.calibrations[CalibrationKey{Karat: karat, Color: color}]; ok {
		return c.Density, true
	}
	return 0, false
}

func lookupColorAdjusted(karat, color string) (float64, bool) {
	if color != "White" {
		return 0, false
	}
	d, ok := whiteGoldAdjustments[karat]
	return d, ok
}

func lookupBase(karat, _ string) (float64, bool) {
	d, ok := standardDensities[karat]
	return d, ok
}

// ExtractKarat pulls a normalized karat token ("14K") out of a quality
// string like "14k Yellow". Returns "" if none is present.
func ExtractKarat(quality string) string {
	m := karatPattern.FindStringSubmatch(strings.ToUpper(quality))
	if m == nil {
		return ""
	}
	return m[1] + "K"
}

func isSilver(quality string) bool {
	q := strings.ToLower(strings.TrimSpace(quality))
	for _, d := range silverDesignators {
		if q == d {
			return true
		}
	}
	return false
}

func normalizeKarat(karat string) string {
	if k := ExtractKarat(karat); k != "" {
		return k
	}
	return strings.ToUpper(strings.TrimSpace(karat))
}

func normalizeColor(color string) string {
	c := strings.TrimSpace(color)
	if c == "" {
		return "Yellow"
	}
	return strings.ToUpper(c[:1]) + strings.ToLower(c[1:])
}
