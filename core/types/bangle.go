// Package types - Bangle domain types
package types

// Shape is a stock cross-section profile
type Shape string

const (
	ShapeFlat       Shape = "Flat"
	ShapeComfortFit Shape = "Comfort Fit"
	ShapeLowDome    Shape = "Low Dome"
	ShapeHalfRound  Shape = "Half Round"
	ShapeSquare     Shape = "Square"
	ShapeTriangle   Shape = "Triangle"
)

// String returns the string representation
func (s Shape) String() string {
	return string(s)
}

// Color is a metal color. ColorSterlingSilver doubles as a quality:
// a sterling bangle carries no separate karat designation.
type Color string

const (
	ColorYellow         Color = "Yellow"
	ColorWhite          Color = "White"
	ColorRose           Color = "Rose"
	ColorGreen          Color = "Green"
	ColorSterlingSilver Color = "Sterling Silver"
)

// String returns the string representation
func (c Color) String() string {
	return string(c)
}

// IsKarat reports whether the color denotes a karat-gold metal
// (as opposed to a metal that is itself the quality, like sterling)
func (c Color) IsKarat() bool {
	return c != ColorSterlingSilver
}

// BangleSpec is one customer pricing request. Created by the caller,
// consumed once, never mutated.
type BangleSpec struct {
	// Size is the ring-style ordinal size code (10..27)
	Size int `json:"size"`

	// Shape is the cross-section profile
	Shape Shape `json:"shape"`

	// Color is the metal color
	Color Color `json:"color"`

	// Quality is the karat designation (e.g. "14K"); empty for sterling
	Quality string `json:"quality,omitempty"`

	// Width is the stock width as the catalog writes it (e.g. "4 Mm")
	Width string `json:"width"`

	// Thickness is the stock thickness as the catalog writes it (e.g. "1.5 Mm")
	Thickness string `json:"thickness"`
}

// QualityString returns the composite quality descriptor in the form
// the catalog uses: "14K Yellow", or the color verbatim when the color
// already denotes a non-karat metal.
func (s BangleSpec) QualityString() string {
	if !s.Color.IsKarat() {
		return s.Color.String()
	}
	return s.Quality + " " + s.Color.String()
}

// BusinessRules are the fixed enumerated sets a specification is
// validated against before any computation runs.
type BusinessRules struct {
	MinSize        int
	MaxSize        int
	ValidShapes    []Shape
	ValidColors    []Color
	ValidQualities []string
}

// DefaultBusinessRules returns the shop's rule set
func DefaultBusinessRules() BusinessRules {
	return BusinessRules{
		MinSize: 10,
		MaxSize: 27,
		ValidShapes: []Shape{
			ShapeFlat, ShapeComfortFit, ShapeLowDome,
			ShapeHalfRound, ShapeSquare, ShapeTriangle,
		},
		ValidColors: []Color{
			ColorYellow, ColorWhite, ColorRose, ColorGreen, ColorSterlingSilver,
		},
		ValidQualities: []string{"10K", "14K", "18K"},
	}
}
