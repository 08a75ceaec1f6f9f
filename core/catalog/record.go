// Package catalog resolves customer material specifications to
// supplier stock-keeping units.
//
// The catalog is a flat list of sizing-stock records loaded once at
// startup and read-only afterwards. Each record carries a SKU and a
// handful of named descriptive attributes; matching is exact,
// case-insensitive equality over those attributes.
package catalog

import "strings"

// Descriptive attribute names as the supplier writes them
const (
	AttrMetalShape = "Metal Shape"
	AttrQuality    = "Quality"
	AttrWidth      = "Width"
	AttrThickness  = "Thickness"
	AttrLength     = "Length"
)

// DefaultLengthClass is the stock length class assumed when a query
// does not name one
const DefaultLengthClass = "Bulk"

// DescriptiveElement is one (name, value) attribute slot on a record
type DescriptiveElement struct {
	Name  string `json:"Name"`
	Value string `json:"Value"`
}

// StockRecord is one catalog entry. Records expose up to six
// descriptive slots; malformed or missing slots mean "attribute
// absent", never an error.
type StockRecord struct {
	// SKU is the supplier's stock-keeping unit identifier
	SKU string `json:"SKU"`

	// Description is the supplier's display text, kept for logs
	Description string `json:"Description,omitempty"`

	// Elements are the descriptive attribute slots
	Elements []DescriptiveElement `json:"DescriptiveElements"`
}

// Attributes extracts the record's descriptive slots into a named map.
// Empty names or values are skipped.
func (r StockRecord) Attributes() map[string]string {
	attrs := make(map[string]string, len(r.Elements))
	for _, e := range r.Elements {
		name := strings.TrimSpace(e.Name)
		value := strings.TrimSpace(e.Value)
		if name == "" || value == "" {
			continue
		}
		attrs[name] = value
	}
	return attrs
}

// Query is one specification-to-SKU lookup. LengthClass defaults to
// DefaultLengthClass when empty.
type Query struct {
	Shape       string
	Quality     string
	Width       string
	Thickness   string
	LengthClass string
}

func (q Query) lengthClass() string {
	if q.LengthClass == "" {
		return DefaultLengthClass
	}
	return q.LengthClass
}

// String returns a human-readable form for logs and error detail
func (q Query) String() string {
	return q.Shape + " " + q.Quality + " " + q.Width + " x " + q.Thickness + " (" + q.lengthClass() + ")"
}
