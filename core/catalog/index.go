package catalog

import (
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"bangler/internal/logging"
)

// Index is the precomputed specification-to-SKU lookup, built once at
// load time and read-only afterwards. Indexing only the first-seen SKU
// per composite key preserves first-match-in-catalog-order semantics
// over a linear scan.
type Index struct {
	records []StockRecord
	bySpec  map[string]string
}

// BuildIndex extracts every record's attributes once and indexes them
// by composite key. Records missing shape, quality, width or thickness
// cannot match any query and are skipped; a missing length classifies
// as DefaultLengthClass.
func BuildIndex(records []StockRecord) *Index {
	idx := &Index{
		records: records,
		bySpec:  make(map[string]string, len(records)),
	}

	indexed, shadowed := 0, 0
	for _, r := range records {
		attrs := r.Attributes()
		shape, okShape := attrs[AttrMetalShape]
		quality, okQuality := attrs[AttrQuality]
		width, okWidth := attrs[AttrWidth]
		thickness, okThickness := attrs[AttrThickness]
		if !okShape || !okQuality || !okWidth || !okThickness {
			continue
		}
		length := attrs[AttrLength]
		if length == "" {
			length = DefaultLengthClass
		}

		key := compositeKey(shape, quality, width, thickness, length)
		if existing, ok := idx.bySpec[key]; ok {
			// Data-quality case: two records share every attribute.
			// First in catalog order wins; the shadowed SKU is logged
			// so the ambiguity stays visible.
			shadowed++
			logging.Debug("duplicate stock specification",
				zap.String("kept_sku", existing),
				zap.String("shadowed_sku", r.SKU))
			continue
		}
		idx.bySpec[key] = r.SKU
		indexed++
	}

	logging.Info("built sizing stock index",
		zap.Int("records", len(records)),
		zap.Int("indexed", indexed),
		zap.Int("shadowed", shadowed))
	return idx
}

// FindSKU resolves a query to exactly one SKU, or reports no match
func (idx *Index) FindSKU(q Query) (string, bool) {
	sku, ok := idx.bySpec[compositeKey(q.Shape, q.Quality, q.Width, q.Thickness, q.lengthClass())]
	return sku, ok
}

// Size returns the number of indexed specifications
func (idx *Index) Size() int {
	return len(idx.bySpec)
}

// Records returns the underlying catalog records in original order
func (idx *Index) Records() []StockRecord {
	return idx.records
}

func compositeKey(parts ...string) string {
	folded := make([]string, len(parts))
	for i, p := range parts {
		folded[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(folded, "|")
}

// Options enumerates the valid choices the catalog actually stocks:
// shape -> quality -> width -> thicknesses. Used to drive prompts.
type Options map[string]map[string]map[string][]string

// AvailableOptions builds the nested enumeration from the same
// attribute extraction the index uses. Thickness lists come back
// sorted by numeric magnitude.
func (idx *Index) AvailableOptions() Options {
	opts := make(Options)
	for _, r := range idx.records {
		attrs := r.Attributes()
		shape, quality := attrs[AttrMetalShape], attrs[AttrQuality]
		width, thickness := attrs[AttrWidth], attrs[AttrThickness]
		if shape == "" || quality == "" || width == "" || thickness == "" {
			continue
		}

		if opts[shape] == nil {
			opts[shape] = make(map[string]map[string][]string)
		}
		if opts[shape][quality] == nil {
			opts[shape][quality] = make(map[string][]string)
		}
		existing := opts[shape][quality][width]
		if !containsFold(existing, thickness) {
			opts[shape][quality][width] = append(existing, thickness)
		}
	}

	for _, byQuality := range opts {
		for _, byWidth := range byQuality {
			for width := range byWidth {
				SortMagnitudes(byWidth[width])
			}
		}
	}
	return opts
}

// Widths returns a quality's stocked widths sorted by numeric value
func (o Options) Widths(shape, quality string) []string {
	byWidth := o[shape][quality]
	widths := make([]string, 0, len(byWidth))
	for w := range byWidth {
		widths = append(widths, w)
	}
	SortMagnitudes(widths)
	return widths
}

// SortMagnitudes sorts magnitude-with-unit strings such as "1.5 Mm" by
// their numeric value, not lexicographically. Values with no leading
// number sort after numeric ones, alphabetically among themselves.
func SortMagnitudes(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		vi, oki := leadingNumber(values[i])
		vj, okj := leadingNumber(values[j])
		switch {
		case oki && okj:
			return vi < vj
		case oki:
			return true
		case okj:
			return false
		default:
			return values[i] < values[j]
		}
	})
}

func leadingNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func containsFold(values []string, v string) bool {
	for _, s := range values {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
