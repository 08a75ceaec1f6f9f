package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"bangler/core/catalog"
	"bangler/core/density"
	"bangler/core/material"
	"bangler/core/types"
	"bangler/core/weight"
	"bangler/internal/errors"
)

// fakeSource is a scriptable pricing collaborator
type fakeSource struct {
	products []ProductPrice
	err      error
	calls    int
}

func (f *fakeSource) QuoteSKU(ctx context.Context, sku string) ([]ProductPrice, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func testIndex() *catalog.Index {
	return catalog.BuildIndex([]catalog.StockRecord{
		{
			SKU: "SIZING-14KY-4X15",
			Elements: []catalog.DescriptiveElement{
				{Name: catalog.AttrMetalShape, Value: "Flat"},
				{Name: catalog.AttrQuality, Value: "14K Yellow"},
				{Name: catalog.AttrWidth, Value: "4 Mm"},
				{Name: catalog.AttrThickness, Value: "1.5 Mm"},
				{Name: catalog.AttrLength, Value: "Bulk"},
			},
		},
		{
			SKU: "SIZING-SS-6X2",
			Elements: []catalog.DescriptiveElement{
				{Name: catalog.AttrMetalShape, Value: "Flat"},
				{Name: catalog.AttrQuality, Value: "Sterling Silver"},
				{Name: catalog.AttrWidth, Value: "6 Mm"},
				{Name: catalog.AttrThickness, Value: "2 Mm"},
				{Name: catalog.AttrLength, Value: "Bulk"},
			},
		},
	})
}

func newTestEngine(source PriceSource, opts ...Option) *Engine {
	return New(
		material.NewCalculator(material.DefaultConfig()),
		weight.NewCalculator(density.NewTable()),
		testIndex(),
		source,
		decimal.RequireFromString("475.00"),
		opts...,
	)
}

func validSpec() types.BangleSpec {
	return types.BangleSpec{
		Size:      15,
		Shape:     types.ShapeFlat,
		Color:     types.ColorYellow,
		Quality:   "14K",
		Width:     "4 Mm",
		Thickness: "1.5 Mm",
	}
}

func TestPriceHappyPath(t *testing.T) {
	source := &fakeSource{products: []ProductPrice{{
		SKU:      "SIZING-14KY-4X15",
		Price:    decimal.RequireFromString("87.08678"),
		Currency: "USD",
		HasPrice: true,
	}}}
	eng := newTestEngine(source)

	b, err := eng.Price(context.Background(), validSpec())
	if err != nil {
		t.Fatalf("Price: %v", err)
	}

	if b.SKU != "SIZING-14KY-4X15" {
		t.Errorf("SKU = %s, want SIZING-14KY-4X15", b.SKU)
	}
	if b.MaterialLengthIn != 7.75 {
		t.Errorf("MaterialLengthIn = %v, want 7.75", b.MaterialLengthIn)
	}

	// Money math is fixed-point end to end
	wantCost := b.UnitPrice.Mul(b.WeightDwt).Round(2)
	if !b.MaterialCost.Equal(wantCost) {
		t.Errorf("MaterialCost = %s, want %s", b.MaterialCost, wantCost)
	}
	wantTotal := b.MaterialCost.Add(decimal.RequireFromString("475.00"))
	if !b.TotalPrice.Equal(wantTotal) {
		t.Errorf("TotalPrice = %s, want %s", b.TotalPrice, wantTotal)
	}
	t.Logf("weight %s dwt, material $%s, total $%s", b.WeightDwt, b.MaterialCost, b.TotalPrice)
}

func TestPriceBaseFeeOverride(t *testing.T) {
	source := &fakeSource{products: []ProductPrice{{
		SKU: "SIZING-14KY-4X15", Price: decimal.NewFromInt(80), HasPrice: true,
	}}}
	eng := newTestEngine(source)

	b, err := eng.Price(context.Background(), validSpec(), WithBaseFee(decimal.NewFromInt(500)))
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if !b.BaseFee.Equal(decimal.NewFromInt(500)) {
		t.Errorf("BaseFee = %s, want 500", b.BaseFee)
	}
	if !b.TotalPrice.Equal(b.MaterialCost.Add(decimal.NewFromInt(500))) {
		t.Errorf("TotalPrice = %s does not include the overridden fee", b.TotalPrice)
	}
}

func TestPriceSkuNotFound(t *testing.T) {
	source := &fakeSource{}
	eng := newTestEngine(source)

	spec := validSpec()
	spec.Width = "9 Mm" // not stocked

	_, err := eng.Price(context.Background(), spec)
	if err == nil {
		t.Fatal("expected SKU_NOT_FOUND")
	}
	if !errors.IsType(err, errors.TypeSkuNotFound) {
		t.Errorf("expected SKU_NOT_FOUND, got %v", err)
	}
	if source.calls != 0 {
		t.Errorf("price source called %d times for an unmatched spec", source.calls)
	}
}

func TestPriceCollaboratorFailureIsPriceUnavailable(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("connection refused")}
	eng := newTestEngine(source)

	_, err := eng.Price(context.Background(), validSpec())
	if err == nil {
		t.Fatal("expected PRICE_UNAVAILABLE")
	}
	if !errors.IsType(err, errors.TypePriceUnavailable) {
		t.Errorf("expected PRICE_UNAVAILABLE for a transport error, got %v", err)
	}
}

// TestEmptyProductListIsCatalogDrift: the collaborator answered
// successfully but knows nothing about the SKU, so the failure is
// SKU_NOT_FOUND, not PRICE_UNAVAILABLE.
func TestEmptyProductListIsCatalogDrift(t *testing.T) {
	source := &fakeSource{products: []ProductPrice{}}
	eng := newTestEngine(source)

	_, err := eng.Price(context.Background(), validSpec())
	if err == nil {
		t.Fatal("expected SKU_NOT_FOUND")
	}
	if !errors.IsType(err, errors.TypeSkuNotFound) {
		t.Errorf("expected SKU_NOT_FOUND for an empty product list, got %v", err)
	}
}

func TestUnusablePriceIsPriceUnavailable(t *testing.T) {
	cases := []ProductPrice{
		{SKU: "SIZING-14KY-4X15", HasPrice: false},
		{SKU: "SIZING-14KY-4X15", Price: decimal.Zero, HasPrice: true},
		{SKU: "SIZING-14KY-4X15", Price: decimal.NewFromInt(-10), HasPrice: true},
	}
	for i, p := range cases {
		source := &fakeSource{products: []ProductPrice{p}}
		eng := newTestEngine(source)

		_, err := eng.Price(context.Background(), validSpec())
		if err == nil {
			t.Errorf("case %d: expected PRICE_UNAVAILABLE", i)
			continue
		}
		if !errors.IsType(err, errors.TypePriceUnavailable) {
			t.Errorf("case %d: expected PRICE_UNAVAILABLE, got %v", i, err)
		}
	}
}

func TestPriceSterlingSilver(t *testing.T) {
	source := &fakeSource{products: []ProductPrice{{
		SKU: "SIZING-SS-6X2", Price: decimal.NewFromInt(3), HasPrice: true,
	}}}
	eng := newTestEngine(source)

	spec := types.BangleSpec{
		Size:      12,
		Shape:     types.ShapeFlat,
		Color:     types.ColorSterlingSilver,
		Width:     "6 Mm",
		Thickness: "2 Mm",
	}
	b, err := eng.Price(context.Background(), spec)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if b.SKU != "SIZING-SS-6X2" {
		t.Errorf("SKU = %s, want SIZING-SS-6X2", b.SKU)
	}
	if b.Weight.DensityGPerCm3 != density.SterlingSilverDensity {
		t.Errorf("density = %v, want sterling %v", b.Weight.DensityGPerCm3, density.SterlingSilverDensity)
	}
}

func TestValidation(t *testing.T) {
	eng := newTestEngine(&fakeSource{})

	cases := []struct {
		name   string
		mutate func(*types.BangleSpec)
	}{
		{"size below range", func(s *types.BangleSpec) { s.Size = 9 }},
		{"size above range", func(s *types.BangleSpec) { s.Size = 28 }},
		{"unknown shape", func(s *types.BangleSpec) { s.Shape = "Oval" }},
		{"unknown color", func(s *types.BangleSpec) { s.Color = "Purple" }},
		{"unknown quality", func(s *types.BangleSpec) { s.Quality = "24K" }},
		{"missing quality", func(s *types.BangleSpec) { s.Quality = "" }},
		{"missing width", func(s *types.BangleSpec) { s.Width = "" }},
		{"missing thickness", func(s *types.BangleSpec) { s.Thickness = "" }},
		{"quality on sterling", func(s *types.BangleSpec) {
			s.Color = types.ColorSterlingSilver
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := validSpec()
			c.mutate(&spec)
			err := eng.Validate(spec)
			if err == nil {
				t.Fatal("expected INVALID_INPUT")
			}
			if !errors.IsType(err, errors.TypeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}

	if err := eng.Validate(validSpec()); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}

func TestObserversSeeTheFlowInOrder(t *testing.T) {
	var steps []Step
	source := &fakeSource{products: []ProductPrice{{
		SKU: "SIZING-14KY-4X15", Price: decimal.NewFromInt(80), HasPrice: true,
	}}}
	eng := newTestEngine(source, WithObserver(func(step Step, detail string) {
		steps = append(steps, step)
	}))

	withObserver, err := eng.Price(context.Background(), validSpec())
	if err != nil {
		t.Fatalf("Price: %v", err)
	}

	want := []Step{StepValidate, StepGeometry, StepLength, StepMatch, StepQuote, StepWeight, StepCompose}
	if len(steps) != len(want) {
		t.Fatalf("observer saw %d steps %v, want %d", len(steps), steps, len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %s, want %s", i, steps[i], want[i])
		}
	}

	// Observation must not affect computed values
	source2 := &fakeSource{products: source.products}
	plain := newTestEngine(source2)
	without, err := plain.Price(context.Background(), validSpec())
	if err != nil {
		t.Fatalf("Price without observer: %v", err)
	}
	if !withObserver.TotalPrice.Equal(without.TotalPrice) {
		t.Errorf("observer changed the total: %s vs %s", withObserver.TotalPrice, without.TotalPrice)
	}
}

// TestCatalogThicknessRoundTrip: thickness strings in the catalog's
// own format must always parse.
func TestCatalogThicknessRoundTrip(t *testing.T) {
	for _, r := range testIndex().Records() {
		thickness := r.Attributes()[catalog.AttrThickness]
		if _, err := material.ParseThickness(thickness); err != nil {
			t.Errorf("catalog thickness %q failed to parse: %v", thickness, err)
		}
	}
}
