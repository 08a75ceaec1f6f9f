// Package engine orchestrates one bangle pricing computation.
//
// The flow is linear with no backtracking: validate, convert size to
// circumference, compute strip length, resolve the SKU, fetch the live
// unit price, compute weight, compose the breakdown. Every failure is
// classified before it leaves Price; no raw error crosses the boundary.
package engine

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bangler/core/catalog"
	"bangler/core/geometry"
	"bangler/core/material"
	"bangler/core/types"
	"bangler/core/weight"
	"bangler/internal/errors"
	"bangler/internal/logging"
)

// ProductPrice is one normalized supplier quote line. The adapter
// boundary has already collapsed the supplier's loose price shapes
// into a decimal; HasPrice is false when no usable price came back.
type ProductPrice struct {
	SKU      string
	Price    decimal.Decimal
	Currency string
	HasPrice bool
}

// PriceSource is the live pricing collaborator. A returned error means
// the collaborator itself failed; an empty slice with a nil error
// means it answered but does not know the SKU.
type PriceSource interface {
	QuoteSKU(ctx context.Context, sku string) ([]ProductPrice, error)
}

// Step identifies a point in the pricing flow for progress reporting
type Step int

const (
	StepValidate Step = iota
	StepGeometry
	StepLength
	StepMatch
	StepQuote
	StepWeight
	StepCompose
)

// String returns the step name
func (s Step) String() string {
	names := []string{
		"validate", "geometry", "length", "match", "quote", "weight", "compose",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Observer receives progress callbacks. Purely observational; it must
// not affect computed values.
type Observer func(step Step, detail string)

// Engine prices bangle specifications
type Engine struct {
	rules        types.BusinessRules
	materialCalc *material.Calculator
	weightCalc   *weight.Calculator
	index        *catalog.Index
	source       PriceSource
	baseFee      decimal.Decimal
	lengthClass  string
	observers    []Observer
}

// Option configures an Engine
type Option func(*Engine)

// WithObserver registers a progress observer
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithLengthClass sets the stock length class quoted against
func WithLengthClass(class string) Option {
	return func(e *Engine) {
		e.lengthClass = class
	}
}

// WithRules replaces the default business rules
func WithRules(rules types.BusinessRules) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// New creates a pricing engine. Configuration is explicit so the
// engine stays testable and reentrant; nothing is read from ambient
// global state during a pricing call.
func New(materialCalc *material.Calculator, weightCalc *weight.Calculator, index *catalog.Index, source PriceSource, baseFee decimal.Decimal, opts ...Option) *Engine {
	e := &Engine{
		rules:        types.DefaultBusinessRules(),
		materialCalc: materialCalc,
		weightCalc:   weightCalc,
		index:        index,
		source:       source,
		baseFee:      baseFee,
		lengthClass:  catalog.DefaultLengthClass,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RequestOption adjusts a single pricing call
type RequestOption func(*request)

type request struct {
	baseFee decimal.Decimal
}

// WithBaseFee overrides the engine's base fee for one request
func WithBaseFee(fee decimal.Decimal) RequestOption {
	return func(r *request) {
		r.baseFee = fee
	}
}

// Price runs the full pricing flow for one specification. The
// returned error is always a classified *errors.Error.
func (e *Engine) Price(ctx context.Context, spec types.BangleSpec, opts ...RequestOption) (breakdown *types.PriceBreakdown, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("panic during pricing", zap.Any("panic", r))
			breakdown = nil
			err = errors.Newf(errors.TypeUnknown, "internal failure during pricing").
				WithDetail("panic: %v", r)
		}
	}()

	req := request{baseFee: e.baseFee}
	for _, opt := range opts {
		opt(&req)
	}

	// Step 1: business rule validation
	e.notify(StepValidate, spec.QualityString())
	if err := e.Validate(spec); err != nil {
		return nil, err
	}

	// Step 2: size to circumference
	e.notify(StepGeometry, "")
	circumferenceMm, err := geometry.CircumferenceMm(spec.Size)
	if err != nil {
		return nil, errors.AsError(err)
	}

	// Steps 3-4: thickness parse, strip length
	thicknessMm, err := material.ParseThickness(spec.Thickness)
	if err != nil {
		return nil, errors.AsError(err)
	}
	e.notify(StepLength, "")
	lengthCalc, err := e.materialCalc.ComputeLength(circumferenceMm, thicknessMm)
	if err != nil {
		return nil, errors.AsError(err)
	}

	// Step 5: specification to SKU
	query := catalog.Query{
		Shape:       spec.Shape.String(),
		Quality:     spec.QualityString(),
		Width:       spec.Width,
		Thickness:   spec.Thickness,
		LengthClass: e.lengthClass,
	}
	e.notify(StepMatch, query.String())
	sku, ok := e.index.FindSKU(query)
	if !ok {
		logging.Warn("no SKU for specification", zap.String("query", query.String()))
		return nil, errors.Newf(errors.TypeSkuNotFound,
			"no stock material matches %s %s %s x %s",
			spec.Shape, spec.QualityString(), spec.Width, spec.Thickness).
			WithDetail("query=%s", query.String())
	}

	// Step 6: live unit price
	e.notify(StepQuote, sku)
	unitPrice, err := e.lookupUnitPrice(ctx, sku)
	if err != nil {
		return nil, err
	}

	// Step 7: purchase weight, fixed-point before money arithmetic
	e.notify(StepWeight, sku)
	w, err := e.weightCalc.TheoreticalWeightDwt(
		mustParseMagnitude(spec.Width), thicknessMm, lengthCalc.RoundedLengthIn,
		spec.QualityString(), spec.Color.String())
	if err != nil {
		return nil, errors.AsError(err)
	}
	weightDwt := decimal.NewFromFloat(w.TotalDwt).Round(4)

	// Steps 8-10: money, all fixed-point
	e.notify(StepCompose, sku)
	materialCost := unitPrice.Mul(weightDwt).Round(2)
	totalPrice := materialCost.Add(req.baseFee)

	logging.Info("pricing complete",
		zap.String("sku", sku),
		zap.String("unit_price", unitPrice.String()),
		zap.String("weight_dwt", weightDwt.String()),
		zap.String("material_cost", materialCost.String()),
		zap.String("total", totalPrice.String()))

	return &types.PriceBreakdown{
		SKU:              sku,
		UnitPrice:        unitPrice,
		WeightDwt:        weightDwt,
		MaterialLengthIn: lengthCalc.RoundedLengthIn,
		MaterialCost:     materialCost,
		BaseFee:          req.baseFee,
		TotalPrice:       totalPrice,
		Currency:         types.CurrencyUSD,
		Length:           lengthCalc,
		Weight:           w,
	}, nil
}

// lookupUnitPrice asks the collaborator for the SKU's current price
// and classifies every way that can go wrong. An answered-but-empty
// product list is catalog drift: the SKU left the supplier's catalog
// since our inventory was built, so it reports as SKU_NOT_FOUND.
func (e *Engine) lookupUnitPrice(ctx context.Context, sku string) (decimal.Decimal, error) {
	products, err := e.source.QuoteSKU(ctx, sku)
	if err != nil {
		logging.Error("price lookup failed", zap.String("sku", sku), zap.Error(err))
		return decimal.Zero, errors.PriceUnavailable("could not get a live price for "+sku, err)
	}

	if len(products) == 0 {
		return decimal.Zero, errors.Newf(errors.TypeSkuNotFound,
			"SKU %s is no longer in the supplier catalog", sku)
	}

	p := products[0]
	if !p.HasPrice || p.Price.Sign() <= 0 {
		return decimal.Zero, errors.Newf(errors.TypePriceUnavailable,
			"supplier returned no usable price for %s", sku).
			WithDetail("price=%s has_price=%t", p.Price.String(), p.HasPrice)
	}
	return p.Price, nil
}

// mustParseMagnitude reads the numeric part of a catalog magnitude
// string ("4 Mm" -> 4). The spec was validated and matched against
// the catalog before this runs, so a parse failure is a programming
// error surfaced by the Price recover.
func mustParseMagnitude(s string) float64 {
	v, err := material.ParseThickness(s)
	if err != nil {
		panic(err)
	}
	return v
}
