package stuller

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"bangler/core/catalog"
	"bangler/core/engine"
)

// Product is one product entry from a search response. The
// descriptive element slots use the same JSON shape as
// catalog.StockRecord so inventory dumps round-trip.
type Product struct {
	SKU                 string                       `json:"SKU"`
	Description         string                       `json:"Description,omitempty"`
	ShortDescription    string                       `json:"ShortDescription,omitempty"`
	Price               PriceValue                   `json:"Price"`
	DescriptiveElements []catalog.DescriptiveElement `json:"DescriptiveElements,omitempty"`
}

// PriceValue absorbs the supplier's divergent price representations:
// a bare number, a numeric string, or {"Value": n, "CurrencyCode":
// "USD"}. Whatever arrives, the rest of the program only ever sees a
// decimal and a known/unknown flag.
type PriceValue struct {
	Value    decimal.Decimal
	Currency string
	Known    bool
}

// priceObject is the structured variant
type priceObject struct {
	Value        *json.Number `json:"Value"`
	CurrencyCode string       `json:"CurrencyCode"`
}

// UnmarshalJSON implements the tagged-variant parse
func (p *PriceValue) UnmarshalJSON(data []byte) error {
	*p = PriceValue{}

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		return nil
	}

	// Structured variant first
	if strings.HasPrefix(trimmed, "{") {
		var obj priceObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if obj.Value == nil {
			return nil
		}
		d, err := decimal.NewFromString(obj.Value.String())
		if err != nil {
			return nil
		}
		p.Value = d
		p.Currency = obj.CurrencyCode
		p.Known = true
		return nil
	}

	// Bare number or numeric string
	s := strings.Trim(trimmed, `"`)
	d, err := decimal.NewFromString(s)
	if err != nil {
		// Non-numeric content in a price slot is "no usable price",
		// not a decode failure of the whole response.
		return nil
	}
	p.Value = d
	p.Known = true
	return nil
}

// MarshalJSON writes the structured variant
func (p PriceValue) MarshalJSON() ([]byte, error) {
	if !p.Known {
		return []byte("null"), nil
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}
	return json.Marshal(map[string]interface{}{
		"Value":        p.Value,
		"CurrencyCode": currency,
	})
}

// QuoteSKU implements engine.PriceSource: it asks for the SKU's
// current price with the filters the shop orders under.
func (c *Client) QuoteSKU(ctx context.Context, sku string) ([]engine.ProductPrice, error) {
	resp, err := c.searchProducts(ctx, searchRequest{
		SKU:     []string{sku},
		Include: []string{"All"},
		Filter:  []string{"OnPriceList", "Orderable"},
	})
	if err != nil {
		return nil, err
	}

	prices := make([]engine.ProductPrice, 0, len(resp.Products))
	for _, p := range resp.Products {
		prices = append(prices, engine.ProductPrice{
			SKU:      p.SKU,
			Price:    p.Price.Value,
			Currency: p.Price.Currency,
			HasPrice: p.Price.Known,
		})
	}
	return prices, nil
}
