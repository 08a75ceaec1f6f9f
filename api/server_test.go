package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"bangler/core/catalog"
	"bangler/core/density"
	"bangler/core/engine"
	"bangler/core/material"
	"bangler/core/weight"
)

type fixedSource struct {
	products []engine.ProductPrice
	err      error
}

func (f *fixedSource) QuoteSKU(ctx context.Context, sku string) ([]engine.ProductPrice, error) {
	return f.products, f.err
}

func testServer(source engine.PriceSource) *Server {
	index := catalog.BuildIndex([]catalog.StockRecord{{
		SKU: "SIZING-001",
		Elements: []catalog.DescriptiveElement{
			{Name: catalog.AttrMetalShape, Value: "Flat"},
			{Name: catalog.AttrQuality, Value: "14K Yellow"},
			{Name: catalog.AttrWidth, Value: "4 Mm"},
			{Name: catalog.AttrThickness, Value: "1.5 Mm"},
			{Name: catalog.AttrLength, Value: "Bulk"},
		},
	}})
	eng := engine.New(
		material.NewCalculator(material.DefaultConfig()),
		weight.NewCalculator(density.NewTable()),
		index,
		source,
		decimal.RequireFromString("475.00"),
	)
	return NewServer(eng, index, "test")
}

func TestQuoteEndpoint(t *testing.T) {
	server := testServer(&fixedSource{products: []engine.ProductPrice{{
		SKU: "SIZING-001", Price: decimal.RequireFromString("87.08678"), HasPrice: true,
	}}})

	body := `{"size":15,"shape":"Flat","color":"Yellow","quality":"14K","width":"4 Mm","thickness":"1.5 Mm"}`
	req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp QuoteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Breakdown.SKU != "SIZING-001" {
		t.Errorf("SKU = %s, want SIZING-001", resp.Breakdown.SKU)
	}
	if resp.Breakdown.MaterialLengthIn != 7.75 {
		t.Errorf("MaterialLengthIn = %v, want 7.75", resp.Breakdown.MaterialLengthIn)
	}
}

func TestQuoteEndpointStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		source engine.PriceSource
		status int
	}{
		{
			"invalid json", "not json",
			&fixedSource{}, http.StatusBadRequest,
		},
		{
			"validation failure",
			`{"size":99,"shape":"Flat","color":"Yellow","quality":"14K","width":"4 Mm","thickness":"1.5 Mm"}`,
			&fixedSource{}, http.StatusBadRequest,
		},
		{
			"no catalog match",
			`{"size":15,"shape":"Flat","color":"Yellow","quality":"14K","width":"9 Mm","thickness":"1.5 Mm"}`,
			&fixedSource{}, http.StatusNotFound,
		},
		{
			"bad base fee",
			`{"size":15,"shape":"Flat","color":"Yellow","quality":"14K","width":"4 Mm","thickness":"1.5 Mm","base_fee":"lots"}`,
			&fixedSource{}, http.StatusBadRequest,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			server := testServer(c.source)
			req := httptest.NewRequest(http.MethodPost, "/quote", strings.NewReader(c.body))
			rec := httptest.NewRecorder()
			server.ServeHTTP(rec, req)
			if rec.Code != c.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, c.status, rec.Body.String())
			}

			if c.status != http.StatusOK {
				var resp ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("error body is not an ErrorResponse: %v", err)
				}
				if resp.Error == nil || resp.Error.Suggestion == "" {
					t.Error("error response missing the suggested remediation")
				}
			}
		})
	}
}

func TestOptionsEndpoint(t *testing.T) {
	server := testServer(&fixedSource{})
	req := httptest.NewRequest(http.MethodGet, "/options", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var opts map[string]map[string]map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &opts); err != nil {
		t.Fatalf("decode options: %v", err)
	}
	if _, ok := opts["Flat"]["14K Yellow"]; !ok {
		t.Errorf("options missing Flat/14K Yellow: %v", opts)
	}
}

func TestSizesAndHealthEndpoints(t *testing.T) {
	server := testServer(&fixedSource{})

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sizes", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/sizes status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("/health status = %d", rec.Code)
	}
}
