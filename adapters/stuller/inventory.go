package stuller

import (
	"context"

	"go.uber.org/zap"

	"bangler/core/catalog"
	"bangler/internal/logging"
)

// InventorySource adapts the paginated sizing-stock search into a
// catalog.Source, so the engine's catalog can be built straight from
// the live API.
type InventorySource struct {
	Client   *Client
	PageSize int

	// MaxPages caps the walk; 0 walks every page
	MaxPages int
}

// FetchStockRecords implements catalog.Source
func (s *InventorySource) FetchStockRecords(ctx context.Context) ([]catalog.StockRecord, error) {
	products, err := s.Client.SearchSizingStock(ctx, s.PageSize, s.MaxPages)
	if err != nil {
		return nil, err
	}
	return ProductsToRecords(products), nil
}

// SearchSizingStock walks the paginated product search for sizing
// stock, following NextPage tokens until the supplier runs out of
// pages or maxPages is hit.
func (c *Client) SearchSizingStock(ctx context.Context, pageSize, maxPages int) ([]Product, error) {
	if pageSize <= 0 {
		pageSize = 500
	}

	var all []Product
	nextPage := ""
	for page := 1; ; page++ {
		resp, err := c.searchProducts(ctx, searchRequest{
			Include:  []string{"All"},
			Filter:   []string{"OnPriceList", "Orderable"},
			AdvancedProductFilters: []advancedFilter{
				{Name: "Merchandising Category", Values: []string{"Sizing Stock"}},
			},
			PageSize: pageSize,
			NextPage: nextPage,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, resp.Products...)
		logging.Info("sizing stock page fetched",
			zap.Int("page", page),
			zap.Int("page_products", len(resp.Products)),
			zap.Int("running_total", len(all)))

		if resp.NextPage == "" || len(resp.Products) == 0 {
			break
		}
		if maxPages > 0 && page >= maxPages {
			logging.Warn("stopped discovery at page cap", zap.Int("max_pages", maxPages))
			break
		}
		nextPage = resp.NextPage
	}

	return all, nil
}

// ProductsToRecords converts API products to catalog stock records,
// keeping supplier order.
func ProductsToRecords(products []Product) []catalog.StockRecord {
	records := make([]catalog.StockRecord, 0, len(products))
	for _, p := range products {
		records = append(records, catalog.StockRecord{
			SKU:         p.SKU,
			Description: p.Description,
			Elements:    p.DescriptiveElements,
		})
	}
	return records
}
