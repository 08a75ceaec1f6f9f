package catalog

import (
	"context"
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"bangler/internal/errors"
	"bangler/internal/logging"
)

// Source provides the ordered stock record collection at process
// start. Implementations: the Stuller adapter's paginated search and
// the saved-inventory file loader below.
type Source interface {
	// FetchStockRecords returns all sizing stock records in stable
	// supplier order
	FetchStockRecords(ctx context.Context) ([]StockRecord, error)
}

// inventoryFile is the shape of a saved sizing-stock inventory dump:
// the supplier's own product JSON under a thin metadata envelope.
type inventoryFile struct {
	Timestamp int64         `json:"timestamp"`
	Products  []StockRecord `json:"products"`
}

// FileSource loads stock records from a previously saved inventory
// JSON file.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// FetchStockRecords implements Source
func (s *FileSource) FetchStockRecords(ctx context.Context) ([]StockRecord, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Config("cannot read inventory file", err).
			WithDetail("path=%s", s.Path).
			WithSuggestion("Run `bangler discover` to build the sizing-stock inventory.")
	}

	var inv inventoryFile
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, errors.Config("cannot parse inventory file", err).
			WithDetail("path=%s", s.Path)
	}

	logging.Info("loaded sizing stock inventory",
		zap.String("path", s.Path),
		zap.Int("records", len(inv.Products)))
	return inv.Products, nil
}

// SaveInventory writes stock records as an inventory file that
// FileSource can load back.
func SaveInventory(path string, records []StockRecord, timestamp int64) error {
	data, err := json.MarshalIndent(inventoryFile{
		Timestamp: timestamp,
		Products:  records,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load fetches from a source and builds the index in one step
func Load(ctx context.Context, source Source) (*Index, error) {
	records, err := source.FetchStockRecords(ctx)
	if err != nil {
		return nil, err
	}
	return BuildIndex(records), nil
}
