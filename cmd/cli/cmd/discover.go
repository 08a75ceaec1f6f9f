// Package cmd - discover command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"bangler/adapters/stuller"
	"bangler/core/catalog"
	"bangler/internal/config"
)

var discoverOutput string

// discoverCmd walks the supplier's sizing stock catalog and saves it
// as the local inventory the pricing commands match against.
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Fetch the supplier's sizing stock catalog",
	Long: `Walk the supplier's paginated product search for sizing stock and
save the result as the local inventory file. Run this before the first
price, and again whenever the supplier's stock changes.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "", "inventory file to write (default from config)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	if problems := cfg.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "Configuration: %s\n", p)
		}
		return fmt.Errorf("configuration incomplete")
	}

	client, err := stuller.NewClient(cfg.Stuller)
	if err != nil {
		return err
	}

	fmt.Println("Discovering sizing stock products...")
	start := time.Now()

	products, err := client.SearchSizingStock(ctx, cfg.Catalog.PageSize, cfg.Catalog.MaxPages)
	if err != nil {
		return err
	}

	records := stuller.ProductsToRecords(products)
	index := catalog.BuildIndex(records)

	outPath := discoverOutput
	if outPath == "" {
		outPath = cfg.Catalog.InventoryPath
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	if err := catalog.SaveInventory(outPath, records, time.Now().Unix()); err != nil {
		return err
	}

	fmt.Printf("Discovered %d products (%d distinct specifications) in %s\n",
		len(records), index.Size(), time.Since(start).Round(time.Millisecond))
	fmt.Printf("Inventory saved to %s\n", outPath)
	return nil
}
