// Package cmd - price command
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bangler/adapters/stuller"
	"bangler/core/catalog"
	"bangler/core/density"
	"bangler/core/engine"
	"bangler/core/material"
	"bangler/core/types"
	"bangler/core/weight"
	"bangler/internal/config"
	"bangler/internal/errors"
)

var (
	priceSize      int
	priceShape     string
	priceColor     string
	priceQuality   string
	priceWidth     string
	priceThickness string
	priceBaseFee   string
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price one bangle specification",
	Long: `Price a bangle from its five material choices plus size.

Width and thickness use the catalog's own spelling, e.g. "4 Mm" and
"1.5 Mm"; run "bangler options" to see what is stocked.

Example:
  bangler price --size 15 --shape Flat --color Yellow --quality 14K \
    --width "4 Mm" --thickness "1.5 Mm"`,
	RunE: runPrice,
}

func init() {
	priceCmd.Flags().IntVar(&priceSize, "size", 0, "bangle size (10-27)")
	priceCmd.Flags().StringVar(&priceShape, "shape", "", "metal shape (e.g. Flat)")
	priceCmd.Flags().StringVar(&priceColor, "color", "", "metal color (Yellow, White, Rose, Green, Sterling Silver)")
	priceCmd.Flags().StringVar(&priceQuality, "quality", "", "karat quality (10K, 14K, 18K); omit for Sterling Silver")
	priceCmd.Flags().StringVar(&priceWidth, "width", "", `stock width, catalog spelling (e.g. "4 Mm")`)
	priceCmd.Flags().StringVar(&priceThickness, "thickness", "", `stock thickness, catalog spelling (e.g. "1.5 Mm")`)
	priceCmd.Flags().StringVar(&priceBaseFee, "base-fee", "", "override the configured base fee for this quote")

	_ = priceCmd.MarkFlagRequired("size")
	_ = priceCmd.MarkFlagRequired("shape")
	_ = priceCmd.MarkFlagRequired("color")
	_ = priceCmd.MarkFlagRequired("width")
	_ = priceCmd.MarkFlagRequired("thickness")
}

func runPrice(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	eng, _, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	spec := types.BangleSpec{
		Size:      priceSize,
		Shape:     types.Shape(priceShape),
		Color:     types.Color(priceColor),
		Quality:   priceQuality,
		Width:     priceWidth,
		Thickness: priceThickness,
	}

	var opts []engine.RequestOption
	if priceBaseFee != "" {
		fee, err := decimal.NewFromString(priceBaseFee)
		if err != nil {
			return fmt.Errorf("invalid --base-fee %q", priceBaseFee)
		}
		opts = append(opts, engine.WithBaseFee(fee))
	}

	breakdown, err := eng.Price(ctx, spec, opts...)
	if err != nil {
		printFailure(errors.AsError(err))
		os.Exit(1)
	}

	printBreakdown(breakdown)
	return nil
}

func printBreakdown(b *types.PriceBreakdown) {
	fmt.Println("Bangle Price")
	fmt.Println("============")
	fmt.Printf("  SKU:              %s\n", b.SKU)
	fmt.Printf("  Material needed:  %.2f in\n", b.MaterialLengthIn)
	fmt.Printf("  Material weight:  %s dwt\n", b.WeightDwt.StringFixed(4))
	fmt.Printf("  Price per dwt:    $%s\n", b.UnitPrice.StringFixed(2))
	fmt.Printf("  Material cost:    $%s\n", b.MaterialCost.StringFixed(2))
	fmt.Printf("  Base fee:         $%s\n", b.BaseFee.StringFixed(2))
	fmt.Printf("  Total price:      $%s\n", b.TotalPrice.StringFixed(2))
}

func printFailure(e *errors.Error) {
	fmt.Fprintf(os.Stderr, "Could not price this bangle: %s\n", e.Message)
	if e.Suggestion != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", e.Suggestion)
	}
}

// buildEngine wires the pricing engine from configuration: file-backed
// catalog, live Stuller price source, density table.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, *catalog.Index, error) {
	client, err := stuller.NewClient(cfg.Stuller)
	if err != nil {
		return nil, nil, err
	}

	index, err := catalog.Load(ctx, catalog.NewFileSource(cfg.Catalog.InventoryPath))
	if err != nil {
		return nil, nil, err
	}

	baseFee, err := cfg.Pricing.BaseFee()
	if err != nil {
		return nil, nil, err
	}

	eng := engine.New(
		material.NewCalculator(material.Config{
			KFactor:          cfg.Material.KFactor,
			SeamAllowanceIn:  cfg.Material.SeamAllowanceIn,
			RoundIncrementIn: cfg.Material.RoundIncrementIn,
		}),
		weight.NewCalculator(density.NewTable()),
		index,
		client,
		baseFee,
		engine.WithLengthClass(cfg.Catalog.LengthClass),
	)
	return eng, index, nil
}
