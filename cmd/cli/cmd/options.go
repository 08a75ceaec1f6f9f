// Package cmd - options and sizes commands
package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"bangler/core/catalog"
	"bangler/core/geometry"
	"bangler/internal/config"
)

var optionsShape string

// optionsCmd lists the stocked material choices
var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List stocked shape/quality/width/thickness combinations",
	RunE:  runOptions,
}

func init() {
	optionsCmd.Flags().StringVar(&optionsShape, "shape", "", "limit to one metal shape")
}

func runOptions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := config.Get()

	index, err := catalog.Load(ctx, catalog.NewFileSource(cfg.Catalog.InventoryPath))
	if err != nil {
		return err
	}

	opts := index.AvailableOptions()

	shapes := make([]string, 0, len(opts))
	for shape := range opts {
		if optionsShape != "" && shape != optionsShape {
			continue
		}
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)

	if len(shapes) == 0 {
		fmt.Println("No stocked options found.")
		return nil
	}

	for _, shape := range shapes {
		fmt.Printf("%s\n", shape)
		qualities := make([]string, 0, len(opts[shape]))
		for q := range opts[shape] {
			qualities = append(qualities, q)
		}
		sort.Strings(qualities)

		for _, quality := range qualities {
			fmt.Printf("  %s\n", quality)
			for _, width := range opts.Widths(shape, quality) {
				fmt.Printf("    %-10s %v\n", width, opts[shape][quality][width])
			}
		}
	}
	return nil
}

// sizesCmd lists valid bangle sizes with their dimensions
var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List valid bangle sizes and their circumferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range geometry.ValidSizes() {
			d, _ := geometry.InsideDiameterMm(s)
			c, _ := geometry.CircumferenceMm(s)
			fmt.Printf("  %2d  diameter %6.2f mm  circumference %6.2f mm\n", s, d, c)
		}
		return nil
	},
}
