// Package cmd provides the CLI commands for bangler.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bangler/internal/config"
	"bangler/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bangler",
	Short: "Price custom bangle bracelets from live supplier stock",
	Long: `bangler prices custom-made bangle bracelets.

It converts a ring-style size to the physical strip of stock material
required, matches the material choice against the supplier's sizing
stock catalog, fetches the live per-pennyweight price, and adds the
shop's flat base fee.

Examples:
  bangler price --size 15 --shape Flat --color Yellow --quality 14K --width "4 Mm" --thickness "1.5 Mm"
  bangler options --shape Flat
  bangler discover`,
}

// Execute runs the CLI
func Execute() error {
	defer logging.Sync()
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, JSON or HCL (default is built-in + env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(sizesCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("bangler version 1.0.0")
	},
}
