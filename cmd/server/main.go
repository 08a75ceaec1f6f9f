// Package main - Entry point for the bangler pricing server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"bangler/adapters/stuller"
	"bangler/api"
	"bangler/core/catalog"
	"bangler/core/density"
	"bangler/core/engine"
	"bangler/core/material"
	"bangler/core/weight"
	"bangler/internal/config"
	"bangler/internal/logging"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	cfgPath := flag.String("config", "", "Config file (JSON or HCL)")
	inventory := flag.String("inventory", "", "Sizing stock inventory JSON (defaults to config path)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Set(cfg)
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	if problems := cfg.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "Configuration: %s\n", p)
		}
		os.Exit(1)
	}

	client, err := stuller.NewClient(cfg.Stuller)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	inventoryPath := cfg.Catalog.InventoryPath
	if *inventory != "" {
		inventoryPath = *inventory
	}
	index, err := catalog.Load(context.Background(), catalog.NewFileSource(inventoryPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	baseFee, err := cfg.Pricing.BaseFee()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
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

	apiServer := api.NewServer(eng, index, version)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	fmt.Printf("bangler pricing server v%s\n", version)
	fmt.Printf("  API: http://localhost%s/api\n", *addr)

	if err := http.ListenAndServe(*addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
