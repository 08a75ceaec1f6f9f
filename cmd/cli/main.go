// Package main is the entry point for the bangler CLI.
package main

import (
	"os"

	"bangler/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
