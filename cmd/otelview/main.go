// Package main provides the otelview CLI.
package main

import (
	"os"

	"github.com/otelview-labs/otelview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
