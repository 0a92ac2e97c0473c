// Package main provides the autoloader CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/autoloader/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
