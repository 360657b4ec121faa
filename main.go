// Package main is the entry point for the ng5gdata capture analysis CLI.
package main

import (
	"fmt"
	"os"

	"github.com/antonioalberti/ng5Gdata/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
