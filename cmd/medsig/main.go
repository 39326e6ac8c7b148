// Package main provides the medsig command line entry point.
// Prints the sample medications, one formatted line each.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "medsig:", err)
		os.Exit(1)
	}
}
