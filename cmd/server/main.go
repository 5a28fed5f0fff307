// Package main is the entry point for the todo service. It exposes a cobra
// CLI with a serve command (the default) that wires all dependencies using
// samber/do v2, starts the HTTP server and handles graceful shutdown on
// SIGINT/SIGTERM, and a migrate command that applies the store schema.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
