// Package main provides the entry point for the schemadoc CLI.
package main

import (
	"os"

	"github.com/schemadoc/schemadoc/cmd/schemadoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
