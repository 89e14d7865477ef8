// Package main is the entry point for the comic CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/comic/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
