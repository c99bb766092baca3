// Package main provides the entry point for the corpora CLI tool.
package main

import (
	"os"

	"corpora/cmd/corpora/cmd"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cmd.Execute(version, commit, date); err != nil {
		os.Exit(1)
	}
}
