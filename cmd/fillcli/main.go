// Command fillcli is a standalone entry point for the fill engine: it
// generates grid masks, solves them against a word list (optionally
// writing the fill as a .puz file), and validates grid mask files.
package main

import (
	"fmt"
	"os"

	"github.com/crossplay/fillengine/cmd/fillcli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
