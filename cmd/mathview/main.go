// Command mathview renders TeX math from the command line: single
// expressions, whole documents with embedded delimiters, or version
// information about the configured engine.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/mathview/cmd/mathview/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
