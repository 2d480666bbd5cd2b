// Command driftimg renders and validates optimized images from the command
// line.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/driftimg/cmd/driftimg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
