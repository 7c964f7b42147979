// Command packmate verifies catalog packages against their registries and
// serves the results over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/prime399/packmate/internal/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
