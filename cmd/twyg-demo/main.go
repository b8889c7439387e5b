// Command twyg-demo prints sample log lines with a twyg configuration
// assembled from files, environment variables and flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Exit); err != nil {
		fmt.Fprintln(os.Stderr, "twyg-demo:", err)
		os.Exit(1)
	}
}
