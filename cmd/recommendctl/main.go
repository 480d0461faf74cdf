// Command recommendctl runs the recommendation pipeline against a local
// catalog file and manages catalogs in the object store.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
