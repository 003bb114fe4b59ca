// Command catalogctl fetches products from the commerce API and prints
// the normalized records.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
