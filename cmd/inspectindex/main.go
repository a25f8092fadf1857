// Inspect a B+ tree secondary index file.
// Usage: go run ./cmd/inspectindex <path-to-index.db>
package main

import (
	"fmt"
	"os"

	"bptreeindex/bptree"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <index.db>\n", os.Args[0])
		os.Exit(1)
	}
	if err := bptree.InspectIndexFile(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
