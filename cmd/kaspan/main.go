// Command kaspan is the CLI driver: it loads a manifest, runs the
// distributed SCC engine across simulated ranks, and reports results,
// or converts an edge list into the on-disk CSR format the loader reads.
package main

import "github.com/dreamware/kaspan/cmd/kaspan/cmd"

func main() {
	cmd.Execute()
}
