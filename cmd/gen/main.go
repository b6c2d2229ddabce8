// Command gen writes a random transaction history as CSV on stdout. The
// output is intentionally messy and serves to stress the processor under
// benchmarks; data correctness is not guaranteed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/heavyguana-aym/kithmonite/internal/gen"
)

func main() {
	rows := flag.Int("rows", 1_000_000, "total number of rows to generate")
	clients := flag.Int("clients", 1000, "number of distinct clients")
	seed := flag.Uint64("seed", 1, "rng seed")
	flag.Parse()

	if *clients < 1 || *rows < *clients {
		fmt.Fprintln(os.Stderr, "rows must be at least the number of clients")
		os.Exit(2)
	}

	g := gen.New(*seed, *clients, *rows / *clients)
	if err := g.WriteTo(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "unable to write generated rows:", err)
		os.Exit(1)
	}
}
