package main

import (
	"os"

	"github.com/tripwise/go-tripgraph/cmd/tripgraph"
)

func main() {
	if err := tripgraph.Execute(); err != nil {
		os.Exit(1)
	}
}
