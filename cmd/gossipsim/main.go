package main

import (
	"fmt"
	"os"

	"GossipQuorum/internal/logger"
)

func main() {
	logger.Init()

	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main entry point with error handling.
func run(args []string) error {
	return newApp().Run(args)
}
