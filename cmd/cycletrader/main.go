package main

import (
	"os"

	"github.com/mwhitlock/cycletrader/cmd/cycletrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
