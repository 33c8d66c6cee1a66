package main

import (
	"os"

	"github.com/sandrolain/decexpr/cmd/decexpr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
