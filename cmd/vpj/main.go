package main

import (
	"os"

	"github.com/dmkov/vpjournal/cmd/vpj/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
