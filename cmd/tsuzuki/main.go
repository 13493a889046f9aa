package main

import (
	"os"

	"github.com/dori/tsuzuki/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
