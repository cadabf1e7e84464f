package main

import (
	"os"

	"phase-steganography/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
