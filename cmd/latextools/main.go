package main

import (
	"os"

	"github.com/eolymp/go-latextools/cmd/latextools/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
