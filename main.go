package main

import (
	"os"

	"github.com/docsitehq/docsite/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
