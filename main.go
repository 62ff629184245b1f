package main

import (
	"os"

	"github.com/andrewpaige1/promptdec-api/cmd"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}
