package main

import (
	"os"

	"github.com/okliver/jobwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
