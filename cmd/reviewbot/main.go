package main

import (
	"os"

	"github.com/bnema/reviewbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
