package main

import (
	"os"

	"github.com/SimeonTsvetanov/quizzard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
