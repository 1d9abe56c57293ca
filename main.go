package main

import (
	"os"

	"github.com/talenthunt/talent-ranker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
