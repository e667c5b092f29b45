package main

import (
	"os"

	"github.com/seojinp/wanted-radar/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
