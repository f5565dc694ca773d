package main

import (
	"os"

	"github.com/user-simon/kern/cmd/kern/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
