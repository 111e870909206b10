package main

import (
	"os"

	"github.com/ozgurk/ledgerlens/cmd/ledgerlens/commands"
)

// main is the entry point for the ledgerlens CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
