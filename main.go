package main

import (
	"os"

	"github.com/michelgermain/gnucash-expenses/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
