// Package main is the entry point for the urlclean CLI.
package main

import (
	"os"

	"github.com/jmylchreest/urlclean/cmd/urlclean/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
