// Package main is the entry point for the letta-mcp CLI.
package main

import (
	"os"

	"github.com/thoreinstein/letta-mcp/cmd/letta-mcp/commands"
	"github.com/thoreinstein/letta-mcp/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
