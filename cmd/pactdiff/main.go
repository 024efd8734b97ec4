// Command pactdiff compares contract documents from the command line,
// over HTTP, in the terminal, or via MCP.
package main

import (
	"os"

	"github.com/clauseworks/pactdiff/internal/adapters/driving/cli"
)

func main() {
	err := cli.Execute()
	cli.CloseServices()
	if err != nil {
		os.Exit(1)
	}
}
