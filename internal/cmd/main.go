package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/chirpy-labs/arbor/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	log := hclog.New(&hclog.LoggerOptions{
		Name: cliName,
	})

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	initCommands(log, ui)

	// A bare invocation starts the server; the version flag spellings
	// route to the version command.
	sub := args[1:]
	switch {
	case len(sub) == 0:
		sub = []string{"server"}
	case sub[0] == "-v" || sub[0] == "-version" || sub[0] == "--version":
		sub = []string{"version"}
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     sub,
		Version:  version.Version,
		Commands: Commands,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(fmt.Sprintf("error running %s: %v", cliName, err))
		return 1
	}
	return exitCode
}
