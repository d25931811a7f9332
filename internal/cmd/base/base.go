// Package base provides the plumbing shared by all CLI commands.
package base

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded in all commands to provide common functionality.
type Command struct {
	// Log is the root logger; commands derive named sub-loggers from it.
	Log hclog.Logger

	// UI is used for command output to the terminal.
	UI cli.Ui
}

// FlagSet wraps flag.FlagSet with help rendering for command usage text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet creates a flag set that reports errors through the command
// instead of writing to stderr itself.
func NewFlagSet(name string) *FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help returns the rendered flag usage, one flag per line.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("Options:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "  -%s\n      %s", fl.Name, fl.Usage)
		if fl.DefValue != "" {
			fmt.Fprintf(&b, " (default: %s)", fl.DefValue)
		}
		b.WriteString("\n")
	})
	return b.String()
}
