package version

import (
	"fmt"

	"github.com/chirpy-labs/arbor/internal/cmd/base"
	"github.com/chirpy-labs/arbor/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of this Arbor binary"
}

func (c *Command) Help() string {
	return `Usage: arbor version

  Prints the version of this Arbor binary.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(fmt.Sprintf("arbor %s", version.Version))
	return 0
}
