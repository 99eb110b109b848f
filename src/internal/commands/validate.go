package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lost-hosts/lost/src/internal/hosts"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/utils"
)

func CreateValidateCommand() *ValidateCommand {
	return &ValidateCommand{
		fs: flag.NewFlagSet("validate", flag.ContinueOnError),
	}
}

// ValidateCommand checks a local hosts file, or stdin, against the hosts grammar.
type ValidateCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	path  string
	stdin io.Reader
}

func (c *ValidateCommand) Name() string {
	return c.fs.Name()
}

func (c *ValidateCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	switch c.fs.NArg() {
	case 0:
		c.path = "-"
	case 1:
		c.path = c.fs.Arg(0)
	default:
		return fmt.Errorf("validate takes at most one file argument")
	}

	if c.stdin == nil {
		c.stdin = os.Stdin
	}
	return nil
}

func (c *ValidateCommand) Run() error {
	in := c.stdin
	name := "stdin"
	if c.path != "-" {
		f, err := os.Open(c.path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.path, err)
		}
		defer utils.CloseOrWarn(f, c.path)
		in = f
		name = c.path
	}

	result, err := hosts.ValidateReader(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if !result.Valid {
		return fmt.Errorf("%s is not a valid hosts file: line %d: %s", name, result.Line, result.Reason)
	}

	out := c.ctx.out()
	fmt.Fprintf(out, "%s is a valid hosts file\n", name)
	if len(result.Dangerous) > 0 {
		log.Warnf("%d entries point at public addresses", len(result.Dangerous))
		for _, entry := range result.Dangerous {
			fmt.Fprintf(out, "  %s\n", entry)
		}
	}
	return nil
}
