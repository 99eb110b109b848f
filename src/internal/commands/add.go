package commands

import (
	"context"
	"flag"

	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/registry"
)

func CreateAddCommand() *AddCommand {
	return &AddCommand{
		fs: flag.NewFlagSet("add", flag.ContinueOnError),
	}
}

// AddCommand downloads a hosts list and adds it as a new source.
type AddCommand struct {
	fs *flag.FlagSet
	mutation

	url string
}

func (c *AddCommand) Name() string {
	return c.fs.Name()
}

func (c *AddCommand) Init(args []string, ctx *AppContext) error {
	c.registerFlags(c.fs)

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	url, err := singleArg(c.fs, "URL")
	if err != nil {
		return err
	}
	c.url = url

	return c.prepare(ctx)
}

func (c *AddCommand) Run() error {
	outcome, err := c.reg.AddURL(context.Background(), c.url)
	if err != nil {
		return err
	}

	if outcome.Status == registry.StatusRefused {
		log.Warnf("%s was not added", c.url)
		return nil
	}

	log.Infof("Added %s (md5 %s)", c.url, outcome.Checksum)
	return c.commit()
}
