package commands

import (
	"flag"
)

func CreateRemoveCommand() *RemoveCommand {
	return &RemoveCommand{
		fs: flag.NewFlagSet("remove", flag.ContinueOnError),
	}
}

// RemoveCommand deletes a source and its entries.
type RemoveCommand struct {
	fs *flag.FlagSet
	mutation

	url string
}

func (c *RemoveCommand) Name() string {
	return c.fs.Name()
}

func (c *RemoveCommand) Init(args []string, ctx *AppContext) error {
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

func (c *RemoveCommand) Run() error {
	if _, err := c.reg.Remove(c.url); err != nil {
		return err
	}
	return c.commit()
}
