package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/registry"
)

func CreateUpdateCommand() *UpdateCommand {
	return &UpdateCommand{
		fs: flag.NewFlagSet("update", flag.ContinueOnError),
	}
}

// UpdateCommand downloads one source again and replaces its content.
type UpdateCommand struct {
	fs *flag.FlagSet
	mutation

	url string
}

func (c *UpdateCommand) Name() string {
	return c.fs.Name()
}

func (c *UpdateCommand) Init(args []string, ctx *AppContext) error {
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

func (c *UpdateCommand) Run() error {
	outcome, err := c.reg.UpdateOne(context.Background(), c.url)
	if err != nil {
		return err
	}

	if outcome.Status.Failed() {
		return fmt.Errorf("failed to update %s: %w", outcome.URL, outcome.Err)
	}
	if outcome.Status == registry.StatusRefused {
		log.Warnf("%s was not updated", outcome.URL)
	}

	return c.commit()
}

func CreateUpdateAllCommand() *UpdateAllCommand {
	return &UpdateAllCommand{
		fs: flag.NewFlagSet("update-all", flag.ContinueOnError),
	}
}

// UpdateAllCommand updates every source in document order. Sources that were
// updated are saved even when others failed.
type UpdateAllCommand struct {
	fs *flag.FlagSet
	mutation
}

func (c *UpdateAllCommand) Name() string {
	return c.fs.Name()
}

func (c *UpdateAllCommand) Init(args []string, ctx *AppContext) error {
	c.registerFlags(c.fs)

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() != 0 {
		return fmt.Errorf("update-all takes no arguments")
	}

	return c.prepare(ctx)
}

func (c *UpdateAllCommand) Run() error {
	outcomes := c.reg.UpdateAll(context.Background())

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Status.Failed() {
			failed++
			log.Errorf("%s: %s: %v", outcome.URL, outcome.Status, outcome.Err)
			continue
		}
		log.Infof("%s: %s", outcome.URL, outcome.Status)
	}

	if err := c.commit(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed to update", failed, len(outcomes))
	}
	return nil
}
