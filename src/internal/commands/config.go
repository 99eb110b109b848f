package commands

import (
	"flag"

	"github.com/lost-hosts/lost/src/internal/config"
)

func CreateConfigCommand() *ConfigCommand {
	return &ConfigCommand{
		fs: flag.NewFlagSet("config", flag.ContinueOnError),
	}
}

// ConfigCommand prints the effective configuration as TOML.
type ConfigCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func (c *ConfigCommand) Name() string {
	return c.fs.Name()
}

func (c *ConfigCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *ConfigCommand) Run() error {
	buf, err := c.cfg.SerializeConfig()
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(c.ctx.out())
	return err
}
