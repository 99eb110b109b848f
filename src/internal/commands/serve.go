package commands

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lost-hosts/lost/src/internal/api"
	"github.com/lost-hosts/lost/src/internal/config"
	"github.com/lost-hosts/lost/src/internal/hostsfile"
	"github.com/lost-hosts/lost/src/internal/log"
)

// ServeCommand runs the HTTP API.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	listenAddr string
}

func CreateServeCommand() *ServeCommand {
	return &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address to bind the HTTP server (overrides api.listen_addr)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.listenAddr == "" {
		c.listenAddr = cfg.API.ListenAddr
	}

	return nil
}

func (c *ServeCommand) Run() error {
	path := c.cfg.GetAbsHostsFile()
	if err := hostsfile.CheckWritable(path); err != nil {
		return err
	}

	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	reg := newRegistry(c.cfg, doc, nil)
	handler := api.NewHandler(reg, hostsfile.New(path), path, api.NewConfirmations(c.cfg.Deliberation()))

	log.Infof("Managing %s with %d sources", path, reg.Len())
	log.Infof("Access restricted to loopback, private and link-local clients")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return api.NewServer(c.listenAddr, handler).ListenAndServe(ctx)
}
