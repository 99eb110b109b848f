package commands

import (
	"context"
	"flag"
	"fmt"
	"net/netip"
	"strings"

	"github.com/lost-hosts/lost/src/internal/config"
	"github.com/lost-hosts/lost/src/internal/dnscheck"
	"github.com/lost-hosts/lost/src/internal/hosts"
	"github.com/lost-hosts/lost/src/internal/log"
)

func CreateLookupCommand() *LookupCommand {
	return &LookupCommand{
		fs: flag.NewFlagSet("lookup", flag.ContinueOnError),
	}
}

// LookupCommand shows how the managed sources map a hostname and what an upstream
// resolver returns for it.
type LookupCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	hostname string
	upstream string
}

func (c *LookupCommand) Name() string {
	return c.fs.Name()
}

func (c *LookupCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs.StringVar(&c.upstream, "upstream", "", "DNS server to compare against (overrides lookup.upstream)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	hostname, err := singleArg(c.fs, "hostname")
	if err != nil {
		return err
	}
	if !hosts.IsValidHostname(hostname) {
		return fmt.Errorf("invalid hostname %q", hostname)
	}
	c.hostname = hostname

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.upstream == "" {
		c.upstream = cfg.Lookup.Upstream
	}

	return nil
}

func (c *LookupCommand) Run() error {
	doc, err := loadDocument(c.cfg.GetAbsHostsFile())
	if err != nil {
		return err
	}

	out := c.ctx.out()
	matches := doc.Lookup(c.hostname)
	if len(matches) == 0 {
		fmt.Fprintf(out, "%s is not mapped by any source\n", c.hostname)
	} else {
		fmt.Fprintf(out, "Managed entries for %s:\n", c.hostname)
		for _, m := range matches {
			addr, _, _ := hosts.ParseEntry(m.Entry)
			fmt.Fprintf(out, "  %-40s %-10s %s\n", m.Entry, entryKind(addr), m.URL)
		}
	}

	resolver, err := dnscheck.NewResolver(c.upstream, dnscheck.DefaultTimeout)
	if err != nil {
		return err
	}

	addrs, err := resolver.Resolve(context.Background(), c.hostname)
	if err != nil {
		log.Warnf("Upstream lookup failed: %v", err)
		return nil
	}

	if len(addrs) == 0 {
		fmt.Fprintf(out, "Upstream %s: no records\n", resolver.Address())
		return nil
	}
	formatted := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		formatted = append(formatted, addr.String())
	}
	fmt.Fprintf(out, "Upstream %s: %s\n", resolver.Address(), strings.Join(formatted, ", "))
	return nil
}

// entryKind tells whether an entry blocks a name or sends it somewhere else.
func entryKind(addr netip.Addr) string {
	switch {
	case addr.IsUnspecified(), addr.IsLoopback():
		return "sinkhole"
	case hosts.IsDangerous(addr):
		return "redirect!"
	default:
		return "redirect"
	}
}
