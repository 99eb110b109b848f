package commands

import (
	"flag"
	"fmt"

	"github.com/lost-hosts/lost/src/internal/config"
	"github.com/lost-hosts/lost/src/internal/hashing"
	"github.com/lost-hosts/lost/src/internal/hosts"
	"github.com/lost-hosts/lost/src/internal/log"
)

type sourceCheck struct {
	URL       string   `yaml:"url"`
	Checksum  string   `yaml:"checksum"`
	Valid     bool     `yaml:"valid"`
	Line      int      `yaml:"line,omitempty"`
	Reason    string   `yaml:"reason,omitempty"`
	Dangerous []string `yaml:"dangerous,omitempty"`
}

type checkReport struct {
	HostsFile string        `yaml:"hosts_file"`
	Sources   []sourceCheck `yaml:"sources"`
}

func CreateCheckCommand() *CheckCommand {
	return &CheckCommand{
		fs: flag.NewFlagSet("check", flag.ContinueOnError),
	}
}

// CheckCommand verifies the document structure and validates the content of every source.
type CheckCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	output outputFormat
}

func (c *CheckCommand) Name() string {
	return c.fs.Name()
}

func (c *CheckCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	registerOutputFlag(c.fs, &c.output)

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

func (c *CheckCommand) Run() error {
	path := c.cfg.GetAbsHostsFile()
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	report := checkReport{HostsFile: path, Sources: make([]sourceCheck, 0, len(doc.Sources))}
	invalid := 0
	for _, src := range doc.Sources {
		result := hosts.Validate(src.Content)
		check := sourceCheck{
			URL:       src.URL,
			Checksum:  hashing.ContentChecksum(src.Content),
			Valid:     result.Valid,
			Line:      result.Line,
			Reason:    result.Reason,
			Dangerous: result.Dangerous,
		}
		if !result.Valid {
			invalid++
			log.Errorf("%s: line %d: %s", src.URL, result.Line, result.Reason)
		}
		report.Sources = append(report.Sources, check)
	}

	if c.output == outputYAML {
		if err := writeYAML(c.ctx.out(), report); err != nil {
			return err
		}
	} else {
		c.printText(report)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d sources are invalid", invalid, len(report.Sources))
	}
	return nil
}

func (c *CheckCommand) printText(report checkReport) {
	out := c.ctx.out()
	fmt.Fprintf(out, "%s: %d sources\n", report.HostsFile, len(report.Sources))
	for _, s := range report.Sources {
		switch {
		case !s.Valid:
			fmt.Fprintf(out, "  ✗ %s (line %d: %s)\n", s.URL, s.Line, s.Reason)
		case len(s.Dangerous) > 0:
			fmt.Fprintf(out, "  ! %s (%d entries point at public addresses)\n", s.URL, len(s.Dangerous))
		default:
			fmt.Fprintf(out, "  ✓ %s\n", s.URL)
		}
	}
}
