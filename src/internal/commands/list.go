package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/lost-hosts/lost/src/internal/config"
	"github.com/lost-hosts/lost/src/internal/document"
	"github.com/lost-hosts/lost/src/internal/hashing"
)

type sourceSummary struct {
	URL      string `yaml:"url"`
	Lines    int    `yaml:"lines"`
	Checksum string `yaml:"checksum"`
}

func CreateListCommand() *ListCommand {
	return &ListCommand{
		fs: flag.NewFlagSet("list", flag.ContinueOnError),
	}
}

// ListCommand prints the source URLs in document order.
type ListCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	cfg    *config.Config
	output outputFormat
}

func (c *ListCommand) Name() string {
	return c.fs.Name()
}

func (c *ListCommand) Init(args []string, ctx *AppContext) error {
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

func (c *ListCommand) Run() error {
	doc, err := loadDocument(c.cfg.GetAbsHostsFile())
	if err != nil {
		return err
	}

	if c.output == outputYAML {
		summaries := make([]sourceSummary, 0, len(doc.Sources))
		for _, src := range doc.Sources {
			summaries = append(summaries, summarize(src))
		}
		return writeYAML(c.ctx.out(), map[string]interface{}{"sources": summaries})
	}

	reg := newRegistry(c.cfg, doc, nil)
	for url := range reg.URLs() {
		fmt.Fprintln(c.ctx.out(), url)
	}
	return nil
}

func summarize(src document.Source) sourceSummary {
	lines := 0
	if src.Content != "" {
		lines = strings.Count(strings.TrimSuffix(src.Content, "\n"), "\n") + 1
	}
	return sourceSummary{
		URL:      src.URL,
		Lines:    lines,
		Checksum: hashing.ContentChecksum(src.Content),
	}
}
