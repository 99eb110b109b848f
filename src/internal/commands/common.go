package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lost-hosts/lost/src/internal/config"
	"github.com/lost-hosts/lost/src/internal/confirm"
	"github.com/lost-hosts/lost/src/internal/document"
	"github.com/lost-hosts/lost/src/internal/fetch"
	"github.com/lost-hosts/lost/src/internal/hostsfile"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/lost-hosts/lost/src/internal/registry"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	HostsPath  string
	Verbose    bool

	// Stdout receives command output. os.Stdout is used when nil.
	Stdout io.Writer
}

func (ctx *AppContext) out() io.Writer {
	if ctx.Stdout == nil {
		return os.Stdout
	}
	return ctx.Stdout
}

// loadAndValidateConfig loads configuration from file and validates it.
// A missing file at the default location yields the defaults, any other missing file is an error.
// The -hosts override is applied before validation.
func loadAndValidateConfig(ctx *AppContext) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if ctx.ConfigPath == "" || ctx.ConfigPath == config.DefaultConfigPath {
		cfg, err = config.LoadConfigOrDefault(config.DefaultConfigPath)
	} else {
		cfg, err = config.LoadConfig(ctx.ConfigPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if ctx.HostsPath != "" {
		path, err := filepath.Abs(ctx.HostsPath)
		if err != nil {
			return nil, fmt.Errorf("invalid hosts file path %q: %w", ctx.HostsPath, err)
		}
		cfg.General.HostsFile = path
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDocument reads and parses the hosts file. A corrupted document stops the command
// before anything is changed.
func loadDocument(path string) (*document.Document, error) {
	raw, err := hostsfile.Read(path)
	if err != nil {
		return nil, err
	}
	doc, err := document.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("refusing to touch %s: %w", path, err)
	}
	return doc, nil
}

func newRegistry(cfg *config.Config, doc *document.Document, confirmer registry.Confirmer) *registry.Registry {
	return registry.New(doc, registry.Options{
		Fetcher:   fetch.NewHTTPFetcher(nil, cfg.Fetch.UserAgent),
		Confirmer: confirmer,
		Match:     registry.MatchPolicy(cfg.General.URLMatching),
		Timeout:   cfg.FetchTimeout(),
	})
}

// mutation holds the state shared by commands that change the hosts file.
type mutation struct {
	ctx *AppContext
	cfg *config.Config

	dryRun          bool
	rejectDangerous bool

	path string
	reg  *registry.Registry
}

func (m *mutation) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&m.dryRun, "dry-run", false, "Print the resulting hosts file instead of saving it")
	fs.BoolVar(&m.rejectDangerous, "reject-dangerous", false, "Refuse entries pointing at public addresses without asking")
}

// prepare loads configuration and the document. Unless this is a dry run, the hosts
// file must be writable before any source is downloaded.
func (m *mutation) prepare(ctx *AppContext) error {
	m.ctx = ctx

	if m.dryRun {
		log.SetForceStdErr(true)
	}

	cfg, err := loadAndValidateConfig(ctx)
	if err != nil {
		return err
	}
	m.cfg = cfg
	m.path = cfg.GetAbsHostsFile()

	if !m.dryRun {
		if err := hostsfile.CheckWritable(m.path); err != nil {
			return err
		}
	}

	doc, err := loadDocument(m.path)
	if err != nil {
		return err
	}

	m.reg = newRegistry(cfg, doc, m.confirmer())
	return nil
}

func (m *mutation) confirmer() registry.Confirmer {
	if m.rejectDangerous {
		return confirm.Refuse
	}
	return confirm.Stdin(m.cfg.Deliberation())
}

// commit saves the document when it changed. A dry run prints it instead.
func (m *mutation) commit() error {
	if m.dryRun {
		_, err := io.WriteString(m.ctx.out(), m.reg.Document().Serialize())
		return err
	}

	if !m.reg.Dirty() {
		log.Infof("No changes to save")
		return nil
	}

	if err := m.reg.Save(hostsfile.New(m.path)); err != nil {
		return fmt.Errorf("failed to save %s: %w", m.path, err)
	}
	log.Infof("Saved %s", m.path)
	return nil
}

// singleArg returns the only positional argument of fs.
func singleArg(fs *flag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s expects exactly one %s argument", fs.Name(), what)
	}
	return fs.Arg(0), nil
}
