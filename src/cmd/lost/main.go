package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lost-hosts/lost/src/internal/commands"
	"github.com/lost-hosts/lost/src/internal/config"
	"github.com/lost-hosts/lost/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file (optional)")
	flag.StringVar(&ctx.HostsPath, "hosts", "", "Hosts file to manage (overrides general.hosts_file)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lost - hosts file blocklist manager\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [command options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  list                    List subscribed sources\n")
		fmt.Fprintf(os.Stderr, "  add <url>               Download a hosts list and add it as a source\n")
		fmt.Fprintf(os.Stderr, "  update <url>            Download a source again and replace its entries\n")
		fmt.Fprintf(os.Stderr, "  update-all              Update every source\n")
		fmt.Fprintf(os.Stderr, "  remove <url>            Remove a source and its entries\n")
		fmt.Fprintf(os.Stderr, "  validate [file]         Validate a hosts file (stdin when no file is given)\n")
		fmt.Fprintf(os.Stderr, "  check                   Check the managed hosts file and every source\n")
		fmt.Fprintf(os.Stderr, "  lookup <hostname>       Show how a hostname is mapped and what DNS returns for it\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "  config                  Print the effective configuration\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateListCommand(),
		commands.CreateAddCommand(),
		commands.CreateUpdateCommand(),
		commands.CreateUpdateAllCommand(),
		commands.CreateRemoveCommand(),
		commands.CreateValidateCommand(),
		commands.CreateCheckCommand(),
		commands.CreateLookupCommand(),
		commands.CreateServeCommand(),
		commands.CreateConfigCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("%s failed: %v", subcommand, err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
