// Package commands implements the lost subcommands.
//
// Every command implements Runner: Init parses the command's flags and loads
// the configuration, Run does the work. Commands that change the hosts file
// share the -dry-run and -reject-dangerous flags, check that the file is
// writable before anything is downloaded, and save only when the document
// changed.
//
//	cmd := commands.CreateAddCommand()
//	ctx := &commands.AppContext{ConfigPath: "/etc/lost/lost.toml"}
//	if err := cmd.Init([]string{"https://example.com/hosts"}, ctx); err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package commands
