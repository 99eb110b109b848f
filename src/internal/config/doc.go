// Package config handles configuration file parsing and validation for lost.
//
// The configuration is an optional TOML file. Every key has a default, so a
// missing file or a missing key falls back to the values of Default().
//
//	[general]
//	hosts_file = "/etc/hosts"
//	url_matching = "exact"
//
//	[fetch]
//	timeout_seconds = 10
//	user_agent = "lost"
//
//	[confirm]
//	deliberation_seconds = 10
//
//	[api]
//	listen_addr = "127.0.0.1:8675"
//
//	[lookup]
//	upstream = "1.1.1.1:53"
//
// Loading and validating a configuration file:
//
//	cfg, err := config.LoadConfigOrDefault("/etc/lost/lost.toml")
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatalf("%v", err)
//	}
package config
