package config

import (
	"path/filepath"
	"time"

	"github.com/lost-hosts/lost/src/internal/utils"
)

type Config struct {
	// General holds general configuration.
	General GeneralConfig `toml:"general" json:"general"`
	// Fetch controls how source lists are downloaded.
	Fetch FetchConfig `toml:"fetch" json:"fetch"`
	// Confirm controls the confirmation asked before writing entries that point at public addresses.
	Confirm ConfirmConfig `toml:"confirm" json:"confirm"`
	// API configures the local HTTP API started by "lost serve".
	API APIConfig `toml:"api" json:"api"`
	// Lookup configures the resolver used by "lost lookup".
	Lookup LookupConfig `toml:"lookup" json:"lookup"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// HostsFile is the hosts file managed by lost (default: /etc/hosts). Relative paths are resolved against the config directory.
	HostsFile string `toml:"hosts_file" json:"hosts_file" validate:"required"`
	// URLMatching selects how "add" detects duplicates and "remove" finds a source: "exact" (default) or "substring".
	URLMatching string `toml:"url_matching" json:"url_matching" validate:"required,oneof=exact substring"`
}

type FetchConfig struct {
	// TimeoutSeconds is the download timeout for a single source (default: 10).
	TimeoutSeconds int `toml:"timeout_seconds" json:"timeout_seconds" validate:"min=1,max=300"`
	// UserAgent is sent with every download request (default: lost).
	UserAgent string `toml:"user_agent" json:"user_agent"`
}

type ConfirmConfig struct {
	// DeliberationSeconds is how long the warning is shown before it can be answered (default: 10).
	DeliberationSeconds int `toml:"deliberation_seconds" json:"deliberation_seconds" validate:"min=0,max=600"`
}

type APIConfig struct {
	// ListenAddr is the API listen address (default: 127.0.0.1:8675).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"required,hostport"`
}

type LookupConfig struct {
	// Upstream is the DNS server queried by "lost lookup" (default: 1.1.1.1:53).
	Upstream string `toml:"upstream" json:"upstream" validate:"required,hostport"`
}

func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetConfigFilePath returns the file the configuration was loaded from, or "" for defaults.
func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}

// GetAbsHostsFile returns the hosts file path, resolving relative paths against the config directory.
func (c *Config) GetAbsHostsFile() string {
	return utils.ResolvePath(c.General.HostsFile, c.GetConfigDir())
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func (c *Config) Deliberation() time.Duration {
	return time.Duration(c.Confirm.DeliberationSeconds) * time.Second
}
