package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lost-hosts/lost/src/internal/errors"
	"github.com/lost-hosts/lost/src/internal/log"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigPath = "/etc/lost/lost.toml"

	DefaultHostsFile           = "/etc/hosts"
	DefaultURLMatching         = "exact"
	DefaultFetchTimeoutSeconds = 10
	DefaultUserAgent           = "lost"
	DefaultDeliberationSeconds = 10
	DefaultListenAddr          = "127.0.0.1:8675"
	DefaultUpstream            = "1.1.1.1:53"
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			HostsFile:   DefaultHostsFile,
			URLMatching: DefaultURLMatching,
		},
		Fetch: FetchConfig{
			TimeoutSeconds: DefaultFetchTimeoutSeconds,
			UserAgent:      DefaultUserAgent,
		},
		Confirm: ConfirmConfig{
			DeliberationSeconds: DefaultDeliberationSeconds,
		},
		API: APIConfig{
			ListenAddr: DefaultListenAddr,
		},
		Lookup: LookupConfig{
			Upstream: DefaultUpstream,
		},
	}
}

// LoadConfig reads a TOML configuration file. Keys missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	configFile, err := absPath(configPath)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), err)
		}
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	config := Default()
	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	config._absConfigFilePath = configFile

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Hosts file: %s", config.GetAbsHostsFile())

	return config, nil
}

// LoadConfigOrDefault behaves like LoadConfig, but returns the defaults when the file does not exist.
func LoadConfigOrDefault(configPath string) (*Config, error) {
	config, err := LoadConfig(configPath)
	if err != nil && stderrors.Is(err, fs.ErrNotExist) {
		log.Debugf("Configuration file %s not found, using defaults", configPath)
		return Default(), nil
	}
	return config, err
}

func absPath(configPath string) (string, error) {
	configFile := filepath.Clean(configPath)
	if filepath.IsAbs(configFile) {
		return configFile, nil
	}
	path, err := filepath.Abs(configFile)
	if err != nil {
		return "", errors.NewConfigError("failed to get absolute path", err)
	}
	return path, nil
}

// SerializeConfig renders the configuration as TOML.
func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}
