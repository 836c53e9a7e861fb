// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// cliConfig holds the settings every subcommand reads. Values come from,
// in increasing precedence order: defaults, a YAML config file, then
// command-line flags.
type cliConfig struct {
	LogFormat  string `koanf:"log-format"`
	MetricsAddr string `koanf:"metrics-addr"`
	MaxDepth   int    `koanf:"max-depth"`
}

const defaultMaxDepth = 256

// loadConfig merges the optional config file at path with flags, flags
// taking precedence. A missing path is not an error: CLI flags and
// defaults alone are a complete configuration.
func loadConfig(path string, flags *pflag.FlagSet) (*cliConfig, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"log-format":   "json",
		"metrics-addr": "",
		"max-depth":    defaultMaxDepth,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, err
	}

	var cfg cliConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
