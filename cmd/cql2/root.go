// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/cql2go/cql2/internal/logging"
	"github.com/cql2go/cql2/internal/metrics"
)

// Global flags available to all subcommands.
var (
	cfgFile     string
	logFormat   string
	metricsAddr string
	maxDepth    int
)

var metricsServer *metrics.Server

// NewRootCmd creates the root command for the cql2 CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cql2",
		Short: "cql2 - convert between CQL2-Text and CQL2-JSON filter expressions",
		Long: `cql2 parses OGC Common Query Language (CQL2) filter expressions in
either the CQL2-Text or CQL2-JSON syntax and renders them in the other.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logging.SetDefault("cql2", version, cfg.LogFormat)
			if cfg.MetricsAddr != "" {
				metricsServer = metrics.NewServer(cfg.MetricsAddr)
				if err := metricsServer.Start(); err != nil {
					return err
				}
			}
			maxDepth = cfg.MaxDepth
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log output format: json or text")
	cmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9090 (disabled if empty)")
	cmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 0, "maximum filter nesting depth (0 selects the library default)")

	cmd.AddCommand(newToTextCmd())
	cmd.AddCommand(newToJSONCmd())
	cmd.AddCommand(newValidateCmd())

	return cmd
}
