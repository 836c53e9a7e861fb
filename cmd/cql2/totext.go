// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cql2go/cql2/pkg/cql2"
)

func newToTextCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "totext [FILE]",
		Short: "Parse a filter and print it as CQL2-Text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			f, err := readFilter(path, in)
			if err != nil {
				return err
			}
			if metricsServer != nil {
				metricsServer.Metrics().RecordSerialize("text")
			}
			fmt.Fprintln(cmd.OutOrStdout(), cql2.ToText(f))
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "json", "input syntax: text or json")
	return cmd
}
