// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cql2go/cql2/pkg/cql2"
)

func newToJSONCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "tojson [FILE]",
		Short: "Parse a filter and print it as CQL2-JSON",
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
			doc, err := cql2.ToJSON(f)
			if err != nil {
				return err
			}
			if metricsServer != nil {
				metricsServer.Metrics().RecordSerialize("json")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(doc))
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "text", "input syntax: text or json")
	return cmd
}
