// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Parse a filter and report whether it is valid, without printing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			_, err := readFilter(path, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVar(&in, "in", "text", "input syntax: text or json")
	return cmd
}
