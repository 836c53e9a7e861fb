// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cqlerr"
	"github.com/cql2go/cql2/pkg/cql2"
)

// readFilter parses the file at path, which must be in syntax "text" or
// "json". An empty path (or "-") reads stdin.
func readFilter(path, syntax string) (*ast.Filter, error) {
	var data []byte
	var err error
	if path == "" || path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var opts []cql2.Option
	if maxDepth > 0 {
		opts = append(opts, cql2.WithMaxDepth(maxDepth))
	}

	var f *ast.Filter
	switch syntax {
	case "text":
		f, err = cql2.ParseText(string(data), opts...)
	case "json":
		f, err = cql2.ParseJSON(data, opts...)
	default:
		return nil, fmt.Errorf("unsupported --in value %q: must be text or json", syntax)
	}
	if err != nil {
		id := cqlerr.Log(slog.Default(), "parse failed", err)
		recordParse(syntax, err)
		return nil, fmt.Errorf("%w (correlation id %s)", err, id)
	}
	recordParse(syntax, nil)
	return f, nil
}

func recordParse(syntax string, err error) {
	if metricsServer != nil {
		metricsServer.Metrics().RecordParse(syntax, err)
	}
}
