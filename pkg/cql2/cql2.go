// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// Package cql2 is the public surface of cql2go: bidirectional translation
// between CQL2-Text and CQL2-JSON. internal/cql2text and internal/cql2json
// hold the implementation; this package is the only one external callers
// should import, matching the teacher's pkg/ (stable, public) vs internal/
// (implementation) split.
package cql2

import (
	"encoding/json"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cql2json"
	"github.com/cql2go/cql2/internal/cql2text"
)

// config holds the tunables an Option can set.
type config struct {
	maxDepth int
}

// Option configures a parse operation.
type Option func(*config)

// WithMaxDepth overrides the nesting-depth budget (default 256, spec §5).
// Applies to both ParseText and ParseJSON.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

func resolve(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ParseText parses a CQL2-Text filter string into a Filter AST.
func ParseText(s string, opts ...Option) (*ast.Filter, error) {
	c := resolve(opts)
	return cql2text.Parse(s, c.maxDepth)
}

// ParseJSON parses a CQL2-JSON document into a Filter AST.
func ParseJSON(v json.RawMessage, opts ...Option) (*ast.Filter, error) {
	c := resolve(opts)
	return cql2json.Decode(v, c.maxDepth)
}

// ToText renders f as a CQL2-Text filter string.
func ToText(f *ast.Filter) string {
	return cql2text.ToText(f)
}

// ToJSON renders f as a CQL2-JSON document.
func ToJSON(f *ast.Filter) (json.RawMessage, error) {
	return cql2json.Encode(f)
}
