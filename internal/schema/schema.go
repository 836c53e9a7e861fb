// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// Package schema generates and validates the JSON Schema for the
// CQL2-JSON wire shape. Unlike a struct manifest, the wire shape is a
// polymorphic tagged union, so the schema is hand-assembled from
// jsonschema.Schema values rather than reflected off a Go type (adapted
// from internal/plugin/schema.go, which reflects a fixed Manifest struct).
package schema

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const schemaID = "https://github.com/cql2go/cql2/schemas/cql2.schema.json"

type schemaState struct {
	once   sync.Once
	schema *jschema.Schema
	err    error
}

var globalSchemaState = &schemaState{}

// Generate builds the JSON Schema document describing a CQL2-JSON filter.
// The top-level document is always either the {"op":...,"args":[...]}
// predicate shape or a bare boolean literal (spec §3.2's closed set of
// BooleanExpression kinds) — never a bare number, string, or array, so the
// root alternatives here are narrower than scalarSchema's (which also
// covers nested "args" positions, where any scalar shape is legal).
func Generate() ([]byte, error) {
	s := &jsonschema.Schema{
		ID:          jsonschema.ID(schemaID),
		Title:       "CQL2-JSON filter",
		Description: "Schema for the CQL2-JSON filter expression wire format",
		OneOf: []*jsonschema.Schema{
			predicateSchema(),
			{Type: "boolean"},
		},
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, oops.In("schema").Hint("failed to marshal CQL2-JSON schema").Wrap(err)
	}
	return append(data, '\n'), nil
}

// predicateSchema describes the {"op":...,"args":[...]} tagged-union shape
// common to every boolean predicate and nested scalar operation.
func predicateSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: orderedProps(
			"op", &jsonschema.Schema{Type: "string"},
			"args", &jsonschema.Schema{Type: "array", Items: scalarSchema()},
		),
		Required: []string{"op", "args"},
	}
}

// scalarSchema is intentionally permissive: the special-cased object
// shapes ({"property"}, {"function"}, {"date"}, {"timestamp"}, {"interval"},
// {"bbox"}, GeoJSON geometry) plus bare literals and nested predicates all
// satisfy it. A tighter oneOf per shape would duplicate spec.md §4.3.1's
// table without adding validation value beyond what decode.go already
// enforces structurally.
func scalarSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string"},
			{Type: "boolean"},
			{Type: "object"},
			{Type: "array"},
		},
	}
}

func orderedProps(kv ...any) *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	m := orderedmap.New[string, *jsonschema.Schema]()
	for i := 0; i+1 < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1].(*jsonschema.Schema))
	}
	return m
}

// Validate checks a decoded CQL2-JSON document (any, as produced by
// json.Unmarshal) against the compiled schema.
func Validate(doc any) error {
	sch, err := compiled()
	if err != nil {
		return oops.In("schema").Hint("failed to compile CQL2-JSON schema").Wrap(err)
	}
	if err := sch.Validate(doc); err != nil {
		return oops.In("schema").Hint("schema validation failed").Wrap(err)
	}
	return nil
}

func compiled() (*jschema.Schema, error) {
	globalSchemaState.once.Do(func() {
		globalSchemaState.schema, globalSchemaState.err = compile()
	})
	return globalSchemaState.schema, globalSchemaState.err
}

func compile() (*jschema.Schema, error) {
	raw, err := Generate()
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, oops.In("schema").Hint("failed to parse generated schema").Wrap(err)
	}
	c := jschema.NewCompiler()
	if err := c.AddResource("cql2.schema.json", data); err != nil {
		return nil, oops.In("schema").Hint("failed to add schema resource").Wrap(err)
	}
	return c.Compile("cql2.schema.json")
}

// ResetCache clears the cached compiled schema. Used by tests.
func ResetCache() {
	globalSchemaState = &schemaState{}
}

// ID returns the schema's $id.
func ID() string { return schemaID }
