// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cql2go/cql2/pkg/cql2"
)

func TestParseText_ThenToJSON(t *testing.T) {
	f, err := cql2.ParseText(`prop1 = 5`)
	require.NoError(t, err)

	doc, err := cql2.ToJSON(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"=","args":[{"property":"prop1"},5]}`, string(doc))
}

func TestParseJSON_ThenToText(t *testing.T) {
	doc := []byte(`{"op":"=","args":[{"property":"prop1"},5]}`)
	f, err := cql2.ParseJSON(doc)
	require.NoError(t, err)

	assert.Equal(t, `("prop1" = 5.0)`, cql2.ToText(f))
}

func TestJSONRoundTrip_IsIdentity(t *testing.T) {
	original := []byte(`{"op":"and","args":[{"op":"=","args":[{"property":"prop1"},5]},{"op":"isNull","args":[{"property":"prop2"}]}]}`)

	f, err := cql2.ParseJSON(original)
	require.NoError(t, err)

	again, err := cql2.ToJSON(f)
	require.NoError(t, err)
	assert.JSONEq(t, string(original), string(again))
}

func TestTextRoundTrip_IsIdentity(t *testing.T) {
	f, err := cql2.ParseText(`"prop1" NOT BETWEEN 1.0 AND 10.0`)
	require.NoError(t, err)

	text := cql2.ToText(f)
	f2, err := cql2.ParseText(text)
	require.NoError(t, err)

	assert.Equal(t, text, cql2.ToText(f2))
}

func TestWithMaxDepth_RejectsDeepNesting(t *testing.T) {
	deep := ""
	for i := 0; i < 10; i++ {
		deep += "NOT ("
	}
	deep += "TRUE"
	for i := 0; i < 10; i++ {
		deep += ")"
	}

	_, err := cql2.ParseText(deep, cql2.WithMaxDepth(3))
	require.Error(t, err)
}
