// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestToJSON_FromTextFile(t *testing.T) {
	path := writeTempFile(t, `prop1 = 5`)
	out, err := runCmd(t, "", "tojson", "--in", "text", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"=","args":[{"property":"prop1"},5]}`, strings.TrimSpace(out))
}

func TestToText_FromJSONFile(t *testing.T) {
	path := writeTempFile(t, `{"op":"=","args":[{"property":"prop1"},5]}`)
	out, err := runCmd(t, "", "totext", "--in", "json", path)
	require.NoError(t, err)
	assert.Equal(t, `("prop1" = 5.0)`, strings.TrimSpace(out))
}

func TestValidate_RejectsMalformedInput(t *testing.T) {
	path := writeTempFile(t, `prop1 = `)
	_, err := runCmd(t, "", "validate", "--in", "text", path)
	assert.Error(t, err)
}

func TestValidate_AcceptsWellFormedInput(t *testing.T) {
	path := writeTempFile(t, `prop1 = 5`)
	out, err := runCmd(t, "", "validate", "--in", "text", path)
	require.NoError(t, err)
	assert.Equal(t, "ok", strings.TrimSpace(out))
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	f := t.TempDir() + "/filter.txt"
	require.NoError(t, os.WriteFile(f, []byte(content), 0o644))
	return f
}
