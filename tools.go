// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

//go:build tools
// +build tools

// Package main pins test tool dependencies to go.mod.
// See https://go.dev/wiki/Modules#how-can-i-track-tool-dependencies-for-a-module
package main

import (
	_ "github.com/stretchr/testify/assert"
	_ "github.com/stretchr/testify/require"
)
