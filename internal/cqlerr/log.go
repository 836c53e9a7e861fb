// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cqlerr

import (
	"errors"
	"log/slog"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/cql2go/cql2/pkg/errutil"
)

// code returns the taxonomy name for err, or "" if err is not one of the
// five recognized kinds.
func code(err error) string {
	var (
		syn   *SyntaxError
		str   *StructuralError
		unk   *UnknownOperator
		enc   *EncodingError
		depth *DepthExceeded
	)
	switch {
	case errors.As(err, &syn):
		return "SYNTAX_ERROR"
	case errors.As(err, &str):
		return "STRUCTURAL_ERROR"
	case errors.As(err, &unk):
		return "UNKNOWN_OPERATOR"
	case errors.As(err, &enc):
		return "ENCODING_ERROR"
	case errors.As(err, &depth):
		return "DEPTH_EXCEEDED"
	default:
		return ""
	}
}

// Log logs err with a correlation id and, when err is one of the taxonomy
// types, its code as structured context. The returned id can be surfaced
// to a CLI user so they can correlate a one-line failure message with the
// full structured log entry. Log never alters err; callers still get the
// original typed error back from the parse/decode call and can use
// errors.As against it directly.
func Log(logger *slog.Logger, msg string, err error) string {
	id := ulid.Make().String()
	wrapped := wrap(id, msg, err)
	errutil.LogError(logger, msg, wrapped)
	return id
}

// wrap builds the oops error Log hands to errutil.LogError: tagged with
// the taxonomy code (if err is one of the five kinds) and the correlation
// id, split out so tests can assert on its code/context directly via
// errutil.AssertErrorCode/AssertErrorContext instead of round-tripping
// through a logged JSON line.
func wrap(id, msg string, err error) error {
	return oops.Code(code(err)).With("correlation_id", id).Wrapf(err, "%s", msg)
}
