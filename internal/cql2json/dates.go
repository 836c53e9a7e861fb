// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2json

import (
	"fmt"
	"strings"
	"time"

	"github.com/cql2go/cql2/internal/ast"
)

func formatDate(d *ast.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// formatTimestamp renders an RFC3339 UTC instant, omitting the fractional
// part entirely when it is zero (JSON has no equivalent to the text
// serializer's fixed six-digit rule).
func formatTimestamp(t *ast.Timestamp) string {
	if t.Microsecond == 0 {
		return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second)
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06dZ", t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Microsecond)
}

func parseDateString(s string) (*ast.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &ast.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

func parseTimestampString(s string) (*ast.Timestamp, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999Z",
		"2006-01-02T15:04:05Z",
		time.RFC3339Nano,
		time.RFC3339,
	}
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &ast.Timestamp{
				Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
				Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
				Microsecond: t.Nanosecond() / 1000,
			}, nil
		} else {
			lastErr = err
		}
	}
	return nil, lastErr
}

// looksLikeTimestamp distinguishes a bare interval-endpoint string between
// a Date and a Timestamp encoding: RFC3339 timestamps always carry a 'T'.
func looksLikeTimestamp(s string) bool {
	return strings.ContainsRune(s, 'T')
}
