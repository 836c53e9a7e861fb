// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2text_test

import (
	"testing"

	"github.com/cql2go/cql2/internal/cql2text"
)

// FuzzParse checks that the parser never panics on arbitrary input and
// that whatever it does accept round-trips through ToText without panic.
func FuzzParse(f *testing.F) {
	seeds := []string{
		`prop1 = 5`,
		`foo NOT BETWEEN 1 AND 10`,
		`(-x + 1) = 0`,
		`a = 1 AND b = 2 OR c = 3`,
		`"name" LIKE 'foo%'`,
		`"geom" IS NOT NULL`,
		`S_INTERSECTS("geom", POINT(1 2))`,
		`S_EQUALS("geom", MULTIPOINT(0 0, 1 1))`,
		`S_WITHIN("geom", POLYGON((0 0, 1 0, 1 1, 0 0)))`,
		`S_INTERSECTS("geom", BBOX(-10, -10, 10, 10))`,
		`T_BEFORE("when", TIMESTAMP('2020-01-01T00:00:00Z'))`,
		`T_DURING("when", INTERVAL('2020-01-01', '..'))`,
		`A_CONTAINS("tags", ('a', 'b'))`,
		`CASEI("name") = ACCENTI('foo')`,
		`YEAR("when") = 2020`,
		`TRUE`,
		`NOT TRUE`,
		``,
		`(((((`,
		`prop1 = `,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		filter, err := cql2text.Parse(text, cql2text.DefaultMaxDepth)
		if err != nil {
			return
		}
		_ = cql2text.ToText(filter)
	})
}
