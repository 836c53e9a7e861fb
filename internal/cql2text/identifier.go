// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2text

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// identExtra holds the identifier characters that aren't already covered
// by the Unicode Letter, Mark and Number categories: ASCII '_' and ':'.
var identExtra = rangetable.New(':', '_')

// identTable is the full set of runes the grammar allows inside an
// identifier: any Unicode letter, combining mark or number, plus ':' and
// '_'. The lexer's Ident pattern keeps a number out of the first position.
// The lexer's Ident pattern is a coarse regex approximation of this set;
// validateIdentifier re-checks every rune against the authoritative table
// so a lexer false positive (there are none known, but regexp's \p classes
// and unicode.RangeTable can drift across Unicode versions) is caught as
// an EncodingError rather than silently accepted.
var identTable = rangetable.Merge(unicode.L, unicode.M, unicode.N, identExtra)

// validateIdentifier reports whether every rune of s is a legal identifier
// character per the grammar's Unicode identifier class (spec §4.2.1).
func validateIdentifier(s string) bool {
	for _, r := range s {
		if !unicode.Is(identTable, r) {
			return false
		}
	}
	return len(s) > 0
}
