// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2text

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// kw returns a SimpleRule for a case-insensitive keyword, word-bounded so it
// cannot match as a prefix of a longer identifier (e.g. "INTERSECTS" must
// not match the "IN" token).
func kw(name, text string) lexer.SimpleRule {
	return lexer.SimpleRule{Name: name, Pattern: `(?i)\b` + text + `\b`}
}

// cqlLexer tokenizes CQL2-Text. Order matters: longer/more specific
// patterns are listed before shorter ones that could otherwise shadow
// them, and every keyword-like rule is listed before Ident so that
// keywords and the S_/T_/A_ operator names outrank identifiers, per the
// grammar's case-insensitive-keyword requirement.
var cqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "whitespace", Pattern: `\s+`},

	// String literal: single-quoted, '' or \' escapes an embedded quote.
	{Name: "String", Pattern: `'(?:''|\\'|[^'])*'`},
	// Double-quoted property identifier.
	{Name: "DQIdent", Pattern: `"(?:""|[^"])*"`},
	// Unsigned numeric literal; sign is handled at the grammar level so
	// that unary minus on a literal folds into the literal (spec §4.2.2.2)
	// while unary minus on any other operand expands to Arith(*, -1, x).
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`},

	kw("And", "AND"),
	kw("Or", "OR"),
	kw("Not", "NOT"),
	kw("Between", "BETWEEN"),
	kw("Like", "LIKE"),
	kw("In", "IN"),
	kw("Is", "IS"),
	kw("Null", "NULL"),
	kw("True", "TRUE"),
	kw("False", "FALSE"),
	kw("Casei", "CASEI"),
	kw("Accenti", "ACCENTI"),
	kw("Timestamp", "TIMESTAMP"),
	kw("Interval", "INTERVAL"),
	kw("Date", "DATE"),
	kw("Div", "DIV"),

	{Name: "WKTType", Pattern: `(?i)\b(?:MULTIPOLYGON|MULTILINESTRING|GEOMETRYCOLLECTION|MULTIPOINT|LINESTRING|POLYGON|BBOX|POINT)\b`},
	{Name: "SpatialOp", Pattern: `(?i)\b(?:S_INTERSECTS|S_EQUALS|S_DISJOINT|S_TOUCHES|S_WITHIN|S_OVERLAPS|S_CROSSES|S_CONTAINS)\b`},
	{Name: "TemporalOp", Pattern: `(?i)\b(?:T_FINISHEDBY|T_OVERLAPPEDBY|T_INTERSECTS|T_STARTEDBY|T_DISJOINT|T_FINISHES|T_CONTAINS|T_OVERLAPS|T_BEFORE|T_EQUALS|T_DURING|T_STARTS|T_METBY|T_MEETS|T_AFTER)\b`},
	{Name: "ArrayOp", Pattern: `(?i)\b(?:A_CONTAINEDBY|A_CONTAINS|A_OVERLAPS|A_EQUALS)\b`},

	{Name: "Le", Pattern: `<=`},
	{Name: "Ge", Pattern: `>=`},
	{Name: "Ne", Pattern: `<>`},
	{Name: "Lt", Pattern: `<`},
	{Name: "Gt", Pattern: `>`},
	{Name: "Eq", Pattern: `=`},

	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Plus", Pattern: `\+`},
	{Name: "Minus", Pattern: `-`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Percent", Pattern: `%`},
	{Name: "Caret", Pattern: `\^`},

	// Identifiers: ASCII letters, ':', '_', and any Unicode letter or
	// combining mark (covers CJK ranges and the supplementary planes,
	// since Go's RE2 engine matches \p classes over runes, not UTF-16
	// units). See identifier.go for the secondary validation pass that
	// double-checks each rune with golang.org/x/text.
	{Name: "Ident", Pattern: `[\p{L}\p{M}_:][\p{L}\p{M}\p{N}_:]*`},
})
