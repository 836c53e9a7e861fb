// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// grammar.go declares the participle struct grammar for CQL2-Text (spec
// §4.2.1). The grammar mirrors the structure of the teacher's ABAC policy
// DSL grammar (internal/access/policy/dsl/ast.go in the reference tree):
// one struct per production, alternation expressed as one tagged field per
// alternative, and a recursive "Negation"-style field for NOT so arbitrary
// NOT nesting needs no separate precedence level.
package cql2text

import "github.com/alecthomas/participle/v2/lexer"

// filterG is the grammar's entry rule: filter ::= boolean_expression.
type filterG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Expr *orExprG `parser:"@@"`
}

// orExprG: boolean_expression ::= boolean_term ( 'OR' boolean_term )*
type orExprG struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Operands []*andExprG `parser:"@@ (Or @@)*"`
}

// andExprG: boolean_term ::= boolean_factor ( 'AND' boolean_factor )*
type andExprG struct {
	Pos      lexer.Position `parser:"" json:"-"`
	Operands []*notExprG `parser:"@@ (And @@)*"`
}

// notExprG: boolean_factor ::= 'NOT' boolean_factor | boolean_primary
type notExprG struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Not     *notExprG `parser:"  Not @@"`
	Primary *primaryG `parser:"| @@"`
}

// primaryG: boolean_primary ::= predicate | BOOL_LITERAL | '(' boolean_expression ')'.
// Spec §4.2.1 also lists a bare "function" alternative; the AST (§3.2) has
// no variant for a function call used directly as a boolean value, so it
// is intentionally not modeled (see DESIGN.md). Paren is tried last so that
// a parenthesized arithmetic operand, as in (x + 1) = 0, is read as the
// left side of a predicate rather than as a complete boolean group.
type primaryG struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Spatial   *spatialPredG  `parser:"  @@"`
	Temporal  *temporalPredG `parser:"| @@"`
	ArrayPred *arrayPredG    `parser:"| @@"`
	Predicate *predicateG    `parser:"| @@"`
	Paren     *orExprG       `parser:"| LParen @@ RParen"`
}

type spatialPredG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Op    string  `parser:"@SpatialOp"`
	Left  *exprG  `parser:"LParen @@ Comma"`
	Right *exprG  `parser:"@@ RParen"`
}

type temporalPredG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Op    string `parser:"@TemporalOp"`
	Left  *exprG `parser:"LParen @@ Comma"`
	Right *exprG `parser:"@@ RParen"`
}

type arrayPredG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Op    string `parser:"@ArrayOp"`
	Left  *exprG `parser:"LParen @@ Comma"`
	Right *exprG `parser:"@@ RParen"`
}

// predicateG is a scalar expression optionally followed by one predicate
// tail. A predicate with no tail is only valid when Left is itself a bare
// boolean literal (TRUE/FALSE); see lower.go.
type predicateG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Left *exprG         `parser:"@@"`
	Tail *predicateTailG `parser:"@@?"`
}

type predicateTailG struct {
	Pos        lexer.Position `parser:"" json:"-"`
	Comparison *comparisonTailG `parser:"  @@"`
	Like       *likeTailG       `parser:"| @@"`
	Between    *betweenTailG    `parser:"| @@"`
	In         *inTailG         `parser:"| @@"`
	IsNull     *isNullTailG     `parser:"| @@"`
}

type comparisonTailG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Op    string `parser:"@(Eq|Ne|Lt|Gt|Le|Ge)"`
	Right *exprG `parser:"@@"`
}

type likeTailG struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Not     bool   `parser:"@Not?"`
	Kw      string `parser:"Like"`
	Pattern *exprG `parser:"@@"`
}

type betweenTailG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Not  bool   `parser:"@Not?"`
	Kw   string `parser:"Between"`
	Low  *exprG `parser:"@@"`
	High *exprG `parser:"And @@"`
}

type inTailG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Not  bool     `parser:"@Not?"`
	Kw   string   `parser:"In"`
	List []*exprG `parser:"LParen @@ (Comma @@)* RParen"`
}

type isNullTailG struct {
	Pos lexer.Position `parser:"" json:"-"`
	Kw1 string         `parser:"Is"`
	Not bool           `parser:"@Not?"`
	Kw2 string         `parser:"Null"`
}

// --- Arithmetic expressions (spec §4.2.1 precedence table) ---

// exprG is an additive expression, the top of the arithmetic precedence
// chain and the type used everywhere an "expr" or scalar operand appears.
type exprG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Left *mulExprG    `parser:"@@"`
	Ops  []*addOpRHSG `parser:"@@*"`
}

type addOpRHSG struct {
	Op    string    `parser:"@(Plus|Minus)"`
	Right *mulExprG `parser:"@@"`
}

type mulExprG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Left *powExprG    `parser:"@@"`
	Ops  []*mulOpRHSG `parser:"@@*"`
}

type mulOpRHSG struct {
	Op    string    `parser:"@(Star|Slash|Percent|Div)"`
	Right *powExprG `parser:"@@"`
}

// powExprG is right-associative: a ^ b ^ c == a ^ (b ^ c).
type powExprG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Left  *unaryExprG `parser:"@@"`
	Right *powExprG   `parser:"(Caret @@)?"`
}

type unaryExprG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Neg  bool   `parser:"@Minus?"`
	Atom *atomG `parser:"@@"`
}

// atomG is the set of terminal/bracketed forms an arithmetic expression
// can bottom out in.
type atomG struct {
	Pos          lexer.Position `parser:"" json:"-"`
	Number       *string     `parser:"  @Number"`
	Str          *string     `parser:"| @String"`
	Bool         *string     `parser:"| @(True|False)"`
	CaseI        *exprG      `parser:"| Casei LParen @@ RParen"`
	AccentI      *exprG      `parser:"| Accenti LParen @@ RParen"`
	DateLit      *string     `parser:"| Date LParen @String RParen"`
	TimestampLit *string     `parser:"| Timestamp LParen @String RParen"`
	IntervalLit  *intervalG  `parser:"| Interval LParen @@ RParen"`
	Geometry     *geometryG  `parser:"| @@"`
	DQ           *dqAtomG    `parser:"| @@"`
	Ident        *identAtomG `parser:"| @@"`
	Paren        *parenAtomG `parser:"| @@"`
}

type dqAtomG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string `parser:"@DQIdent"`
}

// identAtomG is either a bare property reference or, when followed by a
// parenthesized (possibly empty) argument list, a function call.
type identAtomG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Name string       `parser:"@Ident"`
	Call *callArgsG   `parser:"@@?"`
}

type callArgsG struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Args []*exprG `parser:"LParen (@@ (Comma @@)*)? RParen"`
}

// parenAtomG doubles as a grouped sub-expression (one element, no comma)
// and an ArrayLiteral (two or more comma-separated elements). This single
// production disambiguates the two without backtracking: the comma's
// presence is what distinguishes them, decided during lowering.
type parenAtomG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	First *exprG  `parser:"LParen @@"`
	Rest  []*exprG `parser:"(Comma @@)* RParen"`
}

type intervalG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Start *intervalEndpointG `parser:"@@ Comma"`
	End   *intervalEndpointG `parser:"@@"`
}

type intervalEndpointG struct {
	Pos          lexer.Position `parser:"" json:"-"`
	DateLit      *string     `parser:"  Date LParen @String RParen"`
	TimestampLit *string     `parser:"| Timestamp LParen @String RParen"`
	Str          *string     `parser:"| @String"`
	Ident        *identAtomG `parser:"| @@"`
}

// --- WKT geometry grammar (spec §4.2.1) ---

type geometryG struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Type    string         `parser:"@WKTType"`
	ZMarker string         `parser:"@Ident?"`
	Body    *geometryBodyG `parser:"LParen @@ RParen"`
}

// geometryBodyG covers every WKT body shape across all geometry types.
// Which alternative is semantically valid for a given Type is checked in
// lower.go, not here: several WKT shapes (e.g. POLYGON and MULTILINESTRING)
// are grammatically identical and only differ in what the Type keyword
// says they mean.
type geometryBodyG struct {
	Pos       lexer.Position `parser:"" json:"-"`
	Flat      []*signedNumberG    `parser:"  @@ (Comma @@)+"`
	CoordList *coordListG         `parser:"| @@"`
	RingList  *parenCoordListSeqG `parser:"| @@"`
	PolyList  *parenRingListSeqG  `parser:"| @@"`
	GeomList  *geometryListG      `parser:"| @@"`
}

type signedNumberG struct {
	Neg bool   `parser:"@Minus?"`
	Val string `parser:"@Number"`
}

type coordG struct {
	Pos lexer.Position `parser:"" json:"-"`
	X   *signedNumberG `parser:"@@"`
	Y   *signedNumberG `parser:"@@"`
	Z   *signedNumberG `parser:"@@?"`
}

type coordListG struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Coords []*coordG `parser:"@@ (Comma @@)*"`
}

type parenCoordListG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Inner *coordListG `parser:"LParen @@ RParen"`
}

type parenCoordListSeqG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Items []*parenCoordListG `parser:"@@ (Comma @@)*"`
}

type parenRingListG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Inner *parenCoordListSeqG `parser:"LParen @@ RParen"`
}

type parenRingListSeqG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Items []*parenRingListG `parser:"@@ (Comma @@)*"`
}

type geometryListG struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Items []*geometryG `parser:"@@ (Comma @@)*"`
}
