// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// Package ast defines the CQL2 abstract syntax tree: a closed, tagged
// union covering every construct recognized by the text parser (internal/cql2text)
// and the JSON decoder (internal/cql2json). Nodes are immutable once built;
// invariant checking happens in the constructors in build.go, never here.
//
// The union is closed by an unexported marker method on each interface
// (Expr, BooleanExpression, Scalar, IntervalEndpoint). Code outside this
// package cannot add new variants, so every switch over a variant can be
// exhaustive without a default case hiding a missed branch.
package ast

import "github.com/cql2go/cql2/internal/cqlerr"

// Node carries source position. Nodes built by the text parser carry
// Offset/Line/Column. JSON-decoded nodes built through the constructors in
// build.go carry only a JSON Pointer in Pos.Pointer; other JSON-decoded
// nodes leave Pos zero valued.
type Node struct {
	Pos cqlerr.Position
}

// Expr is satisfied by every AST node: boolean expressions and scalars alike.
type Expr interface {
	exprNode()
}

// BooleanExpression is any node that can stand as a filter's top-level
// predicate: logical connectives, comparisons, and the predicate families
// of §3.2.
type BooleanExpression interface {
	Expr
	booleanExpression()
}

// Scalar is any node that can appear as an operand of a predicate or of
// arithmetic. Per the open question in spec §9, a BooleanExpression is
// also a valid Scalar (nested predicate used as a value); every
// BooleanExpression implementation below also implements Scalar.
type Scalar interface {
	Expr
	scalar()
}

// GeomExpr, TempExpr, and ArrayExpr are the operand types of the spatial,
// temporal, and array predicate families respectively. Spec §3.7 invariant
// 1 states type checking is lexical only, so these are plain aliases of
// Scalar rather than separate closed unions: the grammar (not a semantic
// type checker) is what actually restricts what appears there.
type (
	GeomExpr  = Scalar
	TempExpr  = Scalar
	ArrayExpr = Scalar
)

// Filter wraps a single BooleanExpression; it is the entry point of every
// parse_text / parse_json operation.
type Filter struct {
	Node
	Expr BooleanExpression
}

// --- Boolean / predicate layer (spec §3.2) ---

// And is the conjunction of two or more boolean expressions. Builders
// enforce len(Args) >= 2; see build.go.
type And struct {
	Node
	Args []BooleanExpression
}

// Or is the disjunction of two or more boolean expressions.
type Or struct {
	Node
	Args []BooleanExpression
}

// Not negates a single boolean expression.
type Not struct {
	Node
	Arg BooleanExpression
}

// Bool is a literal boolean value. It doubles as the BoolLiteral predicate
// of §3.2 and the Bool scalar of §3.3: a bare TRUE/FALSE is both.
type Bool struct {
	Node
	Value bool
}

// ComparisonOp is one of the six scalar comparison operators.
type ComparisonOp string

const (
	OpEqual        ComparisonOp = "="
	OpNotEqual     ComparisonOp = "<>"
	OpLessThan     ComparisonOp = "<"
	OpGreaterThan  ComparisonOp = ">"
	OpLessEqual    ComparisonOp = "<="
	OpGreaterEqual ComparisonOp = ">="
)

// Comparison compares two scalars with one of the six operators.
type Comparison struct {
	Node
	Op    ComparisonOp
	Left  Scalar
	Right Scalar
}

// Like matches Expr against Pattern, a character literal optionally
// wrapped in CaseI/AccentI.
type Like struct {
	Node
	Expr    Scalar
	Pattern Scalar
}

// Between checks Low <= Value <= High.
type Between struct {
	Node
	Value Scalar
	Low   Scalar
	High  Scalar
}

// In checks Value against a list of scalars.
type In struct {
	Node
	Value Scalar
	List  []Scalar
}

// IsNull checks whether Arg is the null value.
type IsNull struct {
	Node
	Arg Scalar
}

// SpatialOp is one of the eight spatial relationship operators.
type SpatialOp string

const (
	OpSIntersects SpatialOp = "S_INTERSECTS"
	OpSEquals     SpatialOp = "S_EQUALS"
	OpSDisjoint   SpatialOp = "S_DISJOINT"
	OpSTouches    SpatialOp = "S_TOUCHES"
	OpSWithin     SpatialOp = "S_WITHIN"
	OpSOverlaps   SpatialOp = "S_OVERLAPS"
	OpSCrosses    SpatialOp = "S_CROSSES"
	OpSContains   SpatialOp = "S_CONTAINS"
)

// Spatial applies a spatial relationship operator to two geometry-valued
// expressions.
type Spatial struct {
	Node
	Op    SpatialOp
	Left  GeomExpr
	Right GeomExpr
}

// TemporalOp is one of the fifteen Allen-style temporal relationship
// operators.
type TemporalOp string

const (
	OpTAfter       TemporalOp = "T_AFTER"
	OpTBefore      TemporalOp = "T_BEFORE"
	OpTContains    TemporalOp = "T_CONTAINS"
	OpTDisjoint    TemporalOp = "T_DISJOINT"
	OpTDuring      TemporalOp = "T_DURING"
	OpTEquals      TemporalOp = "T_EQUALS"
	OpTFinishedBy  TemporalOp = "T_FINISHEDBY"
	OpTFinishes    TemporalOp = "T_FINISHES"
	OpTIntersects  TemporalOp = "T_INTERSECTS"
	OpTMeets       TemporalOp = "T_MEETS"
	OpTMetBy       TemporalOp = "T_METBY"
	OpTOverlappedBy TemporalOp = "T_OVERLAPPEDBY"
	OpTOverlaps    TemporalOp = "T_OVERLAPS"
	OpTStartedBy   TemporalOp = "T_STARTEDBY"
	OpTStarts      TemporalOp = "T_STARTS"
)

// Temporal applies a temporal relationship operator to two temporal-valued
// expressions.
type Temporal struct {
	Node
	Op    TemporalOp
	Left  TempExpr
	Right TempExpr
}

// ArrayOp is one of the four array relationship operators.
type ArrayOp string

const (
	OpAEquals      ArrayOp = "A_EQUALS"
	OpAContains    ArrayOp = "A_CONTAINS"
	OpAContainedBy ArrayOp = "A_CONTAINEDBY"
	OpAOverlaps    ArrayOp = "A_OVERLAPS"
)

// ArrayPredicate applies an array relationship operator to two
// array-valued expressions. Distinct from ArrayLiteral (§3.3), which is a
// scalar list value.
type ArrayPredicate struct {
	Node
	Op    ArrayOp
	Left  ArrayExpr
	Right ArrayExpr
}

// --- Scalar layer (spec §3.3) ---

// Number is an IEEE-754 double. Per invariant 5, integral literals are
// normalized to float64 with no distinct integer representation.
type Number struct {
	Node
	Value float64
}

// String is a character literal.
type String struct {
	Node
	Value string
}

// Property references a feature property (or, ambiguously, a function
// argument name) by its lexical name.
type Property struct {
	Node
	Name string
}

// Function is a named function call with zero or more scalar arguments.
type Function struct {
	Node
	Name string
	Args []Scalar
}

// ArithOp is one of the seven binary arithmetic operators. Unary minus is
// not a distinct operator; it is expanded to Arith(*, -1, operand) during
// text-parser lowering (spec §4.2.2.2).
type ArithOp string

const (
	OpAdd ArithOp = "+"
	OpSub ArithOp = "-"
	OpMul ArithOp = "*"
	OpDiv ArithOp = "/"
	OpMod ArithOp = "%"
	OpIntDiv ArithOp = "div"
	OpPow ArithOp = "^"
)

// Arith is a binary arithmetic expression.
type Arith struct {
	Node
	Op    ArithOp
	Left  Scalar
	Right Scalar
}

// CaseI wraps a scalar (normally a String) to request case-insensitive
// comparison.
type CaseI struct {
	Node
	Inner Scalar
}

// AccentI wraps a scalar to request accent-insensitive comparison.
type AccentI struct {
	Node
	Inner Scalar
}

// ArrayLiteral is a literal list of scalars, e.g. the right-hand side of
// an A_CONTAINS predicate or an element of an IN list. Distinct from
// ArrayPredicate (§3.2), which is the A_* boolean predicate.
type ArrayLiteral struct {
	Node
	Items []Scalar
}

// --- Temporal literals (spec §3.6) ---

// Date is a calendar date with no time component.
type Date struct {
	Node
	Year, Month, Day int
}

// Timestamp is a UTC instant with microsecond precision (the text
// serializer always emits exactly six fractional digits; the decoded
// value may carry fewer significant digits).
type Timestamp struct {
	Node
	Year, Month, Day        int
	Hour, Minute, Second    int
	Microsecond             int
}

// OpenEnd is the ".." interval-endpoint sentinel meaning "unbounded".
type OpenEnd struct {
	Node
}

// IntervalEndpoint is any of the five legal interval endpoint shapes:
// Date, Timestamp, OpenEnd, Property, or Function (spec §3.6).
type IntervalEndpoint interface {
	Expr
	intervalEndpoint()
}

// Interval is a temporal range with two endpoints. Invariant 4 (at least
// one endpoint concrete) is a warning, not a hard error; see build.go.
type Interval struct {
	Node
	Start IntervalEndpoint
	End   IntervalEndpoint
}

// --- Geometry (spec §3.5) ---

// Coord is a 2D or 3D coordinate. Z is nil for a 2D point; the Z marker in
// WKT is informational only, so the model stores the explicit tuple
// shape directly instead of a separate "is3D" flag.
type Coord struct {
	X, Y float64
	Z    *float64
}

// Is3D reports whether c carries a Z ordinate.
func (c Coord) Is3D() bool { return c.Z != nil }

// Point is a single coordinate.
type Point struct {
	Node
	Coord Coord
}

// LineString is an ordered list of >= 2 coordinates.
type LineString struct {
	Node
	Coords []Coord
}

// Polygon is a list of linear rings, each with >= 4 coordinates.
type Polygon struct {
	Node
	Rings [][]Coord
}

// MultiPoint is a list of coordinates.
type MultiPoint struct {
	Node
	Points []Coord
}

// MultiLineString is a list of line strings.
type MultiLineString struct {
	Node
	Lines [][]Coord
}

// MultiPolygon is a list of polygons.
type MultiPolygon struct {
	Node
	Polygons [][][]Coord
}

// GeometryCollection is a heterogeneous list of non-collection geometries
// (invariant 3: no nested collection, no BBox member).
type GeometryCollection struct {
	Node
	Geometries []Scalar
}

// BBox is an axis-aligned bounding box, 2D (4 numbers) or 3D (6 numbers).
type BBox struct {
	Node
	MinX, MinY float64
	MaxX, MaxY float64
	MinZ, MaxZ *float64
}

// Is3D reports whether b carries Z bounds.
func (b BBox) Is3D() bool { return b.MinZ != nil && b.MaxZ != nil }

// --- marker method implementations (closes the sum type) ---

func (*Filter) exprNode() {}

func (*And) exprNode()             {}
func (*And) booleanExpression()    {}
func (*And) scalar()               {}
func (*Or) exprNode()              {}
func (*Or) booleanExpression()     {}
func (*Or) scalar()                {}
func (*Not) exprNode()             {}
func (*Not) booleanExpression()    {}
func (*Not) scalar()               {}
func (*Bool) exprNode()            {}
func (*Bool) booleanExpression()   {}
func (*Bool) scalar()              {}
func (*Comparison) exprNode()          {}
func (*Comparison) booleanExpression() {}
func (*Comparison) scalar()            {}
func (*Like) exprNode()          {}
func (*Like) booleanExpression() {}
func (*Like) scalar()            {}
func (*Between) exprNode()          {}
func (*Between) booleanExpression() {}
func (*Between) scalar()            {}
func (*In) exprNode()          {}
func (*In) booleanExpression() {}
func (*In) scalar()            {}
func (*IsNull) exprNode()          {}
func (*IsNull) booleanExpression() {}
func (*IsNull) scalar()            {}
func (*Spatial) exprNode()          {}
func (*Spatial) booleanExpression() {}
func (*Spatial) scalar()            {}
func (*Temporal) exprNode()          {}
func (*Temporal) booleanExpression() {}
func (*Temporal) scalar()            {}
func (*ArrayPredicate) exprNode()          {}
func (*ArrayPredicate) booleanExpression() {}
func (*ArrayPredicate) scalar()            {}

func (*Number) exprNode() {}
func (*Number) scalar()   {}
func (*String) exprNode() {}
func (*String) scalar()   {}
func (*Property) exprNode() {}
func (*Property) scalar()   {}
func (*Function) exprNode() {}
func (*Function) scalar()   {}
func (*Arith) exprNode() {}
func (*Arith) scalar()   {}
func (*CaseI) exprNode() {}
func (*CaseI) scalar()   {}
func (*AccentI) exprNode() {}
func (*AccentI) scalar()   {}
func (*ArrayLiteral) exprNode() {}
func (*ArrayLiteral) scalar()   {}

func (*Date) exprNode()      {}
func (*Date) scalar()        {}
func (*Date) intervalEndpoint() {}
func (*Timestamp) exprNode()      {}
func (*Timestamp) scalar()        {}
func (*Timestamp) intervalEndpoint() {}
func (*OpenEnd) exprNode()         {}
func (*OpenEnd) intervalEndpoint() {}
func (*Interval) exprNode() {}
func (*Interval) scalar()   {}

func (*Property) intervalEndpoint() {}
func (*Function) intervalEndpoint() {}

func (*Point) exprNode()              {}
func (*Point) scalar()                {}
func (*LineString) exprNode()         {}
func (*LineString) scalar()           {}
func (*Polygon) exprNode()            {}
func (*Polygon) scalar()              {}
func (*MultiPoint) exprNode()         {}
func (*MultiPoint) scalar()           {}
func (*MultiLineString) exprNode()    {}
func (*MultiLineString) scalar()      {}
func (*MultiPolygon) exprNode()       {}
func (*MultiPolygon) scalar()         {}
func (*GeometryCollection) exprNode() {}
func (*GeometryCollection) scalar()   {}
func (*BBox) exprNode() {}
func (*BBox) scalar()   {}
