// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2json

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cqlerr"
	"github.com/cql2go/cql2/internal/schema"
)

// Decode parses a CQL2-JSON document into a Filter. maxDepth <= 0 selects
// DefaultMaxDepth, the same budget the text parser uses (spec §5). The
// document is schema-validated (ValidateJSON) before structural decoding
// begins.
func Decode(data []byte, maxDepth int) (*ast.Filter, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &cqlerr.EncodingError{Message: err.Error()}
	}

	if err := validateDecoded(raw); err != nil {
		return nil, err
	}

	d := &decoder{maxDepth: maxDepth}
	expr, err := d.decodeExpr(raw, "")
	if err != nil {
		return nil, err
	}
	be, ok := expr.(ast.BooleanExpression)
	if !ok {
		return nil, &cqlerr.StructuralError{Pos: cqlerr.Position{Pointer: ""}, Message: "top-level filter must be a boolean expression"}
	}
	return &ast.Filter{Expr: be}, nil
}

// ValidateJSON runs v through the compiled CQL2-JSON schema
// (internal/schema) without decoding it into a Filter, grounded on the
// teacher's plugin.ValidateSchema parse-then-validate two-step. It is the
// same check Decode runs internally before structural decoding; callers
// that only want a validity check (e.g. the CLI's `validate` subcommand
// or a linter) can call it directly instead of paying for a full decode.
func ValidateJSON(v json.RawMessage) error {
	var raw any
	if err := json.Unmarshal(v, &raw); err != nil {
		return &cqlerr.EncodingError{Message: err.Error()}
	}
	return validateDecoded(raw)
}

// validateDecoded schema-validates an already-unmarshaled document. The
// schema (internal/schema) is permissive enough that every failure it can
// report is a missing/mistyped required field rather than an unrecognized
// operator name, so failures are surfaced as StructuralError; a tighter
// schema that could detect a bad "op" enum member would instead report
// UnknownOperator for that case, per spec.
func validateDecoded(raw any) error {
	if err := schema.Validate(raw); err != nil {
		return &cqlerr.StructuralError{Message: fmt.Sprintf("schema validation failed: %s", err)}
	}
	return nil
}

// DefaultMaxDepth mirrors internal/cql2text.DefaultMaxDepth; duplicated
// here rather than imported so the two decoders do not need to depend on
// each other.
const DefaultMaxDepth = 256

type decoder struct {
	depth    int
	maxDepth int
}

func (d *decoder) enter(ptr string) error {
	d.depth++
	if d.depth > d.maxDepth {
		return &cqlerr.DepthExceeded{Pos: cqlerr.Position{Pointer: ptr}, Limit: d.maxDepth}
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

func structErr(ptr, format string, args ...any) error {
	return &cqlerr.StructuralError{Pos: cqlerr.Position{Pointer: ptr}, Message: fmt.Sprintf(format, args...)}
}

func child(ptr, seg string) string { return ptr + "/" + seg }
func childIdx(ptr string, i int) string { return fmt.Sprintf("%s/%d", ptr, i) }

// flattenSameOp splices b's own args into the parent AND/OR's operand list
// when b is itself an instance of the same operator, matching the
// canonical flattened form internal/cql2text/lower.go already produces for
// text input (spec §4.2.3: "AND and OR are ... flattened"). Without this,
// a JSON document built by hand with non-canonical nesting (an Or inside
// an Or) would decode to a structurally different AST than the same
// filter written as CQL2-Text and parsed, even though both are
// semantically equivalent.
func flattenSameOp(op string, b ast.BooleanExpression) []ast.BooleanExpression {
	switch op {
	case "and":
		if and, ok := b.(*ast.And); ok {
			return and.Args
		}
	case "or":
		if or, ok := b.(*ast.Or); ok {
			return or.Args
		}
	}
	return []ast.BooleanExpression{b}
}

// decodeExpr dispatches on the JSON value's shape. The result may satisfy
// both ast.BooleanExpression and ast.Scalar (e.g. a Comparison used as a
// nested value), exactly as the text parser's AST already allows.
func (d *decoder) decodeExpr(v any, ptr string) (ast.Expr, error) {
	switch val := v.(type) {
	case float64:
		return &ast.Number{Value: val}, nil
	case string:
		return &ast.String{Value: val}, nil
	case bool:
		return &ast.Bool{Value: val}, nil
	case nil:
		return nil, structErr(ptr, "unexpected null")
	case []any:
		return d.decodeArrayLiteral(val, ptr)
	case map[string]any:
		return d.decodeObject(val, ptr)
	}
	return nil, structErr(ptr, "unrecognized JSON value")
}

func (d *decoder) decodeArrayLiteral(items []any, ptr string) (ast.Expr, error) {
	if err := d.enter(ptr); err != nil {
		return nil, err
	}
	defer d.leave()
	out := make([]ast.Scalar, 0, len(items))
	for i, it := range items {
		v, err := d.decodeExpr(it, childIdx(ptr, i))
		if err != nil {
			return nil, err
		}
		s, ok := v.(ast.Scalar)
		if !ok {
			return nil, structErr(childIdx(ptr, i), "array element is not a valid scalar")
		}
		out = append(out, s)
	}
	return &ast.ArrayLiteral{Items: out}, nil
}

func (d *decoder) decodeObject(obj map[string]any, ptr string) (ast.Expr, error) {
	switch {
	case hasKey(obj, "op"):
		return d.decodeOp(obj, ptr)
	case hasKey(obj, "property"):
		name, ok := obj["property"].(string)
		if !ok {
			return nil, structErr(child(ptr, "property"), "property name must be a string")
		}
		return &ast.Property{Name: name}, nil
	case hasKey(obj, "function"):
		return d.decodeFunction(obj, ptr)
	case hasKey(obj, "date"):
		s, ok := obj["date"].(string)
		if !ok {
			return nil, structErr(child(ptr, "date"), "date must be a string")
		}
		date, err := parseDateString(s)
		if err != nil {
			return nil, &cqlerr.SyntaxError{Pos: cqlerr.Position{Pointer: child(ptr, "date")}, Message: err.Error()}
		}
		return date, nil
	case hasKey(obj, "timestamp"):
		s, ok := obj["timestamp"].(string)
		if !ok {
			return nil, structErr(child(ptr, "timestamp"), "timestamp must be a string")
		}
		ts, err := parseTimestampString(s)
		if err != nil {
			return nil, &cqlerr.SyntaxError{Pos: cqlerr.Position{Pointer: child(ptr, "timestamp")}, Message: err.Error()}
		}
		return ts, nil
	case hasKey(obj, "interval"):
		return d.decodeInterval(obj, ptr)
	case hasKey(obj, "bbox"):
		return d.decodeBBox(obj, ptr)
	case hasKey(obj, "type"):
		return d.decodeGeometry(obj, ptr)
	}
	return nil, structErr(ptr, "object does not match any known CQL2-JSON shape")
}

func hasKey(obj map[string]any, key string) bool {
	_, ok := obj[key]
	return ok
}

func (d *decoder) decodeFunction(obj map[string]any, ptr string) (ast.Expr, error) {
	fn, ok := obj["function"].(map[string]any)
	if !ok {
		return nil, structErr(child(ptr, "function"), "function must be an object")
	}
	name, ok := fn["name"].(string)
	if !ok {
		return nil, structErr(child(ptr, "function/name"), "function name must be a string")
	}
	argsRaw, _ := fn["args"].([]any)
	if err := d.enter(ptr); err != nil {
		return nil, err
	}
	defer d.leave()
	args := make([]ast.Scalar, 0, len(argsRaw))
	for i, a := range argsRaw {
		v, err := d.decodeExpr(a, childIdx(child(ptr, "function/args"), i))
		if err != nil {
			return nil, err
		}
		s, ok := v.(ast.Scalar)
		if !ok {
			return nil, structErr(child(ptr, "function/args"), "function argument is not a valid scalar")
		}
		args = append(args, s)
	}
	return &ast.Function{Name: name, Args: args}, nil
}

func (d *decoder) decodeInterval(obj map[string]any, ptr string) (ast.Expr, error) {
	arr, ok := obj["interval"].([]any)
	if !ok || len(arr) != 2 {
		return nil, structErr(child(ptr, "interval"), "interval requires exactly 2 endpoints")
	}
	start, err := d.decodeIntervalEndpoint(arr[0], childIdx(child(ptr, "interval"), 0))
	if err != nil {
		return nil, err
	}
	end, err := d.decodeIntervalEndpoint(arr[1], childIdx(child(ptr, "interval"), 1))
	if err != nil {
		return nil, err
	}
	built, warnErr := ast.NewInterval(cqlerr.Position{Pointer: ptr}, start, end)
	if warnErr != nil {
		if _, ok := warnErr.(*ast.IntervalWarning); !ok {
			return nil, warnErr
		}
	}
	return built, nil
}

func (d *decoder) decodeIntervalEndpoint(v any, ptr string) (ast.IntervalEndpoint, error) {
	s, ok := v.(string)
	if !ok {
		expr, err := d.decodeExpr(v, ptr)
		if err != nil {
			return nil, err
		}
		if ep, ok := expr.(ast.IntervalEndpoint); ok {
			return ep, nil
		}
		return nil, structErr(ptr, "invalid interval endpoint")
	}
	if s == ".." {
		return &ast.OpenEnd{}, nil
	}
	if looksLikeTimestamp(s) {
		ts, err := parseTimestampString(s)
		if err != nil {
			return nil, &cqlerr.SyntaxError{Pos: cqlerr.Position{Pointer: ptr}, Message: err.Error()}
		}
		return ts, nil
	}
	date, err := parseDateString(s)
	if err != nil {
		return nil, &cqlerr.SyntaxError{Pos: cqlerr.Position{Pointer: ptr}, Message: err.Error()}
	}
	return date, nil
}

func (d *decoder) decodeBBox(obj map[string]any, ptr string) (ast.Expr, error) {
	arr, ok := obj["bbox"].([]any)
	if !ok {
		return nil, structErr(child(ptr, "bbox"), "bbox must be an array")
	}
	nums := make([]float64, 0, len(arr))
	for i, n := range arr {
		f, ok := n.(float64)
		if !ok {
			return nil, structErr(childIdx(child(ptr, "bbox"), i), "bbox element must be a number")
		}
		nums = append(nums, f)
	}
	return ast.NewBBox(cqlerr.Position{Pointer: ptr}, nums)
}

func decodeCoord(v any, ptr string) (ast.Coord, error) {
	arr, ok := v.([]any)
	if !ok || (len(arr) != 2 && len(arr) != 3) {
		return ast.Coord{}, structErr(ptr, "coordinate must be an array of 2 or 3 numbers")
	}
	x, ok1 := arr[0].(float64)
	y, ok2 := arr[1].(float64)
	if !ok1 || !ok2 {
		return ast.Coord{}, structErr(ptr, "coordinate values must be numbers")
	}
	c := ast.Coord{X: x, Y: y}
	if len(arr) == 3 {
		z, ok := arr[2].(float64)
		if !ok {
			return ast.Coord{}, structErr(ptr, "coordinate Z value must be a number")
		}
		c.Z = &z
	}
	return c, nil
}

func decodeCoordList(v any, ptr string) ([]ast.Coord, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, structErr(ptr, "expected a coordinate array")
	}
	out := make([]ast.Coord, 0, len(arr))
	for i, c := range arr {
		coord, err := decodeCoord(c, childIdx(ptr, i))
		if err != nil {
			return nil, err
		}
		out = append(out, coord)
	}
	return out, nil
}

func decodeRingList(v any, ptr string) ([][]ast.Coord, error) {
	arr, ok := v.([]any)
	if !ok {
		return nil, structErr(ptr, "expected an array of coordinate arrays")
	}
	out := make([][]ast.Coord, 0, len(arr))
	for i, r := range arr {
		ring, err := decodeCoordList(r, childIdx(ptr, i))
		if err != nil {
			return nil, err
		}
		out = append(out, ring)
	}
	return out, nil
}

func (d *decoder) decodeGeometry(obj map[string]any, ptr string) (ast.Expr, error) {
	if err := d.enter(ptr); err != nil {
		return nil, err
	}
	defer d.leave()

	typ, _ := obj["type"].(string)
	pos := cqlerr.Position{Pointer: ptr}
	coordsPtr := child(ptr, "coordinates")

	switch typ {
	case "Point":
		c, err := decodeCoord(obj["coordinates"], coordsPtr)
		if err != nil {
			return nil, err
		}
		return &ast.Point{Coord: c}, nil

	case "LineString":
		coords, err := decodeCoordList(obj["coordinates"], coordsPtr)
		if err != nil {
			return nil, err
		}
		return ast.NewLineString(pos, coords)

	case "Polygon":
		rings, err := decodeRingList(obj["coordinates"], coordsPtr)
		if err != nil {
			return nil, err
		}
		return ast.NewPolygon(pos, rings)

	case "MultiPoint":
		coords, err := decodeCoordList(obj["coordinates"], coordsPtr)
		if err != nil {
			return nil, err
		}
		return &ast.MultiPoint{Points: coords}, nil

	case "MultiLineString":
		lines, err := decodeRingList(obj["coordinates"], coordsPtr)
		if err != nil {
			return nil, err
		}
		return ast.NewMultiLineString(pos, lines)

	case "MultiPolygon":
		arr, ok := obj["coordinates"].([]any)
		if !ok {
			return nil, structErr(coordsPtr, "expected an array of polygons")
		}
		polys := make([][][]ast.Coord, 0, len(arr))
		for i, p := range arr {
			rings, err := decodeRingList(p, childIdx(coordsPtr, i))
			if err != nil {
				return nil, err
			}
			polys = append(polys, rings)
		}
		return ast.NewMultiPolygon(pos, polys)

	case "GeometryCollection":
		arr, ok := obj["geometries"].([]any)
		if !ok {
			return nil, structErr(child(ptr, "geometries"), "expected an array of geometries")
		}
		members := make([]ast.Scalar, 0, len(arr))
		for i, g := range arr {
			gobj, ok := g.(map[string]any)
			if !ok {
				return nil, structErr(childIdx(child(ptr, "geometries"), i), "geometry member must be an object")
			}
			m, err := d.decodeGeometry(gobj, childIdx(child(ptr, "geometries"), i))
			if err != nil {
				return nil, err
			}
			s, ok := m.(ast.Scalar)
			if !ok {
				return nil, structErr(childIdx(child(ptr, "geometries"), i), "geometry member is not a scalar")
			}
			members = append(members, s)
		}
		return ast.NewGeometryCollection(pos, members)
	}

	return nil, &cqlerr.UnknownOperator{Pos: pos, Op: typ}
}

// decodeOp dispatches a {"op":...,"args":[...]} node. The op name
// determines whether the result is a boolean predicate or a scalar
// arithmetic/case-folding node.
func (d *decoder) decodeOp(obj map[string]any, ptr string) (ast.Expr, error) {
	opRaw, ok := obj["op"].(string)
	if !ok {
		return nil, structErr(child(ptr, "op"), "op must be a string")
	}
	argsRaw, ok := obj["args"].([]any)
	if !ok {
		return nil, structErr(child(ptr, "args"), "args must be an array")
	}

	if err := d.enter(ptr); err != nil {
		return nil, err
	}
	defer d.leave()

	argsPtr := child(ptr, "args")
	pos := cqlerr.Position{Pointer: ptr}
	op := opRaw

	decodeArgExpr := func(i int) (ast.Expr, error) {
		if i >= len(argsRaw) {
			return nil, structErr(argsPtr, "%s requires at least %d args, got %d", op, i+1, len(argsRaw))
		}
		return d.decodeExpr(argsRaw[i], childIdx(argsPtr, i))
	}
	decodeArgScalar := func(i int) (ast.Scalar, error) {
		e, err := decodeArgExpr(i)
		if err != nil {
			return nil, err
		}
		s, ok := e.(ast.Scalar)
		if !ok {
			return nil, structErr(childIdx(argsPtr, i), "%s argument %d is not a valid scalar", op, i)
		}
		return s, nil
	}
	decodeArgBool := func(i int) (ast.BooleanExpression, error) {
		e, err := decodeArgExpr(i)
		if err != nil {
			return nil, err
		}
		b, ok := e.(ast.BooleanExpression)
		if !ok {
			return nil, structErr(childIdx(argsPtr, i), "%s argument %d is not a boolean expression", op, i)
		}
		return b, nil
	}

	switch op {
	case "and", "or":
		if len(argsRaw) < 2 {
			return nil, structErr(argsPtr, "%s requires at least 2 args, got %d", op, len(argsRaw))
		}
		operands := make([]ast.BooleanExpression, 0, len(argsRaw))
		for i := range argsRaw {
			b, err := decodeArgBool(i)
			if err != nil {
				return nil, err
			}
			operands = append(operands, flattenSameOp(op, b)...)
		}
		if op == "and" {
			return ast.NewAnd(pos, operands)
		}
		return ast.NewOr(pos, operands)

	case "not":
		b, err := decodeArgBool(0)
		if err != nil {
			return nil, err
		}
		return ast.NewNot(pos, b)

	case "like":
		l, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		p, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		return &ast.Like{Expr: l, Pattern: p}, nil

	case "between":
		v, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		lo, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		hi, err := decodeArgScalar(2)
		if err != nil {
			return nil, err
		}
		return ast.NewBetween(pos, v, lo, hi)

	case "in":
		v, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		listExpr, err := decodeArgExpr(1)
		if err != nil {
			return nil, err
		}
		lit, ok := listExpr.(*ast.ArrayLiteral)
		if !ok {
			return nil, structErr(childIdx(argsPtr, 1), "in requires its second argument to be an array")
		}
		return ast.NewIn(pos, v, lit.Items)

	case "isNull":
		a, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		return &ast.IsNull{Arg: a}, nil

	case "casei":
		a, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		return &ast.CaseI{Inner: a}, nil

	case "accenti":
		a, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		return &ast.AccentI{Inner: a}, nil

	case "=", "<>", "<", ">", "<=", ">=":
		l, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		r, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		return &ast.Comparison{Op: ast.ComparisonOp(op), Left: l, Right: r}, nil

	case "+", "-", "*", "/", "%", "div", "^":
		l, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		r, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		return &ast.Arith{Op: ast.ArithOp(op), Left: l, Right: r}, nil
	}

	if spatial, ok := spatialOps[strings.ToUpper(op)]; ok {
		l, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		r, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		return &ast.Spatial{Op: spatial, Left: l, Right: r}, nil
	}
	if temporal, ok := temporalOps[strings.ToUpper(op)]; ok {
		l, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		r, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		return &ast.Temporal{Op: temporal, Left: l, Right: r}, nil
	}
	if array, ok := arrayOps[strings.ToUpper(op)]; ok {
		l, err := decodeArgScalar(0)
		if err != nil {
			return nil, err
		}
		r, err := decodeArgScalar(1)
		if err != nil {
			return nil, err
		}
		return &ast.ArrayPredicate{Op: array, Left: l, Right: r}, nil
	}

	return nil, &cqlerr.UnknownOperator{Pos: pos, Op: opRaw}
}

var spatialOps = map[string]ast.SpatialOp{
	"S_INTERSECTS": ast.OpSIntersects, "S_EQUALS": ast.OpSEquals, "S_DISJOINT": ast.OpSDisjoint,
	"S_TOUCHES": ast.OpSTouches, "S_WITHIN": ast.OpSWithin, "S_OVERLAPS": ast.OpSOverlaps,
	"S_CROSSES": ast.OpSCrosses, "S_CONTAINS": ast.OpSContains,
}

var temporalOps = map[string]ast.TemporalOp{
	"T_AFTER": ast.OpTAfter, "T_BEFORE": ast.OpTBefore, "T_CONTAINS": ast.OpTContains,
	"T_DISJOINT": ast.OpTDisjoint, "T_DURING": ast.OpTDuring, "T_EQUALS": ast.OpTEquals,
	"T_FINISHEDBY": ast.OpTFinishedBy, "T_FINISHES": ast.OpTFinishes, "T_INTERSECTS": ast.OpTIntersects,
	"T_MEETS": ast.OpTMeets, "T_METBY": ast.OpTMetBy, "T_OVERLAPPEDBY": ast.OpTOverlappedBy,
	"T_OVERLAPS": ast.OpTOverlaps, "T_STARTEDBY": ast.OpTStartedBy, "T_STARTS": ast.OpTStarts,
}

var arrayOps = map[string]ast.ArrayOp{
	"A_EQUALS": ast.OpAEquals, "A_CONTAINS": ast.OpAContains,
	"A_CONTAINEDBY": ast.OpAContainedBy, "A_OVERLAPS": ast.OpAOverlaps,
}
