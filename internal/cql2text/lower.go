// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// lower.go transforms the participle grammar tree into internal/ast nodes.
// This is where spec §4.2.2's lowering rules live: NOT pull-up for NOT
// LIKE/BETWEEN/IN/IS NOT NULL, unary-minus expansion, AND/OR flattening,
// and integer-to-double normalization (free, since ast.Number is always
// float64). Grounded on the validate-then-build pass of the teacher's
// internal/access/policy/dsl/parser.go, which performs the same kind of
// grammar-tree-to-domain-tree walk with a running depth counter.
package cql2text

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	plex "github.com/alecthomas/participle/v2/lexer"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cqlerr"
)

// lowerer carries the nesting-depth budget across a single parse. Depth is
// charged for every recursive boolean, arithmetic, and geometry-collection
// descent, mirroring spec §5's single global depth limit.
type lowerer struct {
	depth    int
	maxDepth int
}

func newLowerer(maxDepth int) *lowerer {
	return &lowerer{maxDepth: maxDepth}
}

func (lo *lowerer) enter(pos cqlerr.Position) error {
	lo.depth++
	if lo.depth > lo.maxDepth {
		return &cqlerr.DepthExceeded{Pos: pos, Limit: lo.maxDepth}
	}
	return nil
}

func (lo *lowerer) leave() { lo.depth-- }

func pos(p plex.Position) cqlerr.Position {
	return cqlerr.Position{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func syntaxErr(p plex.Position, format string, args ...any) error {
	return &cqlerr.SyntaxError{Pos: pos(p), Message: fmt.Sprintf(format, args...)}
}

// lowerFilter is the package's sole entry point into the grammar tree.
func (lo *lowerer) lowerFilter(f *filterG) (*ast.Filter, error) {
	expr, err := lo.lowerOrExpr(f.Expr)
	if err != nil {
		return nil, err
	}
	return &ast.Filter{Node: ast.Node{Pos: pos(f.Pos)}, Expr: expr}, nil
}

func (lo *lowerer) lowerOrExpr(o *orExprG) (ast.BooleanExpression, error) {
	if err := lo.enter(pos(o.Pos)); err != nil {
		return nil, err
	}
	defer lo.leave()

	operands := make([]ast.BooleanExpression, 0, len(o.Operands))
	for _, a := range o.Operands {
		lowered, err := lo.lowerAndExpr(a)
		if err != nil {
			return nil, err
		}
		operands = append(operands, lowered)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return ast.NewOr(pos(o.Pos), operands)
}

func (lo *lowerer) lowerAndExpr(a *andExprG) (ast.BooleanExpression, error) {
	if err := lo.enter(pos(a.Pos)); err != nil {
		return nil, err
	}
	defer lo.leave()

	operands := make([]ast.BooleanExpression, 0, len(a.Operands))
	for _, n := range a.Operands {
		lowered, err := lo.lowerNotExpr(n)
		if err != nil {
			return nil, err
		}
		operands = append(operands, lowered)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return ast.NewAnd(pos(a.Pos), operands)
}

func (lo *lowerer) lowerNotExpr(n *notExprG) (ast.BooleanExpression, error) {
	if n.Not != nil {
		if err := lo.enter(pos(n.Pos)); err != nil {
			return nil, err
		}
		defer lo.leave()
		inner, err := lo.lowerNotExpr(n.Not)
		if err != nil {
			return nil, err
		}
		return ast.NewNot(pos(n.Pos), inner)
	}
	return lo.lowerPrimary(n.Primary)
}

func (lo *lowerer) lowerPrimary(p *primaryG) (ast.BooleanExpression, error) {
	switch {
	case p.Paren != nil:
		return lo.lowerOrExpr(p.Paren)
	case p.Spatial != nil:
		return lo.lowerSpatial(p.Spatial)
	case p.Temporal != nil:
		return lo.lowerTemporal(p.Temporal)
	case p.ArrayPred != nil:
		return lo.lowerArrayPred(p.ArrayPred)
	case p.Predicate != nil:
		return lo.lowerPredicate(p.Predicate)
	}
	return nil, syntaxErr(p.Pos, "empty boolean primary")
}

func (lo *lowerer) lowerSpatial(s *spatialPredG) (ast.BooleanExpression, error) {
	left, err := lo.lowerExpr(s.Left)
	if err != nil {
		return nil, err
	}
	right, err := lo.lowerExpr(s.Right)
	if err != nil {
		return nil, err
	}
	return &ast.Spatial{Node: ast.Node{Pos: pos(s.Pos)}, Op: ast.SpatialOp(strings.ToUpper(s.Op)), Left: left, Right: right}, nil
}

func (lo *lowerer) lowerTemporal(t *temporalPredG) (ast.BooleanExpression, error) {
	left, err := lo.lowerExpr(t.Left)
	if err != nil {
		return nil, err
	}
	right, err := lo.lowerExpr(t.Right)
	if err != nil {
		return nil, err
	}
	return &ast.Temporal{Node: ast.Node{Pos: pos(t.Pos)}, Op: ast.TemporalOp(strings.ToUpper(t.Op)), Left: left, Right: right}, nil
}

func (lo *lowerer) lowerArrayPred(a *arrayPredG) (ast.BooleanExpression, error) {
	left, err := lo.lowerExpr(a.Left)
	if err != nil {
		return nil, err
	}
	right, err := lo.lowerExpr(a.Right)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayPredicate{Node: ast.Node{Pos: pos(a.Pos)}, Op: ast.ArrayOp(strings.ToUpper(a.Op)), Left: left, Right: right}, nil
}

// lowerPredicate implements spec §4.2.2.1's NOT pull-up: a NOT LIKE, NOT
// BETWEEN, NOT IN, or IS NOT NULL tail lowers directly to Not(Like(...)),
// never to Not(wrapping a separately-parsed "NOT ..." boolean factor).
func (lo *lowerer) lowerPredicate(p *predicateG) (ast.BooleanExpression, error) {
	left, err := lo.lowerExpr(p.Left)
	if err != nil {
		return nil, err
	}

	if p.Tail == nil {
		if b, ok := left.(*ast.Bool); ok {
			return b, nil
		}
		return nil, syntaxErr(p.Pos, "expected a comparison, LIKE, BETWEEN, IN, or IS NULL predicate")
	}

	t := p.Tail
	switch {
	case t.Comparison != nil:
		right, err := lo.lowerExpr(t.Comparison.Right)
		if err != nil {
			return nil, err
		}
		op := ast.ComparisonOp(comparisonOpToken(t.Comparison.Op))
		return &ast.Comparison{Node: ast.Node{Pos: pos(p.Pos)}, Op: op, Left: left, Right: right}, nil

	case t.Like != nil:
		pattern, err := lo.lowerExpr(t.Like.Pattern)
		if err != nil {
			return nil, err
		}
		like := &ast.Like{Node: ast.Node{Pos: pos(p.Pos)}, Expr: left, Pattern: pattern}
		if t.Like.Not {
			return ast.NewNot(pos(p.Pos), like)
		}
		return like, nil

	case t.Between != nil:
		low, err := lo.lowerExpr(t.Between.Low)
		if err != nil {
			return nil, err
		}
		high, err := lo.lowerExpr(t.Between.High)
		if err != nil {
			return nil, err
		}
		between, err := ast.NewBetween(pos(p.Pos), left, low, high)
		if err != nil {
			return nil, err
		}
		if t.Between.Not {
			return ast.NewNot(pos(p.Pos), between)
		}
		return between, nil

	case t.In != nil:
		list := make([]ast.Scalar, 0, len(t.In.List))
		for _, e := range t.In.List {
			v, err := lo.lowerExpr(e)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		in, err := ast.NewIn(pos(p.Pos), left, list)
		if err != nil {
			return nil, err
		}
		if t.In.Not {
			return ast.NewNot(pos(p.Pos), in)
		}
		return in, nil

	case t.IsNull != nil:
		isNull := &ast.IsNull{Node: ast.Node{Pos: pos(p.Pos)}, Arg: left}
		if t.IsNull.Not {
			return ast.NewNot(pos(p.Pos), isNull)
		}
		return isNull, nil
	}

	return nil, syntaxErr(p.Pos, "malformed predicate tail")
}

func comparisonOpToken(lexeme string) string {
	switch lexeme {
	case "=":
		return string(ast.OpEqual)
	case "<>":
		return string(ast.OpNotEqual)
	case "<":
		return string(ast.OpLessThan)
	case ">":
		return string(ast.OpGreaterThan)
	case "<=":
		return string(ast.OpLessEqual)
	case ">=":
		return string(ast.OpGreaterEqual)
	}
	return lexeme
}

// --- Arithmetic expressions ---

func (lo *lowerer) lowerExpr(e *exprG) (ast.Scalar, error) {
	left, err := lo.lowerMulExpr(e.Left)
	if err != nil {
		return nil, err
	}
	for _, rhs := range e.Ops {
		if err := lo.enter(pos(e.Pos)); err != nil {
			return nil, err
		}
		right, err := lo.lowerMulExpr(rhs.Right)
		lo.leave()
		if err != nil {
			return nil, err
		}
		op := ast.OpAdd
		if rhs.Op == "-" {
			op = ast.OpSub
		}
		left = &ast.Arith{Node: ast.Node{Pos: pos(e.Pos)}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (lo *lowerer) lowerMulExpr(m *mulExprG) (ast.Scalar, error) {
	left, err := lo.lowerPowExpr(m.Left)
	if err != nil {
		return nil, err
	}
	for _, rhs := range m.Ops {
		if err := lo.enter(pos(m.Pos)); err != nil {
			return nil, err
		}
		right, err := lo.lowerPowExpr(rhs.Right)
		lo.leave()
		if err != nil {
			return nil, err
		}
		var op ast.ArithOp
		switch strings.ToLower(rhs.Op) {
		case "*":
			op = ast.OpMul
		case "/":
			op = ast.OpDiv
		case "%":
			op = ast.OpMod
		case "div":
			op = ast.OpIntDiv
		}
		left = &ast.Arith{Node: ast.Node{Pos: pos(m.Pos)}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (lo *lowerer) lowerPowExpr(p *powExprG) (ast.Scalar, error) {
	left, err := lo.lowerUnaryExpr(p.Left)
	if err != nil {
		return nil, err
	}
	if p.Right == nil {
		return left, nil
	}
	if err := lo.enter(pos(p.Pos)); err != nil {
		return nil, err
	}
	defer lo.leave()
	right, err := lo.lowerPowExpr(p.Right)
	if err != nil {
		return nil, err
	}
	return &ast.Arith{Node: ast.Node{Pos: pos(p.Pos)}, Op: ast.OpPow, Left: left, Right: right}, nil
}

// lowerUnaryExpr implements spec §4.2.2.2: a leading '-' directly in front
// of a Number literal folds its sign into the literal; a leading '-' in
// front of anything else expands to Arith(*, Number(-1), operand).
func (lo *lowerer) lowerUnaryExpr(u *unaryExprG) (ast.Scalar, error) {
	atom, err := lo.lowerAtom(u.Atom)
	if err != nil {
		return nil, err
	}
	if !u.Neg {
		return atom, nil
	}
	if n, ok := atom.(*ast.Number); ok {
		n.Value = -n.Value
		return n, nil
	}
	return &ast.Arith{
		Node:  ast.Node{Pos: pos(u.Pos)},
		Op:    ast.OpMul,
		Left:  &ast.Number{Node: ast.Node{Pos: pos(u.Pos)}, Value: -1},
		Right: atom,
	}, nil
}

func (lo *lowerer) lowerAtom(a *atomG) (ast.Scalar, error) {
	switch {
	case a.Number != nil:
		v, err := strconv.ParseFloat(*a.Number, 64)
		if err != nil {
			return nil, syntaxErr(a.Pos, "invalid number literal %q: %v", *a.Number, err)
		}
		return &ast.Number{Node: ast.Node{Pos: pos(a.Pos)}, Value: v}, nil

	case a.Str != nil:
		return &ast.String{Node: ast.Node{Pos: pos(a.Pos)}, Value: unquoteCQLString(*a.Str)}, nil

	case a.Bool != nil:
		return &ast.Bool{Node: ast.Node{Pos: pos(a.Pos)}, Value: strings.EqualFold(*a.Bool, "TRUE")}, nil

	case a.CaseI != nil:
		inner, err := lo.lowerExpr(a.CaseI)
		if err != nil {
			return nil, err
		}
		return &ast.CaseI{Node: ast.Node{Pos: pos(a.Pos)}, Inner: inner}, nil

	case a.AccentI != nil:
		inner, err := lo.lowerExpr(a.AccentI)
		if err != nil {
			return nil, err
		}
		return &ast.AccentI{Node: ast.Node{Pos: pos(a.Pos)}, Inner: inner}, nil

	case a.DateLit != nil:
		return lowerDateLiteral(a.Pos, *a.DateLit)

	case a.TimestampLit != nil:
		return lowerTimestampLiteral(a.Pos, *a.TimestampLit)

	case a.IntervalLit != nil:
		return lo.lowerInterval(a.IntervalLit)

	case a.Geometry != nil:
		return lo.lowerGeometry(a.Geometry)

	case a.DQ != nil:
		return &ast.Property{Node: ast.Node{Pos: pos(a.Pos)}, Name: unquoteDQIdent(a.DQ.Name)}, nil

	case a.Ident != nil:
		return lo.lowerIdentAtom(a.Ident)

	case a.Paren != nil:
		return lo.lowerParenAtom(a.Paren)
	}
	return nil, syntaxErr(a.Pos, "empty atom")
}

func (lo *lowerer) lowerIdentAtom(id *identAtomG) (ast.Scalar, error) {
	if !validateIdentifier(id.Name) {
		return nil, &cqlerr.EncodingError{Pos: pos(id.Pos), Message: fmt.Sprintf("identifier %q contains an illegal character", id.Name)}
	}
	if id.Call == nil {
		return &ast.Property{Node: ast.Node{Pos: pos(id.Pos)}, Name: id.Name}, nil
	}
	if err := lo.enter(pos(id.Pos)); err != nil {
		return nil, err
	}
	defer lo.leave()
	args := make([]ast.Scalar, 0, len(id.Call.Args))
	for _, a := range id.Call.Args {
		v, err := lo.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return &ast.Function{Node: ast.Node{Pos: pos(id.Pos)}, Name: id.Name, Args: args}, nil
}

func (lo *lowerer) lowerParenAtom(p *parenAtomG) (ast.Scalar, error) {
	first, err := lo.lowerExpr(p.First)
	if err != nil {
		return nil, err
	}
	if len(p.Rest) == 0 {
		return first, nil
	}
	if err := lo.enter(pos(p.Pos)); err != nil {
		return nil, err
	}
	defer lo.leave()
	items := make([]ast.Scalar, 0, len(p.Rest)+1)
	items = append(items, first)
	for _, e := range p.Rest {
		v, err := lo.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return &ast.ArrayLiteral{Node: ast.Node{Pos: pos(p.Pos)}, Items: items}, nil
}

func (lo *lowerer) lowerInterval(iv *intervalG) (ast.Scalar, error) {
	start, err := lo.lowerIntervalEndpoint(iv.Start)
	if err != nil {
		return nil, err
	}
	end, err := lo.lowerIntervalEndpoint(iv.End)
	if err != nil {
		return nil, err
	}
	built, warnErr := ast.NewInterval(pos(iv.Pos), start, end)
	if warnErr != nil {
		if _, ok := warnErr.(*ast.IntervalWarning); !ok {
			return nil, warnErr
		}
	}
	return built, nil
}

func (lo *lowerer) lowerIntervalEndpoint(e *intervalEndpointG) (ast.IntervalEndpoint, error) {
	switch {
	case e.DateLit != nil:
		d, err := lowerDateLiteral(e.Pos, *e.DateLit)
		if err != nil {
			return nil, err
		}
		return d.(*ast.Date), nil

	case e.TimestampLit != nil:
		ts, err := lowerTimestampLiteral(e.Pos, *e.TimestampLit)
		if err != nil {
			return nil, err
		}
		return ts.(*ast.Timestamp), nil

	case e.Str != nil:
		return lowerIntervalEndpointString(e.Pos, *e.Str)

	case e.Ident != nil:
		v, err := lo.lowerIdentAtom(e.Ident)
		if err != nil {
			return nil, err
		}
		switch t := v.(type) {
		case *ast.Property:
			return t, nil
		case *ast.Function:
			return t, nil
		}
	}
	return nil, syntaxErr(e.Pos, "invalid interval endpoint")
}

// lowerIntervalEndpointString interprets a bare quoted interval endpoint:
// ".." is the OpenEnd sentinel, a string containing 'T' or 't' is a
// Timestamp, and anything else is parsed as a Date.
func lowerIntervalEndpointString(p plex.Position, quoted string) (ast.IntervalEndpoint, error) {
	s := unquoteCQLString(quoted)
	if s == ".." {
		return &ast.OpenEnd{Node: ast.Node{Pos: pos(p)}}, nil
	}
	if strings.ContainsAny(s, "Tt") {
		v, err := lowerTimestampLiteral(p, quoted)
		if err != nil {
			return nil, err
		}
		return v.(*ast.Timestamp), nil
	}
	v, err := lowerDateLiteral(p, quoted)
	if err != nil {
		return nil, err
	}
	return v.(*ast.Date), nil
}

func lowerDateLiteral(p plex.Position, quoted string) (ast.Scalar, error) {
	s := unquoteCQLString(quoted)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, &cqlerr.SyntaxError{Pos: pos(p), Message: fmt.Sprintf("invalid DATE literal %q: %v", s, err)}
	}
	return &ast.Date{Node: ast.Node{Pos: pos(p)}, Year: t.Year(), Month: int(t.Month()), Day: t.Day()}, nil
}

func lowerTimestampLiteral(p plex.Position, quoted string) (ast.Scalar, error) {
	s := unquoteCQLString(quoted)
	t, err := parseFlexibleTimestamp(s)
	if err != nil {
		return nil, &cqlerr.SyntaxError{Pos: pos(p), Message: fmt.Sprintf("invalid TIMESTAMP literal %q: %v", s, err)}
	}
	return &ast.Timestamp{
		Node: ast.Node{Pos: pos(p)},
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		Microsecond: t.Nanosecond() / 1000,
	}, nil
}

func parseFlexibleTimestamp(s string) (time.Time, error) {
	layouts := []string{
		"2006-01-02T15:04:05.999999Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
	}
	var lastErr error
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// unquoteCQLString strips the surrounding single quotes and collapses both
// of the grammar's escape forms ('' and \') to a literal '.
func unquoteCQLString(quoted string) string {
	inner := quoted[1 : len(quoted)-1]
	inner = strings.ReplaceAll(inner, `\'`, "'")
	inner = strings.ReplaceAll(inner, "''", "'")
	return inner
}

// unquoteDQIdent strips surrounding double quotes and collapses the "" escape.
func unquoteDQIdent(quoted string) string {
	inner := quoted[1 : len(quoted)-1]
	return strings.ReplaceAll(inner, `""`, `"`)
}

func signed(n *signedNumberG) (float64, error) {
	v, err := strconv.ParseFloat(n.Val, 64)
	if err != nil {
		return 0, &cqlerr.SyntaxError{Message: fmt.Sprintf("invalid number literal %q: %v", n.Val, err)}
	}
	if n.Neg {
		v = -v
	}
	return v, nil
}

func lowerCoord(c *coordG) (ast.Coord, error) {
	x, err := signed(c.X)
	if err != nil {
		return ast.Coord{}, err
	}
	y, err := signed(c.Y)
	if err != nil {
		return ast.Coord{}, err
	}
	out := ast.Coord{X: x, Y: y}
	if c.Z != nil {
		z, err := signed(c.Z)
		if err != nil {
			return ast.Coord{}, err
		}
		out.Z = &z
	}
	return out, nil
}

func lowerCoordList(cl *coordListG) ([]ast.Coord, error) {
	out := make([]ast.Coord, 0, len(cl.Coords))
	for _, c := range cl.Coords {
		lc, err := lowerCoord(c)
		if err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, nil
}

// lowerGeometry dispatches on the WKTType keyword. Every body shape is
// already structurally valid per the grammar; what's checked here is that
// the shape actually matches what the declared type requires (spec §3.7
// invariants 2 and 3 plus general WKT well-formedness).
func (lo *lowerer) lowerGeometry(g *geometryG) (ast.Scalar, error) {
	if g.ZMarker != "" && !strings.EqualFold(g.ZMarker, "Z") {
		return nil, syntaxErr(g.Pos, "unexpected token %q after geometry type", g.ZMarker)
	}
	if err := lo.enter(pos(g.Pos)); err != nil {
		return nil, err
	}
	defer lo.leave()

	typ := strings.ToUpper(g.Type)
	b := g.Body

	switch typ {
	case "POINT":
		if b.CoordList == nil || len(b.CoordList.Coords) != 1 {
			return nil, syntaxErr(g.Pos, "POINT requires exactly one coordinate")
		}
		c, err := lowerCoord(b.CoordList.Coords[0])
		if err != nil {
			return nil, err
		}
		return &ast.Point{Node: ast.Node{Pos: pos(g.Pos)}, Coord: c}, nil

	case "LINESTRING":
		if b.CoordList == nil {
			return nil, syntaxErr(g.Pos, "LINESTRING requires a flat coordinate list")
		}
		coords, err := lowerCoordList(b.CoordList)
		if err != nil {
			return nil, err
		}
		return ast.NewLineString(pos(g.Pos), coords)

	case "MULTIPOINT":
		switch {
		case b.CoordList != nil:
			coords, err := lowerCoordList(b.CoordList)
			if err != nil {
				return nil, err
			}
			return &ast.MultiPoint{Node: ast.Node{Pos: pos(g.Pos)}, Points: coords}, nil
		case b.RingList != nil:
			points := make([]ast.Coord, 0, len(b.RingList.Items))
			for _, item := range b.RingList.Items {
				if len(item.Inner.Coords) != 1 {
					return nil, syntaxErr(g.Pos, "MULTIPOINT member must be a single parenthesized coordinate")
				}
				c, err := lowerCoord(item.Inner.Coords[0])
				if err != nil {
					return nil, err
				}
				points = append(points, c)
			}
			return &ast.MultiPoint{Node: ast.Node{Pos: pos(g.Pos)}, Points: points}, nil
		}
		return nil, syntaxErr(g.Pos, "malformed MULTIPOINT body")

	case "POLYGON":
		if b.RingList == nil {
			return nil, syntaxErr(g.Pos, "POLYGON requires one or more parenthesized rings")
		}
		rings := make([][]ast.Coord, 0, len(b.RingList.Items))
		for _, item := range b.RingList.Items {
			ring, err := lowerCoordList(item.Inner)
			if err != nil {
				return nil, err
			}
			rings = append(rings, ring)
		}
		return ast.NewPolygon(pos(g.Pos), rings)

	case "MULTILINESTRING":
		if b.RingList == nil {
			return nil, syntaxErr(g.Pos, "MULTILINESTRING requires one or more parenthesized lines")
		}
		lines := make([][]ast.Coord, 0, len(b.RingList.Items))
		for _, item := range b.RingList.Items {
			line, err := lowerCoordList(item.Inner)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line)
		}
		return ast.NewMultiLineString(pos(g.Pos), lines)

	case "MULTIPOLYGON":
		if b.PolyList == nil {
			return nil, syntaxErr(g.Pos, "MULTIPOLYGON requires one or more parenthesized polygons")
		}
		polys := make([][][]ast.Coord, 0, len(b.PolyList.Items))
		for _, polyItem := range b.PolyList.Items {
			rings := make([][]ast.Coord, 0, len(polyItem.Inner.Items))
			for _, ringItem := range polyItem.Inner.Items {
				ring, err := lowerCoordList(ringItem.Inner)
				if err != nil {
					return nil, err
				}
				rings = append(rings, ring)
			}
			polys = append(polys, rings)
		}
		return ast.NewMultiPolygon(pos(g.Pos), polys)

	case "GEOMETRYCOLLECTION":
		if b.GeomList == nil {
			return nil, syntaxErr(g.Pos, "GEOMETRYCOLLECTION requires one or more member geometries")
		}
		members := make([]ast.Scalar, 0, len(b.GeomList.Items))
		for _, member := range b.GeomList.Items {
			m, err := lo.lowerGeometry(member)
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return ast.NewGeometryCollection(pos(g.Pos), members)

	case "BBOX":
		if b.Flat == nil {
			return nil, syntaxErr(g.Pos, "BBOX requires a flat comma-separated number list")
		}
		nums := make([]float64, 0, len(b.Flat))
		for _, n := range b.Flat {
			v, err := signed(n)
			if err != nil {
				return nil, err
			}
			nums = append(nums, v)
		}
		return ast.NewBBox(pos(g.Pos), nums)
	}

	return nil, syntaxErr(g.Pos, "unknown geometry type %q", g.Type)
}
