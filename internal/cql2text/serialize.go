// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// serialize.go renders an AST back to CQL2-Text following spec §4.3.3's
// opinionated, lossless-but-not-byte-identical rules: properties are
// always double-quoted, Comparison and Arith are always parenthesized,
// TIMESTAMP literals always carry exactly six fractional digits, integral
// Numbers always carry a trailing ".0", WKT MULTIPOINT members are always
// individually parenthesized, and NOT LIKE/BETWEEN/IN/IS NOT NULL render
// as their inline negative forms rather than a leading NOT(...).
package cql2text

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cql2go/cql2/internal/ast"
)

// ToText renders f as CQL2-Text.
func ToText(f *ast.Filter) string {
	return serializeBool(f.Expr)
}

func serializeBool(e ast.BooleanExpression) string {
	switch v := e.(type) {
	case *ast.And:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = parenIfOr(a)
		}
		return strings.Join(parts, " AND ")

	case *ast.Or:
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = serializeBool(a)
		}
		return strings.Join(parts, " OR ")

	case *ast.Not:
		return serializeNot(v)

	case *ast.Bool:
		return boolLiteral(v.Value)

	case *ast.Comparison:
		return fmt.Sprintf("(%s %s %s)", serializeScalar(v.Left), string(v.Op), serializeScalar(v.Right))

	case *ast.Like:
		return fmt.Sprintf("%s LIKE %s", serializeScalar(v.Expr), serializeScalar(v.Pattern))

	case *ast.Between:
		return fmt.Sprintf("%s BETWEEN %s AND %s", serializeScalar(v.Value), serializeScalar(v.Low), serializeScalar(v.High))

	case *ast.In:
		return fmt.Sprintf("%s IN (%s)", serializeScalar(v.Value), joinScalars(v.List))

	case *ast.IsNull:
		return fmt.Sprintf("%s IS NULL", serializeScalar(v.Arg))

	case *ast.Spatial:
		return fmt.Sprintf("%s(%s, %s)", string(v.Op), serializeScalar(v.Left), serializeScalar(v.Right))

	case *ast.Temporal:
		return fmt.Sprintf("%s(%s, %s)", string(v.Op), serializeScalar(v.Left), serializeScalar(v.Right))

	case *ast.ArrayPredicate:
		return fmt.Sprintf("%s(%s, %s)", string(v.Op), serializeScalar(v.Left), serializeScalar(v.Right))
	}
	return ""
}

// parenIfOr wraps e in parentheses when it is an Or nested inside an And,
// the one case where precedence would otherwise be lost on a later parse
// (AND binds tighter than OR).
func parenIfOr(e ast.BooleanExpression) string {
	if _, ok := e.(*ast.Or); ok {
		return "(" + serializeBool(e) + ")"
	}
	return serializeBool(e)
}

// serializeNot renders NOT LIKE/BETWEEN/IN/IS NOT NULL as their inline
// negative forms (spec §4.3.3 rule 7) and falls back to a parenthesized
// "NOT (...)" for every other operand.
func serializeNot(n *ast.Not) string {
	switch inner := n.Arg.(type) {
	case *ast.Like:
		return fmt.Sprintf("%s NOT LIKE %s", serializeScalar(inner.Expr), serializeScalar(inner.Pattern))
	case *ast.Between:
		return fmt.Sprintf("%s NOT BETWEEN %s AND %s", serializeScalar(inner.Value), serializeScalar(inner.Low), serializeScalar(inner.High))
	case *ast.In:
		return fmt.Sprintf("%s NOT IN (%s)", serializeScalar(inner.Value), joinScalars(inner.List))
	case *ast.IsNull:
		return fmt.Sprintf("%s IS NOT NULL", serializeScalar(inner.Arg))
	default:
		return "NOT (" + serializeBool(inner) + ")"
	}
}

func boolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func joinScalars(items []ast.Scalar) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = serializeScalar(it)
	}
	return strings.Join(parts, ", ")
}

func serializeScalar(s ast.Scalar) string {
	switch v := s.(type) {
	case *ast.Number:
		return formatNumber(v.Value)
	case *ast.String:
		return "'" + escapeString(v.Value) + "'"
	case *ast.Bool:
		return boolLiteral(v.Value)
	case *ast.Property:
		return `"` + escapePropertyName(v.Name) + `"`
	case *ast.Function:
		return v.Name + "(" + joinScalars(v.Args) + ")"
	case *ast.Arith:
		return fmt.Sprintf("(%s %s %s)", serializeScalar(v.Left), string(v.Op), serializeScalar(v.Right))
	case *ast.CaseI:
		return "CASEI(" + serializeScalar(v.Inner) + ")"
	case *ast.AccentI:
		return "ACCENTI(" + serializeScalar(v.Inner) + ")"
	case *ast.ArrayLiteral:
		return "(" + joinScalars(v.Items) + ")"
	case *ast.Date:
		return "DATE('" + formatDate(v) + "')"
	case *ast.Timestamp:
		return "TIMESTAMP('" + formatTimestamp(v) + "')"
	case *ast.Interval:
		return "INTERVAL(" + serializeEndpoint(v.Start) + ", " + serializeEndpoint(v.End) + ")"
	case *ast.OpenEnd:
		return "'..'"
	case *ast.Point, *ast.LineString, *ast.Polygon, *ast.MultiPoint,
		*ast.MultiLineString, *ast.MultiPolygon, *ast.GeometryCollection, *ast.BBox:
		return serializeGeometry(v)
	}
	// Nested BooleanExpression used as a Scalar (spec §9 open question).
	if be, ok := s.(ast.BooleanExpression); ok {
		return serializeBool(be)
	}
	return ""
}

func serializeEndpoint(e ast.IntervalEndpoint) string {
	switch v := e.(type) {
	case *ast.Date:
		return "'" + formatDate(v) + "'"
	case *ast.Timestamp:
		return "'" + formatTimestamp(v) + "'"
	case *ast.OpenEnd:
		return "'..'"
	case *ast.Property:
		return `"` + escapePropertyName(v.Name) + `"`
	case *ast.Function:
		return serializeScalar(v)
	}
	return ""
}

// formatNumber implements spec §4.3.3 rule 3 plus property 7's regex
// (-?(\d+\.\d+|inf|nan)): exact integers get a trailing ".0"; everything
// else uses the shortest round-trip decimal; non-finite values spell out
// "inf"/"-inf"/"nan".
func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v):
		return strconv.FormatFloat(v, 'f', -1, 64) + ".0"
	default:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
}

func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func escapePropertyName(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

func formatDate(d *ast.Date) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func formatTimestamp(t *ast.Timestamp) string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06dZ",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.Microsecond)
}

// --- WKT geometry serialization ---

func serializeGeometry(s ast.Scalar) string {
	switch v := s.(type) {
	case *ast.Point:
		return "POINT" + zSuffix(v.Coord.Is3D()) + "(" + formatCoord(v.Coord) + ")"

	case *ast.LineString:
		return "LINESTRING" + zSuffix(anyCoord3D(v.Coords)) + "(" + formatCoordList(v.Coords) + ")"

	case *ast.Polygon:
		return "POLYGON" + zSuffix(anyRings3D(v.Rings)) + "(" + formatRingList(v.Rings) + ")"

	case *ast.MultiPoint:
		parts := make([]string, len(v.Points))
		for i, c := range v.Points {
			parts[i] = "(" + formatCoord(c) + ")"
		}
		return "MULTIPOINT" + zSuffix(anyCoord3D(v.Points)) + "(" + strings.Join(parts, ", ") + ")"

	case *ast.MultiLineString:
		return "MULTILINESTRING" + zSuffix(anyRings3D(v.Lines)) + "(" + formatRingList(v.Lines) + ")"

	case *ast.MultiPolygon:
		parts := make([]string, len(v.Polygons))
		for i, poly := range v.Polygons {
			parts[i] = "(" + formatRingList(poly) + ")"
		}
		return "MULTIPOLYGON" + zSuffix(anyPolys3D(v.Polygons)) + "(" + strings.Join(parts, ", ") + ")"

	case *ast.GeometryCollection:
		parts := make([]string, len(v.Geometries))
		for i, g := range v.Geometries {
			parts[i] = serializeGeometry(g)
		}
		return "GEOMETRYCOLLECTION(" + strings.Join(parts, ", ") + ")"

	case *ast.BBox:
		nums := []string{formatNumber(v.MinX), formatNumber(v.MinY)}
		if v.Is3D() {
			nums = append(nums, formatNumber(*v.MinZ))
		}
		nums = append(nums, formatNumber(v.MaxX), formatNumber(v.MaxY))
		if v.Is3D() {
			nums = append(nums, formatNumber(*v.MaxZ))
		}
		return "BBOX(" + strings.Join(nums, ", ") + ")"
	}
	return ""
}

func zSuffix(is3D bool) string {
	if is3D {
		return " Z"
	}
	return ""
}

func formatCoord(c ast.Coord) string {
	parts := []string{formatNumber(c.X), formatNumber(c.Y)}
	if c.Z != nil {
		parts = append(parts, formatNumber(*c.Z))
	}
	return strings.Join(parts, " ")
}

func formatCoordList(coords []ast.Coord) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = formatCoord(c)
	}
	return strings.Join(parts, ", ")
}

func formatRingList(rings [][]ast.Coord) string {
	parts := make([]string, len(rings))
	for i, r := range rings {
		parts[i] = "(" + formatCoordList(r) + ")"
	}
	return strings.Join(parts, ", ")
}

func anyCoord3D(coords []ast.Coord) bool {
	for _, c := range coords {
		if c.Is3D() {
			return true
		}
	}
	return false
}

func anyRings3D(rings [][]ast.Coord) bool {
	for _, r := range rings {
		if anyCoord3D(r) {
			return true
		}
	}
	return false
}

func anyPolys3D(polys [][][]ast.Coord) bool {
	for _, p := range polys {
		if anyRings3D(p) {
			return true
		}
	}
	return false
}
