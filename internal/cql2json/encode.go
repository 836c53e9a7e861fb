// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

// Package cql2json implements the CQL2-JSON serializer and decoder (spec
// §4.3.1/§4.3.2). JSON is the canonical representation: AST -> JSON -> AST
// is required to be the identity (modulo key order and numeric spelling).
// The mapping is hand-written rather than struct-tag marshaling because
// the wire shape is a polymorphic tagged union ({"op":...,"args":[...]}
// alongside several special-cased shapes), not a fixed record layout.
package cql2json

import (
	"encoding/json"
	"strings"

	"github.com/cql2go/cql2/internal/ast"
)

// Encode renders f as the canonical CQL2-JSON document.
func Encode(f *ast.Filter) (json.RawMessage, error) {
	return json.Marshal(encodeExpr(f.Expr))
}

func encodeExpr(e ast.Expr) any {
	switch v := e.(type) {
	case *ast.And:
		return opArgs("and", encodeAll(boolSlice(v.Args)))
	case *ast.Or:
		return opArgs("or", encodeAll(boolSlice(v.Args)))
	case *ast.Not:
		return opArgs("not", []any{encodeExpr(v.Arg)})
	case *ast.Bool:
		return v.Value
	case *ast.Comparison:
		return opArgs(string(v.Op), []any{encodeExpr(v.Left), encodeExpr(v.Right)})
	case *ast.Like:
		return opArgs("like", []any{encodeExpr(v.Expr), encodeExpr(v.Pattern)})
	case *ast.Between:
		return opArgs("between", []any{encodeExpr(v.Value), encodeExpr(v.Low), encodeExpr(v.High)})
	case *ast.In:
		return opArgs("in", []any{encodeExpr(v.Value), encodeAll(scalarSlice(v.List))})
	case *ast.IsNull:
		return opArgs("isNull", []any{encodeExpr(v.Arg)})
	case *ast.Spatial:
		return opArgs(strings.ToLower(string(v.Op)), []any{encodeExpr(v.Left), encodeExpr(v.Right)})
	case *ast.Temporal:
		return opArgs(strings.ToLower(string(v.Op)), []any{encodeExpr(v.Left), encodeExpr(v.Right)})
	case *ast.ArrayPredicate:
		return opArgs(strings.ToLower(string(v.Op)), []any{encodeExpr(v.Left), encodeExpr(v.Right)})

	case *ast.Number:
		return v.Value
	case *ast.String:
		return v.Value
	case *ast.Property:
		return map[string]any{"property": v.Name}
	case *ast.Function:
		return map[string]any{"function": map[string]any{
			"name": v.Name,
			"args": encodeAll(scalarSlice(v.Args)),
		}}
	case *ast.Arith:
		return opArgs(string(v.Op), []any{encodeExpr(v.Left), encodeExpr(v.Right)})
	case *ast.CaseI:
		return opArgs("casei", []any{encodeExpr(v.Inner)})
	case *ast.AccentI:
		return opArgs("accenti", []any{encodeExpr(v.Inner)})
	case *ast.ArrayLiteral:
		return encodeAll(scalarSlice(v.Items))

	case *ast.Date:
		return map[string]any{"date": formatDate(v)}
	case *ast.Timestamp:
		return map[string]any{"timestamp": formatTimestamp(v)}
	case *ast.Interval:
		return map[string]any{"interval": []any{encodeIntervalEndpoint(v.Start), encodeIntervalEndpoint(v.End)}}
	case *ast.OpenEnd:
		return ".."

	case *ast.Point:
		return geoJSON("Point", encodeCoord(v.Coord))
	case *ast.LineString:
		return geoJSON("LineString", encodeCoordList(v.Coords))
	case *ast.Polygon:
		return geoJSON("Polygon", encodeRingList(v.Rings))
	case *ast.MultiPoint:
		return geoJSON("MultiPoint", encodeCoordList(v.Points))
	case *ast.MultiLineString:
		return geoJSON("MultiLineString", encodeRingList(v.Lines))
	case *ast.MultiPolygon:
		polys := make([]any, len(v.Polygons))
		for i, p := range v.Polygons {
			polys[i] = encodeRingList(p)
		}
		return map[string]any{"type": "MultiPolygon", "coordinates": polys}
	case *ast.GeometryCollection:
		geoms := make([]any, len(v.Geometries))
		for i, g := range v.Geometries {
			geoms[i] = encodeExpr(g)
		}
		return map[string]any{"type": "GeometryCollection", "geometries": geoms}
	case *ast.BBox:
		if v.Is3D() {
			return map[string]any{"bbox": []any{v.MinX, v.MinY, *v.MinZ, v.MaxX, v.MaxY, *v.MaxZ}}
		}
		return map[string]any{"bbox": []any{v.MinX, v.MinY, v.MaxX, v.MaxY}}
	}
	return nil
}

func encodeIntervalEndpoint(e ast.IntervalEndpoint) any {
	switch v := e.(type) {
	case *ast.Date:
		return formatDate(v)
	case *ast.Timestamp:
		return formatTimestamp(v)
	case *ast.OpenEnd:
		return ".."
	case *ast.Property, *ast.Function:
		return encodeExpr(v.(ast.Expr))
	}
	return nil
}

func opArgs(op string, args []any) map[string]any {
	return map[string]any{"op": op, "args": args}
}

func boolSlice(xs []ast.BooleanExpression) []ast.Expr {
	out := make([]ast.Expr, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func scalarSlice(xs []ast.Scalar) []ast.Expr {
	out := make([]ast.Expr, len(xs))
	for i, x := range xs {
		out[i] = x
	}
	return out
}

func encodeAll(xs []ast.Expr) []any {
	out := make([]any, len(xs))
	for i, x := range xs {
		out[i] = encodeExpr(x)
	}
	return out
}

func geoJSON(typ string, coords any) map[string]any {
	return map[string]any{"type": typ, "coordinates": coords}
}

func encodeCoord(c ast.Coord) []any {
	if c.Z != nil {
		return []any{c.X, c.Y, *c.Z}
	}
	return []any{c.X, c.Y}
}

func encodeCoordList(coords []ast.Coord) []any {
	out := make([]any, len(coords))
	for i, c := range coords {
		out[i] = encodeCoord(c)
	}
	return out
}

func encodeRingList(rings [][]ast.Coord) []any {
	out := make([]any, len(rings))
	for i, r := range rings {
		out[i] = encodeCoordList(r)
	}
	return out
}
