// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package ast

import (
	"fmt"

	"github.com/cql2go/cql2/internal/cqlerr"
)

// structErr builds a StructuralError at pos with a formatted message.
func structErr(pos cqlerr.Position, format string, args ...any) error {
	return &cqlerr.StructuralError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// NewAnd builds an And node. Invariant: len(args) >= 2.
func NewAnd(pos cqlerr.Position, args []BooleanExpression) (*And, error) {
	if len(args) < 2 {
		return nil, structErr(pos, "AND requires at least 2 operands, got %d", len(args))
	}
	return &And{Node: Node{Pos: pos}, Args: args}, nil
}

// NewOr builds an Or node. Invariant: len(args) >= 2.
func NewOr(pos cqlerr.Position, args []BooleanExpression) (*Or, error) {
	if len(args) < 2 {
		return nil, structErr(pos, "OR requires at least 2 operands, got %d", len(args))
	}
	return &Or{Node: Node{Pos: pos}, Args: args}, nil
}

// NewNot builds a Not node.
func NewNot(pos cqlerr.Position, arg BooleanExpression) (*Not, error) {
	if arg == nil {
		return nil, structErr(pos, "NOT requires an operand")
	}
	return &Not{Node: Node{Pos: pos}, Arg: arg}, nil
}

// NewBetween builds a Between node.
func NewBetween(pos cqlerr.Position, value, low, high Scalar) (*Between, error) {
	if value == nil || low == nil || high == nil {
		return nil, structErr(pos, "BETWEEN requires value, low, and high operands")
	}
	return &Between{Node: Node{Pos: pos}, Value: value, Low: low, High: high}, nil
}

// NewIn builds an In node. Invariant: list is non-empty.
func NewIn(pos cqlerr.Position, value Scalar, list []Scalar) (*In, error) {
	if len(list) == 0 {
		return nil, structErr(pos, "IN requires at least one list element")
	}
	return &In{Node: Node{Pos: pos}, Value: value, List: list}, nil
}

// NewLineString builds a LineString. Invariant 2: >= 2 coordinates.
func NewLineString(pos cqlerr.Position, coords []Coord) (*LineString, error) {
	if len(coords) < 2 {
		return nil, structErr(pos, "LINESTRING requires at least 2 coordinates, got %d", len(coords))
	}
	return &LineString{Node: Node{Pos: pos}, Coords: coords}, nil
}

// NewPolygon builds a Polygon. Invariant 2: every ring has >= 4 coordinates.
func NewPolygon(pos cqlerr.Position, rings [][]Coord) (*Polygon, error) {
	for i, ring := range rings {
		if len(ring) < 4 {
			return nil, structErr(pos, "POLYGON ring %d requires at least 4 coordinates, got %d", i, len(ring))
		}
	}
	return &Polygon{Node: Node{Pos: pos}, Rings: rings}, nil
}

// NewMultiLineString builds a MultiLineString; each member line must satisfy
// the LineString minimum-coordinate invariant.
func NewMultiLineString(pos cqlerr.Position, lines [][]Coord) (*MultiLineString, error) {
	for i, line := range lines {
		if len(line) < 2 {
			return nil, structErr(pos, "MULTILINESTRING member %d requires at least 2 coordinates, got %d", i, len(line))
		}
	}
	return &MultiLineString{Node: Node{Pos: pos}, Lines: lines}, nil
}

// NewMultiPolygon builds a MultiPolygon; every ring of every member polygon
// must satisfy the Polygon ring invariant.
func NewMultiPolygon(pos cqlerr.Position, polygons [][][]Coord) (*MultiPolygon, error) {
	for pi, poly := range polygons {
		for ri, ring := range poly {
			if len(ring) < 4 {
				return nil, structErr(pos, "MULTIPOLYGON member %d ring %d requires at least 4 coordinates, got %d", pi, ri, len(ring))
			}
		}
	}
	return &MultiPolygon{Node: Node{Pos: pos}, Polygons: polygons}, nil
}

// NewGeometryCollection builds a GeometryCollection. Invariant 3: members
// must be non-collection geometries and never a BBox.
func NewGeometryCollection(pos cqlerr.Position, members []Scalar) (*GeometryCollection, error) {
	for i, m := range members {
		switch m.(type) {
		case *GeometryCollection:
			return nil, structErr(pos, "GEOMETRYCOLLECTION member %d must not itself be a collection", i)
		case *BBox:
			return nil, structErr(pos, "GEOMETRYCOLLECTION member %d must not be a BBOX", i)
		case *Point, *LineString, *Polygon, *MultiPoint, *MultiLineString, *MultiPolygon:
			// ok
		default:
			return nil, structErr(pos, "GEOMETRYCOLLECTION member %d is not a geometry", i)
		}
	}
	return &GeometryCollection{Node: Node{Pos: pos}, Geometries: members}, nil
}

// IntervalWarning is returned alongside a successfully built Interval when
// invariant 4 (at least one concrete endpoint) is violated. It is not an
// error: the grammar allows two ".." sentinels, and spec §3.7 invariant 4
// only asks that callers be warned, not that construction fail.
type IntervalWarning struct {
	Message string
}

func (w *IntervalWarning) Error() string { return w.Message }

// NewInterval builds an Interval. If both endpoints are the OpenEnd
// sentinel, the Interval is still returned, paired with a non-nil
// *IntervalWarning (never a *cqlerr type) so callers can choose to log it.
func NewInterval(pos cqlerr.Position, start, end IntervalEndpoint) (*Interval, error) {
	iv := &Interval{Node: Node{Pos: pos}, Start: start, End: end}
	_, startOpen := start.(*OpenEnd)
	_, endOpen := end.(*OpenEnd)
	if startOpen && endOpen {
		return iv, &IntervalWarning{Message: "interval has no concrete endpoint; both sides are '..'"}
	}
	return iv, nil
}

// NewBBox builds a BBox from 4 (2D) or 6 (3D) numbers in the grammar's
// documented order: xmin, ymin, [zmin,] xmax, ymax, [zmax].
func NewBBox(pos cqlerr.Position, nums []float64) (*BBox, error) {
	switch len(nums) {
	case 4:
		return &BBox{Node: Node{Pos: pos}, MinX: nums[0], MinY: nums[1], MaxX: nums[2], MaxY: nums[3]}, nil
	case 6:
		minZ, maxZ := nums[2], nums[5]
		return &BBox{
			Node: Node{Pos: pos},
			MinX: nums[0], MinY: nums[1], MinZ: &minZ,
			MaxX: nums[3], MaxY: nums[4], MaxZ: &maxZ,
		}, nil
	default:
		return nil, structErr(pos, "BBOX requires 4 or 6 numbers, got %d", len(nums))
	}
}
