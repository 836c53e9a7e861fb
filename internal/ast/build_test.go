// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cqlerr"
)

func num(v float64) *ast.Number { return &ast.Number{Value: v} }

func TestNewAnd_RequiresTwoOperands(t *testing.T) {
	_, err := ast.NewAnd(cqlerr.Position{}, []ast.BooleanExpression{&ast.Bool{Value: true}})
	require.Error(t, err)
	var structural *cqlerr.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestNewAnd_Flattened(t *testing.T) {
	a, err := ast.NewAnd(cqlerr.Position{}, []ast.BooleanExpression{
		&ast.Bool{Value: true}, &ast.Bool{Value: false}, &ast.Bool{Value: true},
	})
	require.NoError(t, err)
	assert.Len(t, a.Args, 3)
}

func TestNewLineString_RequiresTwoCoords(t *testing.T) {
	_, err := ast.NewLineString(cqlerr.Position{}, []ast.Coord{{X: 0, Y: 0}})
	require.Error(t, err)
	var structural *cqlerr.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestNewPolygon_RequiresFourCoordsPerRing(t *testing.T) {
	ring := []ast.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	_, err := ast.NewPolygon(cqlerr.Position{}, [][]ast.Coord{ring})
	require.Error(t, err)
}

func TestNewPolygon_AcceptsClosedRing(t *testing.T) {
	ring := []ast.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}
	p, err := ast.NewPolygon(cqlerr.Position{}, [][]ast.Coord{ring})
	require.NoError(t, err)
	assert.Len(t, p.Rings, 1)
}

func TestNewGeometryCollection_RejectsNestedCollection(t *testing.T) {
	pt := &ast.Point{Coord: ast.Coord{X: 1, Y: 2}}
	inner, err := ast.NewGeometryCollection(cqlerr.Position{}, []ast.Scalar{pt})
	require.NoError(t, err)

	_, err = ast.NewGeometryCollection(cqlerr.Position{}, []ast.Scalar{inner})
	require.Error(t, err)
}

func TestNewGeometryCollection_RejectsBBox(t *testing.T) {
	bbox, err := ast.NewBBox(cqlerr.Position{}, []float64{0, 0, 1, 1})
	require.NoError(t, err)

	_, err = ast.NewGeometryCollection(cqlerr.Position{}, []ast.Scalar{bbox})
	require.Error(t, err)
}

func TestNewBBox_RejectsBadArity(t *testing.T) {
	_, err := ast.NewBBox(cqlerr.Position{}, []float64{0, 0, 1})
	require.Error(t, err)
}

func TestNewBBox_ThreeD(t *testing.T) {
	b, err := ast.NewBBox(cqlerr.Position{}, []float64{0, 0, 0, 1, 1, 1})
	require.NoError(t, err)
	assert.True(t, b.Is3D())
}

func TestNewInterval_BothOpenEndsWarns(t *testing.T) {
	iv, err := ast.NewInterval(cqlerr.Position{}, &ast.OpenEnd{}, &ast.OpenEnd{})
	require.NotNil(t, iv)
	var warn *ast.IntervalWarning
	require.ErrorAs(t, err, &warn)
}

func TestNewInterval_OneConcreteEndpointIsClean(t *testing.T) {
	iv, err := ast.NewInterval(cqlerr.Position{}, &ast.Date{Year: 2020, Month: 1, Day: 1}, &ast.OpenEnd{})
	require.NoError(t, err)
	assert.NotNil(t, iv)
}

func TestNestedBooleanExpressionIsAlsoScalar(t *testing.T) {
	cmp := &ast.Comparison{Op: ast.OpEqual, Left: &ast.Property{Name: "a"}, Right: num(1)}
	var _ ast.Scalar = cmp
	var _ ast.BooleanExpression = cmp
}
