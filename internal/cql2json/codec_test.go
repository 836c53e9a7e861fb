// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2json_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cql2json"
	"github.com/cql2go/cql2/internal/cqlerr"
)

func mustDecode(t *testing.T, doc string) *ast.Filter {
	t.Helper()
	f, err := cql2json.Decode([]byte(doc), 0)
	require.NoError(t, err)
	return f
}

func TestDecode_SimpleComparison(t *testing.T) {
	f := mustDecode(t, `{"op":"=","args":[{"property":"prop1"},5.0]}`)
	cmp, ok := f.Expr.(*ast.Comparison)
	require.True(t, ok)
	assert.Equal(t, ast.OpEqual, cmp.Op)
	prop, ok := cmp.Left.(*ast.Property)
	require.True(t, ok)
	assert.Equal(t, "prop1", prop.Name)
	num, ok := cmp.Right.(*ast.Number)
	require.True(t, ok)
	assert.InDelta(t, 5.0, num.Value, 0)
}

func TestDecode_NotBetween(t *testing.T) {
	f := mustDecode(t, `{"op":"not","args":[{"op":"between","args":[{"property":"foo"},1.0,10.0]}]}`)
	not, ok := f.Expr.(*ast.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*ast.Between)
	assert.True(t, ok)
}

func TestDecode_SpatialPredicateIsCaseInsensitiveOpName(t *testing.T) {
	f := mustDecode(t, `{"op":"s_intersects","args":[{"property":"geom"},{"type":"Point","coordinates":[1.0,2.0]}]}`)
	sp, ok := f.Expr.(*ast.Spatial)
	require.True(t, ok)
	assert.Equal(t, ast.OpSIntersects, sp.Op)
}

func TestDecode_IsNullIsCamelCase(t *testing.T) {
	f := mustDecode(t, `{"op":"isNull","args":[{"property":"prop2"}]}`)
	_, ok := f.Expr.(*ast.IsNull)
	assert.True(t, ok)
}

func TestDecode_LikeCaseI(t *testing.T) {
	f := mustDecode(t, `{"op":"like","args":[{"property":"name"},{"op":"casei","args":["abc%"]}]}`)
	like, ok := f.Expr.(*ast.Like)
	require.True(t, ok)
	ci, ok := like.Pattern.(*ast.CaseI)
	require.True(t, ok)
	str, ok := ci.Inner.(*ast.String)
	require.True(t, ok)
	assert.Equal(t, "abc%", str.Value)
}

func TestDecode_UnknownOperatorIsUnknownOperatorError(t *testing.T) {
	_, err := cql2json.Decode([]byte(`{"op":"bogus","args":[1,2]}`), 0)
	require.Error(t, err)
	var unk *cqlerr.UnknownOperator
	assert.ErrorAs(t, err, &unk)
}

func TestDecode_WrongArityIsStructuralError(t *testing.T) {
	_, err := cql2json.Decode([]byte(`{"op":"between","args":[{"property":"foo"},1.0]}`), 0)
	require.Error(t, err)
	var structural *cqlerr.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestDecode_NonBooleanTopLevelIsStructuralError(t *testing.T) {
	_, err := cql2json.Decode([]byte(`5.0`), 0)
	require.Error(t, err)
	var structural *cqlerr.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestDecode_DepthExceeded(t *testing.T) {
	doc := `{"op":"not","args":[{"op":"not","args":[{"op":"not","args":[{"op":"not","args":[true]}]}]}]}`
	_, err := cql2json.Decode([]byte(doc), 2)
	require.Error(t, err)
	var depth *cqlerr.DepthExceeded
	assert.ErrorAs(t, err, &depth)
}

func TestEncodeDecode_RoundTripIsIdentity(t *testing.T) {
	docs := []string{
		`{"op":"=","args":[{"property":"prop1"},5.0]}`,
		`{"op":"and","args":[{"op":"=","args":[{"property":"a"},1.0]},{"op":"isNull","args":[{"property":"b"}]}]}`,
		`{"op":"s_intersects","args":[{"property":"geom"},{"type":"Point","coordinates":[1.0,2.0]}]}`,
		`{"op":"between","args":[{"property":"x"},1.0,10.0]}`,
		`{"op":"in","args":[{"property":"x"},[1.0,2.0,3.0]]}`,
		`{"op":"t_before","args":[{"interval":["2020-01-01T00:00:00Z","2021-01-01T00:00:00Z"]},{"interval":["2020-01-01T00:00:00Z",".."]}]}`,
	}
	for _, doc := range docs {
		doc := doc
		t.Run(doc, func(t *testing.T) {
			f, err := cql2json.Decode([]byte(doc), 0)
			require.NoError(t, err)
			again, err := cql2json.Encode(f)
			require.NoError(t, err)
			assert.JSONEq(t, doc, string(again))
		})
	}
}

func TestDecode_Geometry_Polygon(t *testing.T) {
	doc := `{"op":"s_within","args":[{"property":"geom"},{"type":"Polygon","coordinates":[[[0.0,0.0],[0.0,1.0],[1.0,1.0],[0.0,0.0]]]}]}`
	f := mustDecode(t, doc)
	sp := f.Expr.(*ast.Spatial)
	poly, ok := sp.Right.(*ast.Polygon)
	require.True(t, ok)
	assert.Len(t, poly.Rings[0], 4)
}

func TestDecode_FlattensNestedSameOperator(t *testing.T) {
	doc := `{"op":"or","args":[` +
		`{"op":"or","args":[{"op":"=","args":[{"property":"a"},1.0]},{"op":"=","args":[{"property":"b"},2.0]}]},` +
		`{"op":"=","args":[{"property":"c"},3.0]}` +
		`]}`
	f := mustDecode(t, doc)
	or, ok := f.Expr.(*ast.Or)
	require.True(t, ok)
	assert.Len(t, or.Args, 3)
	for _, arg := range or.Args {
		_, nested := arg.(*ast.Or)
		assert.False(t, nested, "nested Or should have been flattened into the parent")
	}
}

func TestValidateJSON_AcceptsWellFormedPredicate(t *testing.T) {
	err := cql2json.ValidateJSON([]byte(`{"op":"=","args":[{"property":"prop1"},5.0]}`))
	assert.NoError(t, err)
}

func TestValidateJSON_RejectsMissingArgs(t *testing.T) {
	err := cql2json.ValidateJSON([]byte(`{"op":"="}`))
	require.Error(t, err)
	var structural *cqlerr.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestDecode_RejectsSchemaInvalidDocumentBeforeStructuralDecoding(t *testing.T) {
	_, err := cql2json.Decode([]byte(`{"op":"="}`), 0)
	require.Error(t, err)
	var structural *cqlerr.StructuralError
	assert.ErrorAs(t, err, &structural)
}

func TestDecode_BBox(t *testing.T) {
	f := mustDecode(t, `{"op":"s_intersects","args":[{"property":"geom"},{"bbox":[0.0,0.0,1.0,1.0]}]}`)
	sp := f.Expr.(*ast.Spatial)
	bbox, ok := sp.Right.(*ast.BBox)
	require.True(t, ok)
	assert.False(t, bbox.Is3D())
}
