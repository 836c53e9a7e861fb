// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 cql2go Contributors

package cql2text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cql2go/cql2/internal/ast"
	"github.com/cql2go/cql2/internal/cql2text"
)

func mustParse(t *testing.T, text string) *ast.Filter {
	t.Helper()
	f, err := cql2text.Parse(text, 0)
	require.NoError(t, err, "parsing %q", text)
	return f
}

func TestParse_SimpleComparison(t *testing.T) {
	f := mustParse(t, `prop1 = 5`)
	cmp, ok := f.Expr.(*ast.Comparison)
	require.True(t, ok)
	assert.Equal(t, ast.OpEqual, cmp.Op)
	prop, ok := cmp.Left.(*ast.Property)
	require.True(t, ok)
	assert.Equal(t, "prop1", prop.Name)
	num, ok := cmp.Right.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, 5.0, num.Value)
}

func TestParse_NotBetweenPullsUp(t *testing.T) {
	f := mustParse(t, `foo NOT BETWEEN 1 AND 10`)
	not, ok := f.Expr.(*ast.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*ast.Between)
	assert.True(t, ok)
}

func TestParse_NotLikePullsUp(t *testing.T) {
	f := mustParse(t, `"name" NOT LIKE 'foo%'`)
	not, ok := f.Expr.(*ast.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*ast.Like)
	assert.True(t, ok)
}

func TestParse_IsNotNullPullsUp(t *testing.T) {
	f := mustParse(t, `"geom" IS NOT NULL`)
	not, ok := f.Expr.(*ast.Not)
	require.True(t, ok)
	_, ok = not.Arg.(*ast.IsNull)
	assert.True(t, ok)
}

func TestParse_UnaryMinusOnLiteralFoldsSign(t *testing.T) {
	f := mustParse(t, `x = -3.5`)
	cmp := f.Expr.(*ast.Comparison)
	num, ok := cmp.Right.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, -3.5, num.Value)
}

func TestParse_UnaryMinusOnExpressionExpandsToArith(t *testing.T) {
	f := mustParse(t, `(-x + 1) = 0`)
	cmp := f.Expr.(*ast.Comparison)
	add, ok := cmp.Left.(*ast.Arith)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
	mul, ok := add.Left.(*ast.Arith)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)
	neg1, ok := mul.Left.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, -1.0, neg1.Value)
}

func TestParse_AndOrFlattened(t *testing.T) {
	f := mustParse(t, `a = 1 AND b = 2 AND c = 3`)
	and, ok := f.Expr.(*ast.And)
	require.True(t, ok)
	assert.Len(t, and.Args, 3)
}

func TestParse_SpatialPredicate(t *testing.T) {
	f := mustParse(t, `S_INTERSECTS("geom", POINT(1 2))`)
	sp, ok := f.Expr.(*ast.Spatial)
	require.True(t, ok)
	assert.Equal(t, ast.OpSIntersects, sp.Op)
	pt, ok := sp.Right.(*ast.Point)
	require.True(t, ok)
	assert.Equal(t, 1.0, pt.Coord.X)
	assert.Equal(t, 2.0, pt.Coord.Y)
}

func TestParse_MultiPointBareForm(t *testing.T) {
	f := mustParse(t, `S_EQUALS("geom", MULTIPOINT(0 0, 1 1))`)
	sp := f.Expr.(*ast.Spatial)
	mp, ok := sp.Right.(*ast.MultiPoint)
	require.True(t, ok)
	assert.Len(t, mp.Points, 2)
}

func TestParse_MultiPointWrappedForm(t *testing.T) {
	f := mustParse(t, `S_EQUALS("geom", MULTIPOINT((0 0), (1 1)))`)
	sp := f.Expr.(*ast.Spatial)
	mp, ok := sp.Right.(*ast.MultiPoint)
	require.True(t, ok)
	assert.Len(t, mp.Points, 2)
}

func TestParse_Polygon(t *testing.T) {
	f := mustParse(t, `S_WITHIN("geom", POLYGON((0 0, 1 0, 1 1, 0 0)))`)
	sp := f.Expr.(*ast.Spatial)
	poly, ok := sp.Right.(*ast.Polygon)
	require.True(t, ok)
	assert.Len(t, poly.Rings, 1)
	assert.Len(t, poly.Rings[0], 4)
}

func TestParse_BBox(t *testing.T) {
	f := mustParse(t, `S_INTERSECTS("geom", BBOX(-10, -10, 10, 10))`)
	sp := f.Expr.(*ast.Spatial)
	bbox, ok := sp.Right.(*ast.BBox)
	require.True(t, ok)
	assert.False(t, bbox.Is3D())
}

func TestParse_TemporalPredicate(t *testing.T) {
	f := mustParse(t, `T_BEFORE("when", TIMESTAMP('2020-01-01T00:00:00Z'))`)
	tp, ok := f.Expr.(*ast.Temporal)
	require.True(t, ok)
	assert.Equal(t, ast.OpTBefore, tp.Op)
	ts, ok := tp.Right.(*ast.Timestamp)
	require.True(t, ok)
	assert.Equal(t, 2020, ts.Year)
}

func TestParse_Interval(t *testing.T) {
	f := mustParse(t, `T_DURING("when", INTERVAL('2020-01-01', '..'))`)
	tp := f.Expr.(*ast.Temporal)
	iv, ok := tp.Right.(*ast.Interval)
	require.True(t, ok)
	_, ok = iv.Start.(*ast.Date)
	assert.True(t, ok)
	_, ok = iv.End.(*ast.OpenEnd)
	assert.True(t, ok)
}

func TestParse_ArrayPredicate(t *testing.T) {
	f := mustParse(t, `A_CONTAINS("tags", ('a', 'b'))`)
	ap, ok := f.Expr.(*ast.ArrayPredicate)
	require.True(t, ok)
	lit, ok := ap.Right.(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, lit.Items, 2)
}

func TestParse_CaseIAccentI(t *testing.T) {
	f := mustParse(t, `CASEI("name") = ACCENTI('foo')`)
	cmp := f.Expr.(*ast.Comparison)
	_, ok := cmp.Left.(*ast.CaseI)
	assert.True(t, ok)
	_, ok = cmp.Right.(*ast.AccentI)
	assert.True(t, ok)
}

func TestParse_FunctionCall(t *testing.T) {
	f := mustParse(t, `YEAR("when") = 2020`)
	cmp := f.Expr.(*ast.Comparison)
	fn, ok := cmp.Left.(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "YEAR", fn.Name)
	assert.Len(t, fn.Args, 1)
}

func TestParse_DepthExceeded(t *testing.T) {
	text := "TRUE"
	for i := 0; i < 10; i++ {
		text = "NOT (" + text + ")"
	}
	_, err := cql2text.Parse(text, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth")
}

func TestToText_RoundTripsSimpleComparison(t *testing.T) {
	f := mustParse(t, `prop1 = 5`)
	assert.Equal(t, `("prop1" = 5.0)`, cql2text.ToText(f))
}

func TestToText_NotBetweenInline(t *testing.T) {
	f := mustParse(t, `foo NOT BETWEEN 1 AND 10`)
	assert.Equal(t, `"foo" NOT BETWEEN 1.0 AND 10.0`, cql2text.ToText(f))
}

func TestToText_MultiPointAlwaysParenthesized(t *testing.T) {
	f := mustParse(t, `S_EQUALS("geom", MULTIPOINT(0 0, 1 1))`)
	out := cql2text.ToText(f)
	assert.Contains(t, out, "MULTIPOINT((0.0 0.0), (1.0 1.0))")
}

func TestParseThenSerializeThenParse_Stabilizes(t *testing.T) {
	// Text -> AST -> Text is not required to be identity, but a second
	// round trip through the same pipeline must be (spec §8).
	inputs := []string{
		`prop1 = 5`,
		`foo NOT BETWEEN 1 AND 10`,
		`(-x + 1) = 0`,
		`a = 1 AND (b = 2 OR c = 3)`,
		`S_INTERSECTS("geom", POINT(1 2 3))`,
	}
	for _, in := range inputs {
		f1 := mustParse(t, in)
		text1 := cql2text.ToText(f1)
		f2 := mustParse(t, text1)
		text2 := cql2text.ToText(f2)
		assert.Equal(t, text1, text2, "did not stabilize for input %q", in)
	}
}
