package eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/internal/value"
)

func testEvaluator() *Evaluator {
	return New(time.Date(2026, time.July, 29, 12, 30, 0, 0, time.UTC))
}

func intLit(v int64) *ast.IntLiteral { return &ast.IntLiteral{Value: v} }

func TestDivisionTruncatesTowardZeroIgnoringDivisorSign(t *testing.T) {
	e := testEvaluator()
	cases := []struct {
		left, right, want int64
	}{
		{7, 2, 3},
		{-7, 2, -3},
		{7, -2, 3},
		{-7, -2, -3},
	}
	for _, c := range cases {
		n := &ast.IntBinaryOp{Op: "/", Left: intLit(c.left), Right: intLit(c.right)}
		got, err := e.evalInt(n)
		require.NoError(t, err)
		assert.Equalf(t, c.want, got, "%d / %d", c.left, c.right)
	}
}

func TestModuloCopiesDividendSignIgnoringDivisorSign(t *testing.T) {
	e := testEvaluator()
	cases := []struct {
		left, right, want int64
	}{
		{7, 3, 1},
		{-7, 3, -1},
		{7, -3, 1},
		{-7, -3, -1},
	}
	for _, c := range cases {
		n := &ast.IntBinaryOp{Op: "%", Left: intLit(c.left), Right: intLit(c.right)}
		got, err := e.evalInt(n)
		require.NoError(t, err)
		assert.Equalf(t, c.want, got, "%d %% %d", c.left, c.right)
	}
}

func TestNegativeShiftCountsYieldZero(t *testing.T) {
	e := testEvaluator()
	for _, op := range []string{"<<", ">>"} {
		n := &ast.IntBinaryOp{Op: op, Left: intLit(8), Right: intLit(-1)}
		got, err := e.evalInt(n)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got)
	}
}

func TestBoolAndOrReturnOperandNotCoercedBoolean(t *testing.T) {
	e := testEvaluator()

	n := &ast.IntBinaryOp{Op: "&&", Left: intLit(5), Right: intLit(9)}
	got, err := e.evalInt(n)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got, "&& with truthy left returns the right operand's raw value")

	n = &ast.IntBinaryOp{Op: "&&", Left: intLit(0), Right: intLit(9)}
	got, err = e.evalInt(n)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got, "&& short-circuits to the falsy left operand")

	n = &ast.IntBinaryOp{Op: "||", Left: intLit(5), Right: intLit(9)}
	got, err = e.evalInt(n)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got, "|| short-circuits to the truthy left operand")
}

func TestBoolAndOrShortCircuitSkipsEvaluatingRightSide(t *testing.T) {
	e := testEvaluator()
	poison := &ast.LabelSubscript{Name: "doesNotExist"}

	n := &ast.IntBinaryOp{Op: "&&", Left: intLit(0), Right: poison}
	_, err := e.evalInt(n)
	require.NoError(t, err, "right side must not be evaluated when left is falsy")

	n = &ast.IntBinaryOp{Op: "||", Left: intLit(1), Right: poison}
	_, err = e.evalInt(n)
	require.NoError(t, err, "right side must not be evaluated when left is truthy")
}

func TestUnknownSymbolIsAnEvalError(t *testing.T) {
	e := testEvaluator()
	_, err := e.Eval(&ast.Symbol{Name: "nope"})
	require.Error(t, err)
}

func TestLabelSubscriptArithmetic(t *testing.T) {
	e := testEvaluator()
	e.Symbols.Set("items", value.Array{value.Int(10), value.Int(20), value.Int(30)})

	n := &ast.LabelSubscript{Name: "items", Subscripts: []ast.IntExpression{intLit(2)}}
	got, err := e.evalInt(n)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got)
}

func TestLabelSubscriptTooFewReportsError(t *testing.T) {
	e := testEvaluator()
	e.Symbols.Set("items", value.Array{value.Array{value.Int(1), value.Int(2)}})

	n := &ast.LabelSubscript{Name: "items", Subscripts: []ast.IntExpression{intLit(1)}}
	_, err := e.evalInt(n)
	require.Error(t, err)
}

func TestBitFieldSignExtension(t *testing.T) {
	e := testEvaluator()
	e.CurrentResource = &ResourceState{Data: []byte{0xFF, 0x00}}

	// 8-bit field starting at bit 0 of a 0xFF byte is -1 once sign-extended.
	got, err := e.evalBitField(0, 0, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), got)
}

func TestWeekdayConversion(t *testing.T) {
	e := New(time.Date(2026, time.July, 29, 0, 0, 0, 0, time.UTC)) // a Wednesday
	n := &ast.IntFunction{Kind: "weekday"}
	got, err := e.evalIntFunction(n)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got) // Sunday=1 ... Wednesday=4
}

func TestStringConcat(t *testing.T) {
	e := testEvaluator()
	n := &ast.StringConcat{Values: []ast.StringExpression{
		&ast.StringLiteral{Value: []byte("hello ")},
		&ast.StringLiteral{Value: []byte("world")},
	}}
	got, err := e.evalString(n)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got))
}

func TestShellHookUnimplementedByDefault(t *testing.T) {
	e := testEvaluator()
	n := &ast.StringFunction{Kind: "shell", Args: []ast.ResourceValue{&ast.StringLiteral{Value: []byte("PATH")}}}
	_, err := e.evalStringFunction(n)
	require.Error(t, err)
}

func TestDefaultFormat(t *testing.T) {
	got, err := evalFormatDefault([]byte("n=%d s=%s%%"), []interface{}{int64(3), []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "n=3 s=x%", string(got))
}

func TestDateIsLocaleIndependentISO8601(t *testing.T) {
	e := testEvaluator()
	n := &ast.StringFunction{Kind: "date"}
	got, err := e.evalStringFunction(n)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-29", string(got))
}

func TestResolveAttributesORsNamedKeywords(t *testing.T) {
	e := testEvaluator()
	spec := ast.ResourceSpec{Attributes: []string{"preload", "locked", "unchanged"}}
	got, err := e.ResolveAttributes(spec)
	require.NoError(t, err)
	assert.Equal(t, int64(0x04|0x10), got)
}

func TestResolveAttributesEvaluatesExplicitExpression(t *testing.T) {
	e := testEvaluator()
	spec := ast.ResourceSpec{AttributesExpr: intLit(7)}
	got, err := e.ResolveAttributes(spec)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
}
