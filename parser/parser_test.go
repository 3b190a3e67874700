package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/symbols"
)

func mathsTable() *symbols.Table {
	return symbols.NewTable(symbols.Maths, nil)
}

func logicTable() *symbols.Table {
	return symbols.NewTable(symbols.Logic, nil)
}

func TestParseNeverEvaluatesArithmetic(t *testing.T) {
	node, err := Parse("2+3", symbols.Maths, mathsTable())
	require.NoError(t, err)
	assert.True(t, ast.Equal(node, ast.Add{Terms: []ast.Node{ast.NewInteger(2), ast.NewInteger(3)}}))
	assert.False(t, ast.Equal(node, ast.NewInteger(5)))
}

func TestParseImplicitMultiplication(t *testing.T) {
	node, err := Parse("2x", symbols.Maths, mathsTable())
	require.NoError(t, err)
	expect := ast.Mul{Factors: []ast.Node{ast.NewInteger(2), ast.Symbol{Name: "x"}}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseSplitsUnregisteredMultiCharIdentifier(t *testing.T) {
	node, err := Parse("xyz", symbols.Maths, mathsTable())
	require.NoError(t, err)
	expect := ast.Mul{Factors: []ast.Node{
		ast.Symbol{Name: "x"}, ast.Symbol{Name: "y"}, ast.Symbol{Name: "z"},
	}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseRegisteredIdentifierStaysWhole(t *testing.T) {
	table := symbols.NewTable(symbols.Maths, []string{"xyz"})
	node, err := Parse("xyz", symbols.Maths, table)
	require.NoError(t, err)
	assert.True(t, ast.Equal(node, ast.Symbol{Name: "xyz"}))
}

func TestParseTrueFalseStayWholeInMathsMode(t *testing.T) {
	node, err := Parse("true", symbols.Maths, mathsTable())
	require.NoError(t, err)
	assert.True(t, ast.Equal(node, ast.Symbol{Name: "true"}))

	node, err = Parse("false", symbols.Maths, mathsTable())
	require.NoError(t, err)
	assert.True(t, ast.Equal(node, ast.Symbol{Name: "false"}))
}

func TestParseAdjacentParenthesesMultiply(t *testing.T) {
	node, err := Parse("(x+1)(x-2)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	x := ast.Symbol{Name: "x"}
	expect := ast.Mul{Factors: []ast.Node{
		ast.Add{Terms: []ast.Node{x, ast.NewInteger(1)}},
		ast.Sub(x, ast.NewInteger(2)),
	}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseDoesNotSimplifyLogCall(t *testing.T) {
	node, err := Parse("log(x,10)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	x := ast.Symbol{Name: "x"}
	expect := ast.Call{Name: "log", Args: []ast.Node{x, ast.NewInteger(10)}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseLogDefaultsToBaseTen(t *testing.T) {
	node, err := Parse("log(x)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	x := ast.Symbol{Name: "x"}
	expect := ast.Call{Name: "log", Args: []ast.Node{x, ast.NewInteger(10)}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseLogIsNaturalUnderHint(t *testing.T) {
	table := symbols.NewTable(symbols.Maths, nil, symbols.NaturalLogarithm)
	node, err := Parse("log(x)", symbols.Maths, table)
	require.NoError(t, err)
	x := ast.Symbol{Name: "x"}
	expect := ast.Call{Name: "log", Args: []ast.Node{x, ast.Call{Name: "E"}}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseDoesNotSimplifyCosOfNegative(t *testing.T) {
	node, err := Parse("cos(-x)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	x := ast.Symbol{Name: "x"}
	expect := ast.Call{Name: "cos", Args: []ast.Node{ast.Neg(x)}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseFunctionThenExponentThenArgs(t *testing.T) {
	node, err := Parse("sin^2(x)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	x := ast.Symbol{Name: "x"}
	expect := ast.Pow{Base: ast.Call{Name: "sin", Args: []ast.Node{x}}, Exp: ast.NewInteger(2)}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseFactorialTooLargeIsParseError(t *testing.T) {
	_, err := Parse("factorial(51)", symbols.Maths, mathsTable())
	assert.Error(t, err)
}

func TestParseFactorialWithinRangeSucceeds(t *testing.T) {
	node, err := Parse("factorial(5)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	assert.True(t, ast.Equal(node, ast.Call{Name: "factorial", Args: []ast.Node{ast.NewInteger(5)}}))
}

func TestParseRelationAtTopLevel(t *testing.T) {
	node, err := Parse("x==y", symbols.Maths, mathsTable())
	require.NoError(t, err)
	x, y := ast.Symbol{Name: "x"}, ast.Symbol{Name: "y"}
	assert.True(t, ast.Equal(node, ast.Relation{Kind: ast.RelEq, Lhs: x, Rhs: y}))
}

func TestParseNestedRelationIsError(t *testing.T) {
	_, err := Parse("x==y==z", symbols.Maths, mathsTable())
	assert.Error(t, err)
}

func TestParseLogicConnectives(t *testing.T) {
	node, err := Parse("A&B|~C", symbols.Logic, logicTable())
	require.NoError(t, err)
	a, b, c := ast.Symbol{Name: "A"}, ast.Symbol{Name: "B"}, ast.Symbol{Name: "C"}
	expect := ast.Or{Args: []ast.Node{
		ast.And{Args: []ast.Node{a, b}},
		ast.Not{X: c},
	}}
	assert.True(t, ast.Equal(node, expect))
}

func TestParseLogicImpliesCallSyntax(t *testing.T) {
	node, err := Parse("Implies(A,B)", symbols.Logic, logicTable())
	require.NoError(t, err)
	a, b := ast.Symbol{Name: "A"}, ast.Symbol{Name: "B"}
	assert.True(t, ast.Equal(node, ast.Implies{Antecedent: a, Consequent: b}))
}

func TestParseLogicBinaryLiterals(t *testing.T) {
	node, err := Parse("1&0", symbols.Logic, logicTable())
	require.NoError(t, err)
	assert.True(t, ast.Equal(node, ast.And{Args: []ast.Node{
		ast.BoolConst{Value: true}, ast.BoolConst{Value: false},
	}}))
}

func TestParseEmptyInputIsError(t *testing.T) {
	_, err := Parse("", symbols.Maths, mathsTable())
	assert.Error(t, err)
}

func TestParseDerivativeCallIsUninterpreted(t *testing.T) {
	node, err := Parse("Derivative(y,x)", symbols.Maths, mathsTable())
	require.NoError(t, err)
	y, x := ast.Symbol{Name: "y"}, ast.Symbol{Name: "x"}
	assert.True(t, ast.Equal(node, ast.Call{Name: "Derivative", Args: []ast.Node{y, x}}))
}
