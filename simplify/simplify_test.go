package simplify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isaacphysics/equality-checker/ast"
)

func TestMathsFoldsConstants(t *testing.T) {
	sum := ast.Add{Terms: []ast.Node{ast.NewInteger(2), ast.NewInteger(3)}}
	assert.True(t, ast.Equal(Maths(sum, false), ast.NewInteger(5)))
}

func TestMathsSqrtOfSquareIsX(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	n := ast.Call{Name: "sqrt", Args: []ast.Node{ast.Pow{Base: x, Exp: ast.NewInteger(2)}}}
	assert.True(t, ast.Equal(Maths(n, false), x))
}

func TestMathsSquareOfSqrtIsX(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	n := ast.Pow{Base: ast.Call{Name: "sqrt", Args: []ast.Node{x}}, Exp: ast.NewInteger(2)}
	assert.True(t, ast.Equal(Maths(n, false), x))
}

func TestMathsCombinesLogSum(t *testing.T) {
	a := ast.Symbol{Name: "a"}
	b := ast.Symbol{Name: "b"}
	sum := ast.Add{Terms: []ast.Node{
		ast.Call{Name: "ln", Args: []ast.Node{a}},
		ast.Call{Name: "ln", Args: []ast.Node{b}},
	}}
	combined := ast.Call{Name: "ln", Args: []ast.Node{ast.Mul{Factors: []ast.Node{a, b}}}}
	assert.True(t, ast.Equal(Maths(sum, false), Maths(combined, false)))
}

func TestMathsCombinesSameBaseLogSum(t *testing.T) {
	a := ast.Symbol{Name: "a"}
	b := ast.Symbol{Name: "b"}
	ten := ast.NewInteger(10)
	sum := ast.Add{Terms: []ast.Node{
		ast.Call{Name: "log", Args: []ast.Node{a, ten}},
		ast.Call{Name: "log", Args: []ast.Node{b, ten}},
	}}
	combined := ast.Call{Name: "log", Args: []ast.Node{ast.Mul{Factors: []ast.Node{a, b}}, ten}}
	assert.True(t, ast.Equal(Maths(sum, false), Maths(combined, false)))
}

func TestMathsCombinesRepeatedPowerBase(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	mul := ast.Mul{Factors: []ast.Node{
		ast.Pow{Base: x, Exp: ast.NewInteger(2)},
		ast.Pow{Base: x, Exp: ast.NewInteger(3)},
	}}
	expect := ast.Pow{Base: x, Exp: ast.NewInteger(5)}
	assert.True(t, ast.Equal(Maths(mul, false), Maths(expect, false)))
}

func TestMathsDerivativeOfPowerRule(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	deriv := ast.Call{Name: "Derivative", Args: []ast.Node{
		ast.Pow{Base: x, Exp: ast.NewInteger(2)}, x,
	}}
	expect := ast.Mul{Factors: []ast.Node{ast.NewInteger(2), x}}
	assert.True(t, ast.Equal(Maths(deriv, true), Maths(expect, true)))
}

func TestMathsSecondDerivativeOfSquareIsConstant(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	deriv := ast.Call{Name: "Derivative", Args: []ast.Node{
		ast.Pow{Base: x, Exp: ast.NewInteger(2)}, x, x,
	}}
	assert.True(t, ast.Equal(Maths(deriv, true), ast.NewInteger(2)))
}

func TestMathsDerivativeOfSine(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	deriv := ast.Call{Name: "Derivative", Args: []ast.Node{
		ast.Call{Name: "sin", Args: []ast.Node{x}}, x,
	}}
	expect := ast.Call{Name: "cos", Args: []ast.Node{x}}
	assert.True(t, ast.Equal(Maths(deriv, true), Maths(expect, true)))
}

func TestMathsDerivativeIsOpaqueByDefault(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	deriv := ast.Call{Name: "Derivative", Args: []ast.Node{
		ast.Pow{Base: x, Exp: ast.NewInteger(2)}, x,
	}}
	expect := ast.Mul{Factors: []ast.Node{ast.NewInteger(2), x}}
	assert.True(t, ast.Equal(Maths(deriv, false), deriv))
	assert.False(t, ast.Equal(Maths(deriv, false), Maths(expect, false)))
}

func TestMathsTwoDistinctDerivativeCallsStayUnequalByDefault(t *testing.T) {
	x, y := ast.Symbol{Name: "x"}, ast.Symbol{Name: "y"}
	derivX := ast.Call{Name: "Derivative", Args: []ast.Node{x, x}}
	derivY := ast.Call{Name: "Derivative", Args: []ast.Node{y, y}}
	assert.False(t, ast.Equal(Maths(derivX, false), Maths(derivY, false)))
}

func TestLogicEqualDeMorgan(t *testing.T) {
	a := ast.Symbol{Name: "A"}
	b := ast.Symbol{Name: "B"}
	lhs := ast.Not{X: ast.And{Args: []ast.Node{a, b}}}
	rhs := ast.Or{Args: []ast.Node{ast.Not{X: a}, ast.Not{X: b}}}
	assert.True(t, LogicEqual(lhs, rhs))
}

func TestLogicEqualDoubleNegation(t *testing.T) {
	a := ast.Symbol{Name: "A"}
	assert.True(t, LogicEqual(ast.Not{X: ast.Not{X: a}}, a))
}

func TestLogicEqualDistributivity(t *testing.T) {
	a := ast.Symbol{Name: "A"}
	b := ast.Symbol{Name: "B"}
	c := ast.Symbol{Name: "C"}
	lhs := ast.And{Args: []ast.Node{a, ast.Or{Args: []ast.Node{b, c}}}}
	rhs := ast.Or{Args: []ast.Node{
		ast.And{Args: []ast.Node{a, b}},
		ast.And{Args: []ast.Node{a, c}},
	}}
	assert.True(t, LogicEqual(lhs, rhs))
}

func TestLogicEqualImpliesRewrite(t *testing.T) {
	a := ast.Symbol{Name: "A"}
	b := ast.Symbol{Name: "B"}
	implies := ast.Implies{Antecedent: a, Consequent: b}
	rewritten := ast.Or{Args: []ast.Node{ast.Not{X: a}, b}}
	assert.True(t, LogicEqual(implies, rewritten))
}

func TestLogicEqualDetectsInequivalentFormulas(t *testing.T) {
	a := ast.Symbol{Name: "A"}
	b := ast.Symbol{Name: "B"}
	assert.False(t, LogicEqual(ast.And{Args: []ast.Node{a, b}}, ast.Or{Args: []ast.Node{a, b}}))
}
