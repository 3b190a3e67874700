package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/checkerr"
)

func TestEqualAcceptsIdenticalPolynomials(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	target := ast.Pow{Base: ast.Add{Terms: []ast.Node{x, ast.NewInteger(1)}}, Exp: ast.NewInteger(2)}
	test := ast.Add{Terms: []ast.Node{
		ast.Pow{Base: x, Exp: ast.NewInteger(2)},
		ast.Mul{Factors: []ast.Node{ast.NewInteger(2), x}},
		ast.NewInteger(1),
	}}
	ok, err := Equal(target, test)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEqualRejectsDifferentPolynomials(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	target := ast.Pow{Base: x, Exp: ast.NewInteger(2)}
	test := ast.Mul{Factors: []ast.Node{ast.NewInteger(2), x}}
	ok, err := Equal(target, test)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEqualAcceptsTrigIdentity(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	target := ast.NewInteger(1)
	test := ast.Add{Terms: []ast.Node{
		ast.Pow{Base: ast.Call{Name: "sin", Args: []ast.Node{x}}, Exp: ast.NewInteger(2)},
		ast.Pow{Base: ast.Call{Name: "cos", Args: []ast.Node{x}}, Exp: ast.NewInteger(2)},
	}}
	ok, err := Equal(target, test)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEqualRejectsWhenTestMissingTargetSymbol(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	y := ast.Symbol{Name: "y"}
	target := ast.Add{Terms: []ast.Node{x, y}}
	test := x
	ok, err := Equal(target, test)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEqualToleratesExtraTestSymbol(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	y := ast.Symbol{Name: "y"}
	target := x
	ratio := ast.Mul{Factors: []ast.Node{y, ast.Pow{Base: y, Exp: ast.NewInteger(-1)}}}
	test := ast.Mul{Factors: []ast.Node{ratio, x}}
	ok, err := Equal(target, test)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEqualDetectsDomainErrorWhenBothSidesNaNEverywhere(t *testing.T) {
	target := ast.Call{Name: "frobnicate", Args: []ast.Node{ast.NewInteger(1)}}
	test := ast.Call{Name: "frobnicate", Args: []ast.Node{ast.NewInteger(2)}}
	_, err := Equal(target, test)
	require.Error(t, err)
	ce, ok := checkerr.As(err)
	require.True(t, ok)
	assert.Equal(t, checkerr.KindNumericDomainError, ce.Kind)
}

func TestEqualFallsBackToComplexPlane(t *testing.T) {
	x := ast.Symbol{Name: "x"}
	lnCall := func(arg ast.Node) ast.Node {
		return ast.Call{Name: "log", Args: []ast.Node{arg, ast.Call{Name: "E"}}}
	}
	target := lnCall(ast.Sub(x, ast.NewInteger(1)))
	test := lnCall(ast.Sub(x, ast.NewInteger(1)))
	ok, err := Equal(target, test)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFreeSymbolsIsSortedAndDeduplicated(t *testing.T) {
	x, y := ast.Symbol{Name: "x"}, ast.Symbol{Name: "y"}
	n := ast.Add{Terms: []ast.Node{y, x, y}}
	assert.Equal(t, []string{"x", "y"}, FreeSymbols(n))
}
