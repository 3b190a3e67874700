package simplify

import (
	"math/big"

	"github.com/isaacphysics/equality-checker/ast"
)

var bigOne = big.NewInt(1)
var bigTwo = big.NewInt(2)

func negOne() *big.Int { return big.NewInt(-1) }

// differentiateDerivativeCall expands Derivative(expr, v1, v2, ...) by
// differentiating expr with respect to each variable in turn, left to
// right — the same order ast.Canonicalize's flattening of a nested
// Derivative-of-a-Derivative produces.
func differentiateDerivativeCall(v ast.Call) ast.Node {
	if len(v.Args) < 2 {
		return v
	}
	derivOpts := opts{derivatives: true}
	expr := simplifyMaths(v.Args[0], derivOpts)
	for _, wrtNode := range v.Args[1:] {
		wrt, ok := wrtNode.(ast.Symbol)
		if !ok {
			// Can't differentiate with respect to a non-symbol; leave the
			// remainder uninterpreted rather than guessing.
			return ast.Call{Name: "Derivative", Args: append([]ast.Node{expr}, v.Args[1:]...)}
		}
		expr = ast.Canonicalize(differentiate(expr, wrt.Name))
	}
	return simplifyMaths(expr, derivOpts)
}

// differentiate computes d(expr)/d(wrt) using the sum, product, power and
// chain rules, plus the standard derivatives of the trig/hyperbolic/log
// functions this checker's global function table recognises. A call it
// doesn't know how to differentiate is left wrapped in a fresh Derivative
// node rather than silently guessed at.
func differentiate(expr ast.Node, wrt string) ast.Node {
	switch v := expr.(type) {
	case ast.Integer, ast.Rational, ast.Float:
		return ast.NewInteger(0)
	case ast.Symbol:
		if v.Name == wrt {
			return ast.NewInteger(1)
		}
		return ast.NewInteger(0)
	case ast.Add:
		terms := make([]ast.Node, len(v.Terms))
		for i, t := range v.Terms {
			terms[i] = differentiate(t, wrt)
		}
		return ast.Add{Terms: terms}
	case ast.Mul:
		return differentiateProduct(v.Factors, wrt)
	case ast.Pow:
		return differentiatePow(v, wrt)
	case ast.Call:
		return differentiateCall(v, wrt)
	default:
		return ast.Call{Name: "Derivative", Args: []ast.Node{expr, ast.Symbol{Name: wrt}}}
	}
}

// differentiateProduct applies the generalized product rule to an n-ary
// Mul: d(f1*f2*...*fn) = sum_i (d(fi) * product of the rest).
func differentiateProduct(factors []ast.Node, wrt string) ast.Node {
	if len(factors) == 1 {
		return differentiate(factors[0], wrt)
	}
	var terms []ast.Node
	for i := range factors {
		rest := make([]ast.Node, 0, len(factors)-1)
		for j, f := range factors {
			if j != i {
				rest = append(rest, f)
			}
		}
		dfi := differentiate(factors[i], wrt)
		term := ast.Node(dfi)
		if len(rest) > 0 {
			term = ast.Mul{Factors: append([]ast.Node{dfi}, rest...)}
		}
		terms = append(terms, term)
	}
	return ast.Add{Terms: terms}
}

// differentiatePow applies the power rule d(u**n) = n*u**(n-1)*u' for a
// constant exponent, and falls back to logarithmic differentiation's
// general form u**v * (v' * ln(u) + v * u'/u) when the exponent also
// depends on wrt.
func differentiatePow(p ast.Pow, wrt string) ast.Node {
	du := differentiate(p.Base, wrt)
	dv := differentiate(p.Exp, wrt)

	if isZeroLiteral(dv) {
		// n is constant in wrt: n * u**(n-1) * u'
		nMinus1 := ast.Sub(p.Exp, ast.NewInteger(1))
		return ast.Mul{Factors: []ast.Node{p.Exp, ast.Pow{Base: p.Base, Exp: nMinus1}, du}}
	}

	lnU := ast.Call{Name: "log", Args: []ast.Node{p.Base, ast.Call{Name: "E"}}}
	inner := ast.Add{Terms: []ast.Node{
		ast.Mul{Factors: []ast.Node{dv, lnU}},
		ast.Mul{Factors: []ast.Node{p.Exp, du, ast.Pow{Base: p.Base, Exp: ast.NewInteger(-1)}}},
	}}
	return ast.Mul{Factors: []ast.Node{p, inner}}
}

func isZeroLiteral(n ast.Node) bool {
	i, ok := n.(ast.Integer)
	return ok && i.Value.Sign() == 0
}

// outerDerivative maps a single-argument function name to the derivative
// of its outer form with respect to its argument u, i.e. d(f(u))/du.
// differentiateCall multiplies the result by du/dwrt via the chain rule.
func outerDerivative(name string, u ast.Node) (ast.Node, bool) {
	switch name {
	case "sin":
		return ast.Call{Name: "cos", Args: []ast.Node{u}}, true
	case "cos":
		return ast.Neg(ast.Call{Name: "sin", Args: []ast.Node{u}}), true
	case "tan":
		return ast.Pow{Base: ast.Call{Name: "cos", Args: []ast.Node{u}}, Exp: ast.NewInteger(-2)}, true
	case "exp":
		return ast.Call{Name: "exp", Args: []ast.Node{u}}, true
	case "ln":
		return ast.Pow{Base: u, Exp: ast.NewInteger(-1)}, true
	case "sqrt":
		half := ast.NewRational(bigOne, bigTwo)
		return ast.Mul{Factors: []ast.Node{half, ast.Pow{Base: u, Exp: ast.NewRational(negOne(), bigTwo)}}}, true
	case "sinh":
		return ast.Call{Name: "cosh", Args: []ast.Node{u}}, true
	case "cosh":
		return ast.Call{Name: "sinh", Args: []ast.Node{u}}, true
	case "tanh":
		return ast.Pow{Base: ast.Call{Name: "cosh", Args: []ast.Node{u}}, Exp: ast.NewInteger(-2)}, true
	default:
		return nil, false
	}
}

func differentiateCall(c ast.Call, wrt string) ast.Node {
	if c.Name == "log" && len(c.Args) == 2 {
		return differentiateLog(c.Args[0], c.Args[1], wrt)
	}
	if len(c.Args) == 1 {
		if outer, ok := outerDerivative(c.Name, c.Args[0]); ok {
			du := differentiate(c.Args[0], wrt)
			return ast.Mul{Factors: []ast.Node{outer, du}}
		}
	}
	// Unrecognised function: leave it as an uninterpreted derivative of
	// the whole call rather than guessing a rule that doesn't apply.
	return ast.Call{Name: "Derivative", Args: []ast.Node{c, ast.Symbol{Name: wrt}}}
}

// isNaturalBase reports whether n is the zero-argument "E" call this
// package uses to represent Euler's number as a log base, as opposed to
// a free variable that happens to be named "e".
func isNaturalBase(n ast.Node) bool {
	c, ok := n.(ast.Call)
	return ok && c.Name == "E" && len(c.Args) == 0
}

// differentiateLog handles the two-argument log(u, base) call that
// log(x) with an implicit base desugars to. A constant base collapses to
// u'/(u*ln(base)); a base that itself depends on wrt falls back to the
// quotient rule on log(u,base) = ln(u)/ln(base).
func differentiateLog(u, base ast.Node, wrt string) ast.Node {
	du := differentiate(u, wrt)
	if isNaturalBase(base) {
		return ast.Mul{Factors: []ast.Node{du, ast.Pow{Base: u, Exp: ast.NewInteger(-1)}}}
	}

	lnU := ast.Call{Name: "log", Args: []ast.Node{u, ast.Call{Name: "E"}}}
	lnBase := ast.Call{Name: "log", Args: []ast.Node{base, ast.Call{Name: "E"}}}
	db := differentiate(base, wrt)
	if isZeroLiteral(db) {
		return ast.Mul{Factors: []ast.Node{du, ast.Pow{
			Base: ast.Mul{Factors: []ast.Node{u, lnBase}}, Exp: ast.NewInteger(-1),
		}}}
	}

	numerator := ast.Add{Terms: []ast.Node{
		ast.Mul{Factors: []ast.Node{du, ast.Pow{Base: u, Exp: ast.NewInteger(-1)}, lnBase}},
		ast.Neg(ast.Mul{Factors: []ast.Node{lnU, db, ast.Pow{Base: base, Exp: ast.NewInteger(-1)}}}),
	}}
	denom := ast.Pow{Base: lnBase, Exp: ast.NewInteger(2)}
	return ast.Mul{Factors: []ast.Node{numerator, ast.Pow{Base: denom, Exp: ast.NewInteger(-1)}}}
}
