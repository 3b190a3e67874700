// Package numeric implements the last-resort equivalence tier: evaluating
// both trees at random sample points and comparing the results within a
// scale-aware tolerance. It is reached only when the exact and symbolic
// tiers both fail to decide (ast package and simplify package
// respectively).
package numeric

import (
	"math"
	"math/big"
	"math/cmplx"

	"github.com/isaacphysics/equality-checker/ast"
)

func intToFloat(i *big.Int) float64 {
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

// evalReal evaluates n at the given real-valued assignment. ok is false if
// the tree references a call this evaluator does not know, or an
// assignment is missing a symbol's value — both are caller bugs, not
// runtime domain errors (those show up as NaN/Inf in the returned float,
// handled by the decision rule instead).
func evalReal(n ast.Node, env map[string]float64) (float64, bool) {
	switch v := n.(type) {
	case ast.Integer:
		return intToFloat(v.Value), true
	case ast.Rational:
		return intToFloat(v.Num) / intToFloat(v.Den), true
	case ast.Float:
		return v.Value, true
	case ast.Symbol:
		f, ok := env[v.Name]
		return f, ok
	case ast.BoolConst:
		if v.Value {
			return 1, true
		}
		return 0, true
	case ast.Add:
		sum := 0.0
		for _, t := range v.Terms {
			f, ok := evalReal(t, env)
			if !ok {
				return 0, false
			}
			sum += f
		}
		return sum, true
	case ast.Mul:
		prod := 1.0
		for _, f := range v.Factors {
			x, ok := evalReal(f, env)
			if !ok {
				return 0, false
			}
			prod *= x
		}
		return prod, true
	case ast.Pow:
		base, ok := evalReal(v.Base, env)
		if !ok {
			return 0, false
		}
		exp, ok := evalReal(v.Exp, env)
		if !ok {
			return 0, false
		}
		return math.Pow(base, exp), true
	case ast.Call:
		return evalRealCall(v, env)
	case ast.Relation:
		lhs, ok := evalReal(v.Lhs, env)
		if !ok {
			return 0, false
		}
		rhs, ok := evalReal(v.Rhs, env)
		if !ok {
			return 0, false
		}
		return relationValue(v.Kind, lhs, rhs), true
	case ast.Not:
		x, ok := evalReal(v.X, env)
		if !ok {
			return 0, false
		}
		if x == 0 {
			return 1, true
		}
		return 0, true
	case ast.And:
		return evalRealLogic(v.Args, env, true)
	case ast.Or:
		return evalRealLogic(v.Args, env, false)
	default:
		return 0, false
	}
}

func evalRealLogic(args []ast.Node, env map[string]float64, and bool) (float64, bool) {
	result := and
	for _, a := range args {
		x, ok := evalReal(a, env)
		if !ok {
			return 0, false
		}
		truthy := x != 0
		if and {
			result = result && truthy
		} else {
			result = result || truthy
		}
	}
	if result {
		return 1, true
	}
	return 0, true
}

func relationValue(kind ast.RelKind, lhs, rhs float64) float64 {
	diff := lhs - rhs
	var hold bool
	switch kind {
	case ast.RelEq:
		hold = diff == 0
	case ast.RelLt:
		hold = diff < 0
	case ast.RelLe:
		hold = diff <= 0
	case ast.RelGt:
		hold = diff > 0
	case ast.RelGe:
		hold = diff >= 0
	}
	if hold {
		return 1
	}
	return 0
}

// evalRealCall evaluates a named function call over real arguments,
// including the csc/sec/cot/acsc/asec/acot family and the reciprocal
// hyperbolic functions the standard library doesn't supply directly — each
// defined via an identity (csc(x) = 1/sin(x), acsc(x) = asin(1/x), ...).
// asinh/acosh/atanh come straight from math.Asinh/Acosh/Atanh.
func evalRealCall(c ast.Call, env map[string]float64) (float64, bool) {
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		f, ok := evalReal(a, env)
		if !ok {
			return 0, false
		}
		args[i] = f
	}
	switch c.Name {
	case "E":
		return math.E, true
	}
	if len(args) == 1 {
		if f, ok := realUnary(c.Name, args[0]); ok {
			return f, true
		}
	}
	if c.Name == "log" && len(args) == 2 {
		return math.Log(args[0]) / math.Log(args[1]), true
	}
	if c.Name == "factorial" && len(args) == 1 {
		return factorial(args[0]), true
	}
	return 0, false
}

func realUnary(name string, x float64) (float64, bool) {
	switch name {
	case "sin", "Sin":
		return math.Sin(x), true
	case "cos", "Cos":
		return math.Cos(x), true
	case "tan", "Tan":
		return math.Tan(x), true
	case "cosec", "Csc":
		return 1 / math.Sin(x), true
	case "sec", "Sec":
		return 1 / math.Cos(x), true
	case "cot", "Cot":
		return math.Cos(x) / math.Sin(x), true
	case "arcsin", "asin", "ArcSin":
		return math.Asin(x), true
	case "arccos", "acos", "ArcCos":
		return math.Acos(x), true
	case "arctan", "atan", "ArcTan":
		return math.Atan(x), true
	case "arccosec", "acsc", "ArcCsc":
		return math.Asin(1 / x), true
	case "arcsec", "asec", "ArcSec":
		return math.Acos(1 / x), true
	case "arccot", "acot", "ArcCot":
		return math.Atan(1 / x), true
	case "sinh":
		return math.Sinh(x), true
	case "cosh":
		return math.Cosh(x), true
	case "tanh":
		return math.Tanh(x), true
	case "cosech":
		return 1 / math.Sinh(x), true
	case "sech":
		return 1 / math.Cosh(x), true
	case "coth":
		return math.Cosh(x) / math.Sinh(x), true
	case "arcsinh", "asinh", "arsinh":
		return math.Asinh(x), true
	case "arccosh", "acosh", "arcosh":
		return math.Acosh(x), true
	case "arctanh", "atanh", "artanh":
		return math.Atanh(x), true
	case "arccosech", "acsch", "arcsch":
		return math.Asinh(1 / x), true
	case "arcsech", "asech", "arsech":
		return math.Acosh(1 / x), true
	case "arccoth", "acoth", "arcoth":
		return math.Atanh(1 / x), true
	case "exp", "Exp":
		return math.Exp(x), true
	case "ln":
		return math.Log(x), true
	case "sqrt", "Sqrt":
		return math.Sqrt(x), true
	case "abs", "Abs":
		return math.Abs(x), true
	default:
		return 0, false
	}
}

func factorial(x float64) float64 {
	n := int(math.Round(x))
	if n < 0 {
		return math.NaN()
	}
	result := 1.0
	for i := 2; i <= n; i++ {
		result *= float64(i)
	}
	return result
}

// evalComplex is evalReal's fallback for when real sampling produces NaN:
// complex-plane branch definitions of the function primitives above, used
// so an expression undefined on part of [0,1) on the real line (log(x-1))
// still has a chance to compare equal. factorial, relations and boolean
// connectives have no complex form here, so a tree containing one
// evaluates to NaN on this pass.
func evalComplex(n ast.Node, env map[string]complex128) (complex128, bool) {
	switch v := n.(type) {
	case ast.Integer:
		return complex(intToFloat(v.Value), 0), true
	case ast.Rational:
		return complex(intToFloat(v.Num)/intToFloat(v.Den), 0), true
	case ast.Float:
		return complex(v.Value, 0), true
	case ast.Symbol:
		c, ok := env[v.Name]
		return c, ok
	case ast.BoolConst:
		if v.Value {
			return 1, true
		}
		return 0, true
	case ast.Add:
		sum := complex128(0)
		for _, t := range v.Terms {
			c, ok := evalComplex(t, env)
			if !ok {
				return 0, false
			}
			sum += c
		}
		return sum, true
	case ast.Mul:
		prod := complex128(1)
		for _, f := range v.Factors {
			c, ok := evalComplex(f, env)
			if !ok {
				return 0, false
			}
			prod *= c
		}
		return prod, true
	case ast.Pow:
		base, ok := evalComplex(v.Base, env)
		if !ok {
			return 0, false
		}
		exp, ok := evalComplex(v.Exp, env)
		if !ok {
			return 0, false
		}
		return cmplx.Pow(base, exp), true
	case ast.Call:
		return evalComplexCall(v, env)
	default:
		return 0, false
	}
}

func evalComplexCall(c ast.Call, env map[string]complex128) (complex128, bool) {
	args := make([]complex128, len(c.Args))
	for i, a := range c.Args {
		z, ok := evalComplex(a, env)
		if !ok {
			return 0, false
		}
		args[i] = z
	}
	if c.Name == "E" {
		return complex(math.E, 0), true
	}
	if len(args) == 1 {
		if z, ok := complexUnary(c.Name, args[0]); ok {
			return z, true
		}
	}
	if c.Name == "log" && len(args) == 2 {
		return cmplx.Log(args[0]) / cmplx.Log(args[1]), true
	}
	return 0, false
}

func complexUnary(name string, z complex128) (complex128, bool) {
	switch name {
	case "sin", "Sin":
		return cmplx.Sin(z), true
	case "cos", "Cos":
		return cmplx.Cos(z), true
	case "tan", "Tan":
		return cmplx.Tan(z), true
	case "cosec", "Csc":
		return 1 / cmplx.Sin(z), true
	case "sec", "Sec":
		return 1 / cmplx.Cos(z), true
	case "cot", "Cot":
		return cmplx.Cos(z) / cmplx.Sin(z), true
	case "arcsin", "asin", "ArcSin":
		return cmplx.Asin(z), true
	case "arccos", "acos", "ArcCos":
		return cmplx.Acos(z), true
	case "arctan", "atan", "ArcTan":
		return cmplx.Atan(z), true
	case "arccosec", "acsc", "ArcCsc":
		return cmplx.Asin(1 / z), true
	case "arcsec", "asec", "ArcSec":
		return cmplx.Acos(1 / z), true
	case "arccot", "acot", "ArcCot":
		return cmplx.Atan(1 / z), true
	case "sinh":
		return cmplx.Sinh(z), true
	case "cosh":
		return cmplx.Cosh(z), true
	case "tanh":
		return cmplx.Tanh(z), true
	case "cosech":
		return 1 / cmplx.Sinh(z), true
	case "sech":
		return 1 / cmplx.Cosh(z), true
	case "coth":
		return cmplx.Cosh(z) / cmplx.Sinh(z), true
	case "arcsinh", "asinh", "arsinh":
		return cmplx.Asinh(z), true
	case "arccosh", "acosh", "arcosh":
		return cmplx.Acosh(z), true
	case "arctanh", "atanh", "artanh":
		return cmplx.Atanh(z), true
	case "arccosech", "acsch", "arcsch":
		return cmplx.Asinh(1 / z), true
	case "arcsech", "asech", "arsech":
		return cmplx.Acosh(1 / z), true
	case "arccoth", "acoth", "arcoth":
		return cmplx.Atanh(1 / z), true
	case "exp", "Exp":
		return cmplx.Exp(z), true
	case "ln":
		return cmplx.Log(z), true
	case "sqrt", "Sqrt":
		return cmplx.Sqrt(z), true
	case "abs", "Abs":
		return complex(cmplx.Abs(z), 0), true
	default:
		return 0, false
	}
}
