package simplify

import (
	"math/big"

	"github.com/isaacphysics/equality-checker/ast"
)

// opts carries the per-call switches simplifyMaths threads through its
// recursion, so the decision never depends on process-global state.
type opts struct {
	derivatives bool
}

func simplifyMaths(n ast.Node, o opts) ast.Node {
	switch v := n.(type) {
	case ast.Add:
		return simplifyAdd(v, o)
	case ast.Mul:
		return simplifyMul(v, o)
	case ast.Pow:
		return simplifyPow(v, o)
	case ast.Relation:
		return ast.Relation{Kind: v.Kind, Lhs: simplifyMaths(v.Lhs, o), Rhs: simplifyMaths(v.Rhs, o)}
	case ast.Not:
		return ast.Not{X: simplifyMaths(v.X, o)}
	case ast.Call:
		return simplifyCall(v, o)
	default:
		return n
	}
}

func simplifyChildren(nodes []ast.Node, o opts) []ast.Node {
	out := make([]ast.Node, len(nodes))
	for i, c := range nodes {
		out[i] = simplifyMaths(c, o)
	}
	return out
}

// simplifyAdd folds constant terms together and collapses a run of
// same-base logarithm calls into the log of their product: ln(a) + ln(b)
// = ln(a*b), and log(a, 10) + log(b, 10) = log(a*b, 10) — but log(a, 10)
// + log(b, 2) is left alone, since the bases differ.
func simplifyAdd(v ast.Add, o opts) ast.Node {
	terms := simplifyChildren(v.Terms, o)

	var constSum *big.Rat
	var lnArgs []ast.Node
	type logGroup struct {
		base ast.Node
		args []ast.Node
	}
	var logGroups []logGroup
	var rest []ast.Node
	for _, t := range terms {
		if r, ok := rationalValue(t); ok {
			if constSum == nil {
				constSum = new(big.Rat)
			}
			constSum.Add(constSum, r)
			continue
		}
		if c, ok := t.(ast.Call); ok && c.Name == "ln" && len(c.Args) == 1 {
			lnArgs = append(lnArgs, c.Args[0])
			continue
		}
		if c, ok := t.(ast.Call); ok && c.Name == "log" && len(c.Args) == 2 {
			grouped := false
			for i := range logGroups {
				if ast.Equal(logGroups[i].base, c.Args[1]) {
					logGroups[i].args = append(logGroups[i].args, c.Args[0])
					grouped = true
					break
				}
			}
			if !grouped {
				logGroups = append(logGroups, logGroup{base: c.Args[1], args: []ast.Node{c.Args[0]}})
			}
			continue
		}
		rest = append(rest, t)
	}

	if len(lnArgs) > 1 {
		rest = append(rest, ast.Call{Name: "ln", Args: []ast.Node{productOf(lnArgs)}})
	} else {
		rest = append(rest, lnArgs...)
	}
	for _, g := range logGroups {
		if len(g.args) > 1 {
			rest = append(rest, ast.Call{Name: "log", Args: []ast.Node{productOf(g.args), g.base}})
		} else {
			rest = append(rest, ast.Call{Name: "log", Args: []ast.Node{g.args[0], g.base}})
		}
	}

	if constSum != nil && constSum.Sign() != 0 {
		rest = append(rest, nodeFromRat(constSum))
	}
	if len(rest) == 0 {
		return ast.NewInteger(0)
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return ast.Add{Terms: rest}
}

func productOf(nodes []ast.Node) ast.Node {
	product := nodes[0]
	for _, n := range nodes[1:] {
		product = ast.Mul{Factors: []ast.Node{product, n}}
	}
	return product
}

// simplifyMul folds constant factors together and combines repeated
// powers of the same base: x**a * x**b collapses to x**(a+b), with the
// exponent sum itself simplified (x**2 * x**3 is x**5, and a factor whose
// exponents sum to 0 drops out).
func simplifyMul(v ast.Mul, o opts) ast.Node {
	factors := simplifyChildren(v.Factors, o)

	constProd := big.NewRat(1, 1)
	hasConst := false
	type baseExp struct {
		base ast.Node
		exps []ast.Node
	}
	var bases []baseExp
	var rest []ast.Node

	addExp := func(base, exp ast.Node) {
		for i := range bases {
			if ast.Equal(bases[i].base, base) {
				bases[i].exps = append(bases[i].exps, exp)
				return
			}
		}
		bases = append(bases, baseExp{base: base, exps: []ast.Node{exp}})
	}

	for _, f := range factors {
		if r, ok := rationalValue(f); ok {
			constProd.Mul(constProd, r)
			hasConst = true
			continue
		}
		if p, ok := f.(ast.Pow); ok {
			addExp(p.Base, p.Exp)
			continue
		}
		addExp(f, ast.NewInteger(1))
	}

	for _, be := range bases {
		exp := be.exps[0]
		if len(be.exps) > 1 {
			exp = simplifyMaths(ast.Canonicalize(ast.Add{Terms: be.exps}), o)
			if isZeroLiteral(exp) {
				continue
			}
		}
		if i, ok := exp.(ast.Integer); ok && i.Value.Cmp(big.NewInt(1)) == 0 {
			rest = append(rest, be.base)
		} else {
			rest = append(rest, ast.Pow{Base: be.base, Exp: exp})
		}
	}

	if hasConst {
		if constProd.Sign() == 0 {
			return ast.NewInteger(0)
		}
		if constProd.Cmp(big.NewRat(1, 1)) != 0 {
			rest = append(rest, nodeFromRat(constProd))
		}
	}
	if len(rest) == 0 {
		return ast.NewInteger(1)
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return ast.Mul{Factors: rest}
}

// simplifyPow collapses (x**a)**b to x**(a*b) and sqrt(x**2) / (sqrt(x))**2
// to x, both licensed by the positive-reals assumption.
func simplifyPow(v ast.Pow, o opts) ast.Node {
	base := simplifyMaths(v.Base, o)
	exp := simplifyMaths(v.Exp, o)

	if inner, ok := base.(ast.Pow); ok {
		return simplifyMaths(ast.Pow{Base: inner.Base, Exp: ast.Canonicalize(ast.Mul{Factors: []ast.Node{inner.Exp, exp}})}, o)
	}
	if c, ok := base.(ast.Call); ok && c.Name == "sqrt" && len(c.Args) == 1 && isIntegerTwo(exp) {
		return c.Args[0]
	}
	return ast.Pow{Base: base, Exp: exp}
}

// simplifyCall leaves a Derivative call opaque unless o.derivatives is
// set: with it disabled (the default), the symbolic tier treats
// Derivative(...) as an atom and only the exact and numeric tiers can
// still decide the comparison.
func simplifyCall(v ast.Call, o opts) ast.Node {
	if v.Name == "Derivative" {
		if !o.derivatives {
			return ast.Call{Name: v.Name, Args: simplifyChildren(v.Args, o)}
		}
		return differentiateDerivativeCall(v)
	}
	if v.Name == "sqrt" && len(v.Args) == 1 {
		arg := simplifyMaths(v.Args[0], o)
		if p, ok := arg.(ast.Pow); ok && isIntegerTwo(p.Exp) {
			return p.Base
		}
		return ast.Call{Name: v.Name, Args: []ast.Node{arg}}
	}
	return ast.Call{Name: v.Name, Args: simplifyChildren(v.Args, o)}
}

func isIntegerTwo(n ast.Node) bool {
	i, ok := n.(ast.Integer)
	return ok && i.Value.Cmp(big.NewInt(2)) == 0
}

func rationalValue(n ast.Node) (*big.Rat, bool) {
	switch v := n.(type) {
	case ast.Integer:
		return new(big.Rat).SetInt(v.Value), true
	case ast.Rational:
		return new(big.Rat).SetFrac(v.Num, v.Den), true
	default:
		return nil, false
	}
}

func nodeFromRat(r *big.Rat) ast.Node {
	if r.IsInt() {
		return ast.Integer{Value: new(big.Int).Set(r.Num())}
	}
	return ast.NewRational(new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()))
}
