package numeric

import (
	"fmt"
	"sort"

	"github.com/isaacphysics/equality-checker/ast"
)

// substituteDerivatives replaces every distinct Derivative subtree found in
// target or test with a fresh dummy symbol, so the sampler can treat an
// opaque derivative the same as any other free variable. Longer
// (higher-order) derivatives are assigned first, matching spec order;
// identical subtrees on both sides receive the same dummy so the dummy
// genuinely stands in for "whatever that derivative evaluates to" rather
// than two unrelated unknowns.
func substituteDerivatives(target, test ast.Node) (ast.Node, ast.Node, []string) {
	var derivs []ast.Node
	collect := func(n ast.Node) {
		var walk func(ast.Node)
		walk = func(n ast.Node) {
			if c, ok := n.(ast.Call); ok && c.Name == "Derivative" {
				for _, d := range derivs {
					if ast.Equal(d, n) {
						return
					}
				}
				derivs = append(derivs, n)
				return
			}
			for _, ch := range n.Children() {
				walk(ch)
			}
		}
		walk(n)
	}
	collect(target)
	collect(test)

	sort.SliceStable(derivs, func(i, j int) bool {
		ci := derivs[i].(ast.Call)
		cj := derivs[j].(ast.Call)
		return len(ci.Args) > len(cj.Args)
	})

	names := make([]string, len(derivs))
	for i := range derivs {
		names[i] = fmt.Sprintf("_deriv%d", i)
	}

	replace := func(n ast.Node) ast.Node { return substituteNode(n, derivs, names) }
	return replace(target), replace(test), names
}

// substituteNode rebuilds n with every occurrence of a node in derivs
// (matched by ast.Equal) replaced by the corresponding dummy symbol.
func substituteNode(n ast.Node, derivs []ast.Node, names []string) ast.Node {
	for i, d := range derivs {
		if ast.Equal(d, n) {
			return ast.Symbol{Name: names[i]}
		}
	}
	switch v := n.(type) {
	case ast.Add:
		return ast.Add{Terms: substituteEach(v.Terms, derivs, names)}
	case ast.Mul:
		return ast.Mul{Factors: substituteEach(v.Factors, derivs, names)}
	case ast.And:
		return ast.And{Args: substituteEach(v.Args, derivs, names)}
	case ast.Or:
		return ast.Or{Args: substituteEach(v.Args, derivs, names)}
	case ast.Xor:
		return ast.Xor{Args: substituteEach(v.Args, derivs, names)}
	case ast.Pow:
		return ast.Pow{Base: substituteNode(v.Base, derivs, names), Exp: substituteNode(v.Exp, derivs, names)}
	case ast.Implies:
		return ast.Implies{
			Antecedent: substituteNode(v.Antecedent, derivs, names),
			Consequent: substituteNode(v.Consequent, derivs, names),
		}
	case ast.Relation:
		return ast.Relation{Kind: v.Kind, Lhs: substituteNode(v.Lhs, derivs, names), Rhs: substituteNode(v.Rhs, derivs, names)}
	case ast.Not:
		return ast.Not{X: substituteNode(v.X, derivs, names)}
	case ast.Call:
		return ast.Call{Name: v.Name, Args: substituteEach(v.Args, derivs, names)}
	default:
		return n
	}
}

func substituteEach(nodes []ast.Node, derivs []ast.Node, names []string) []ast.Node {
	out := make([]ast.Node, len(nodes))
	for i, n := range nodes {
		out[i] = substituteNode(n, derivs, names)
	}
	return out
}
