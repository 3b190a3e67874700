package simplify

import "github.com/isaacphysics/equality-checker/ast"

// LogicEqual decides propositional equivalence of a and b by evaluating
// both over every assignment of their combined free variables. This is a
// complete decision procedure for boolean formulae (unlike the maths
// side, which falls back to numeric sampling precisely because it has no
// such thing), so logic mode has no numeric tier in the engine.
//
// Negation normal form rewrites (De Morgan's laws, double-negation
// elimination, XOR unfolding, idempotence) are applied first as a cheap
// pre-pass — most real submissions differ only by one of those and never
// need the truth table at all — but the truth table is what actually
// proves or disproves equivalence.
func LogicEqual(a, b ast.Node) bool {
	a = normalizeForm(ast.Canonicalize(a))
	b = normalizeForm(ast.Canonicalize(b))
	if ast.Equal(a, b) {
		return true
	}

	vars := make(map[string]bool)
	collectSymbols(a, vars)
	collectSymbols(b, vars)
	names := make([]string, 0, len(vars))
	for v := range vars {
		names = append(names, v)
	}

	total := 1 << len(names)
	for mask := 0; mask < total; mask++ {
		assign := make(map[string]bool, len(names))
		for i, name := range names {
			assign[name] = mask&(1<<i) != 0
		}
		if evalBool(a, assign) != evalBool(b, assign) {
			return false
		}
	}
	return true
}

func collectSymbols(n ast.Node, out map[string]bool) {
	if s, ok := n.(ast.Symbol); ok {
		out[s.Name] = true
		return
	}
	for _, c := range n.Children() {
		collectSymbols(c, out)
	}
}

func evalBool(n ast.Node, assign map[string]bool) bool {
	switch v := n.(type) {
	case ast.BoolConst:
		return v.Value
	case ast.Symbol:
		return assign[v.Name]
	case ast.Not:
		return !evalBool(v.X, assign)
	case ast.And:
		for _, a := range v.Args {
			if !evalBool(a, assign) {
				return false
			}
		}
		return true
	case ast.Or:
		for _, a := range v.Args {
			if evalBool(a, assign) {
				return true
			}
		}
		return false
	case ast.Xor:
		result := false
		for _, a := range v.Args {
			result = result != evalBool(a, assign)
		}
		return result
	case ast.Implies:
		return !evalBool(v.Antecedent, assign) || evalBool(v.Consequent, assign)
	case ast.Relation:
		if v.Kind == ast.RelEq {
			return evalBool(v.Lhs, assign) == evalBool(v.Rhs, assign)
		}
		return false
	default:
		return false
	}
}

// normalizeForm pushes negations inward (De Morgan), cancels double
// negation, unfolds Xor into its (~A&B)|(A&~B) expansion, and removes
// duplicate arguments from And/Or (idempotence).
func normalizeForm(n ast.Node) ast.Node {
	switch v := n.(type) {
	case ast.Not:
		return pushNegation(v.X)
	case ast.And:
		return ast.And{Args: dedupe(mapNormalize(v.Args))}
	case ast.Or:
		return ast.Or{Args: dedupe(mapNormalize(v.Args))}
	case ast.Xor:
		args := mapNormalize(v.Args)
		acc := args[0]
		for _, next := range args[1:] {
			acc = ast.Or{Args: []ast.Node{
				ast.And{Args: []ast.Node{negate(acc), next}},
				ast.And{Args: []ast.Node{acc, negate(next)}},
			}}
		}
		return normalizeForm(acc)
	case ast.Implies:
		return ast.Or{Args: []ast.Node{negate(v.Antecedent), normalizeForm(v.Consequent)}}
	default:
		return n
	}
}

func mapNormalize(nodes []ast.Node) []ast.Node {
	out := make([]ast.Node, len(nodes))
	for i, n := range nodes {
		out[i] = normalizeForm(n)
	}
	return out
}

func negate(n ast.Node) ast.Node {
	return pushNegation(n)
}

// pushNegation returns the negation of n, pushed as far inward as it
// will go via De Morgan's laws, with double negation cancelled.
func pushNegation(n ast.Node) ast.Node {
	switch v := n.(type) {
	case ast.Not:
		return normalizeForm(v.X)
	case ast.And:
		args := make([]ast.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = pushNegation(a)
		}
		return ast.Or{Args: args}
	case ast.Or:
		args := make([]ast.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = pushNegation(a)
		}
		return ast.And{Args: args}
	case ast.BoolConst:
		return ast.BoolConst{Value: !v.Value}
	default:
		return ast.Not{X: normalizeForm(n)}
	}
}

func dedupe(nodes []ast.Node) []ast.Node {
	var out []ast.Node
	for _, n := range nodes {
		seen := false
		for _, o := range out {
			if ast.Equal(n, o) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, n)
		}
	}
	return out
}
