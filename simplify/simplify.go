// Package simplify implements the algebraic and boolean rewrite rules the
// symbolic tier relies on. No computer-algebra library exists anywhere in
// the example pack this project was grounded on, so this package is
// built entirely on the standard library — see DESIGN.md for the
// exhaustive search that justifies that.
//
// Maths simplifies under a positive-reals assumption (so sqrt(x**2) = x,
// not Abs(x)) and never decides equivalence on its own: the engine
// compares two simplified, canonicalized trees with ast.Equal and falls
// through to numeric sampling when they still differ. Logic proves
// equivalence outright, by truth table over the formula's free
// variables — propositional equivalence is decidable, so there is no
// "numeric" tier to fall back to.
package simplify

import "github.com/isaacphysics/equality-checker/ast"

// Maths simplifies n under the positive-reals assumption: constant
// arithmetic folds, sqrt(x**2) and (sqrt(x))**2 both collapse to x,
// log(a) + log(b) collapses to log(a*b), x**a * x**b collapses to
// x**(a+b), and (x**a)**b collapses to x**(a*b). A Derivative call is
// replaced by its symbolic derivative only when simplifyDerivatives is
// true; otherwise it is left as an opaque atom, so two distinct
// Derivative(...) calls never accidentally compare as algebraically
// equal at this tier. The result is re-canonicalized before returning so
// the caller can compare it with ast.Equal.
func Maths(n ast.Node, simplifyDerivatives bool) ast.Node {
	o := opts{derivatives: simplifyDerivatives}
	return ast.Canonicalize(simplifyMaths(ast.Canonicalize(n), o))
}
