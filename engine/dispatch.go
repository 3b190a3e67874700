package engine

import (
	"context"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/checkerr"
	"github.com/isaacphysics/equality-checker/numeric"
	"github.com/isaacphysics/equality-checker/simplify"
	"github.com/isaacphysics/equality-checker/symbols"
)

// dispatch decides whether target and test are equivalent, returning the
// tier that made the decision. It never errors for a plain "not equal"
// outcome — only for a genuine failure partway through a tier (a numeric
// domain error, a cancelled context).
func dispatch(ctx context.Context, target, test ast.Node, mode symbols.Mode, opts Options) (bool, Tier, error) {
	targetRel, targetIsRel := target.(ast.Relation)
	testRel, testIsRel := test.(ast.Relation)
	if targetIsRel != testIsRel {
		return false, TierSymbolic, nil
	}
	if targetIsRel {
		return dispatchRelation(ctx, targetRel, testRel, mode, opts)
	}
	return dispatchExpression(ctx, target, test, mode, opts)
}

func dispatchRelation(ctx context.Context, target, test ast.Relation, mode symbols.Mode, opts Options) (bool, Tier, error) {
	if target.Kind == ast.RelEq && test.Kind == ast.RelEq {
		straight, straightTier, err := pairwiseEqual(ctx, target.Lhs, target.Rhs, test.Lhs, test.Rhs, mode, opts)
		if err != nil {
			return false, straightTier, err
		}
		if straight {
			return true, straightTier, nil
		}
		crossed, crossTier, err := pairwiseEqual(ctx, target.Lhs, target.Rhs, test.Rhs, test.Lhs, mode, opts)
		if err != nil {
			return false, crossTier, err
		}
		return crossed, worseTier(straightTier, crossTier), nil
	}

	if isInequality(target.Kind) && isInequality(test.Kind) {
		if !strictnessMatches(target.Kind, test.Kind) {
			return false, TierSymbolic, nil
		}
		tLo, tHi := lesserGreater(target)
		sLo, sHi := lesserGreater(test)
		loEq, loTier, err := dispatchExpression(ctx, tLo, sLo, mode, opts)
		if err != nil {
			return false, loTier, err
		}
		if !loEq {
			return false, loTier, nil
		}
		hiEq, hiTier, err := dispatchExpression(ctx, tHi, sHi, mode, opts)
		if err != nil {
			return false, hiTier, err
		}
		return hiEq, worseTier(loTier, hiTier), nil
	}

	return false, TierSymbolic, nil
}

// pairwiseEqual requires tLhs~sLhs AND tRhs~sRhs, short-circuiting on the
// first failure; the combined tier is the worse of the two sides actually
// evaluated.
func pairwiseEqual(ctx context.Context, tLhs, tRhs, sLhs, sRhs ast.Node, mode symbols.Mode, opts Options) (bool, Tier, error) {
	lhsEq, lhsTier, err := dispatchExpression(ctx, tLhs, sLhs, mode, opts)
	if err != nil {
		return false, lhsTier, err
	}
	if !lhsEq {
		return false, lhsTier, nil
	}
	rhsEq, rhsTier, err := dispatchExpression(ctx, tRhs, sRhs, mode, opts)
	if err != nil {
		return false, rhsTier, err
	}
	return rhsEq, worseTier(lhsTier, rhsTier), nil
}

func isStrict(k ast.RelKind) bool {
	return k == ast.RelLt || k == ast.RelGt
}

func isInequality(k ast.RelKind) bool {
	return k == ast.RelLt || k == ast.RelLe || k == ast.RelGt || k == ast.RelGe
}

func strictnessMatches(a, b ast.RelKind) bool {
	return isStrict(a) == isStrict(b)
}

func lesserFirst(k ast.RelKind) bool {
	return k == ast.RelLt || k == ast.RelLe
}

// lesserGreater returns (lesser side, greater side) regardless of which
// field of the Relation each occupied in source order.
func lesserGreater(r ast.Relation) (lesser, greater ast.Node) {
	if lesserFirst(r.Kind) {
		return r.Lhs, r.Rhs
	}
	return r.Rhs, r.Lhs
}

// dispatchExpression runs the exact, symbolic, then (maths-only) numeric
// tiers in increasing cost order, stopping at the first that decides the
// pair equal. A tier that merely fails to prove equality falls through to
// the next; only an expired deadline and numeric's domain/range failures
// are reported as errors.
func dispatchExpression(ctx context.Context, target, test ast.Node, mode symbols.Mode, opts Options) (bool, Tier, error) {
	if ast.Equal(target, test) {
		return true, TierExact, nil
	}

	if err := ctx.Err(); err != nil {
		return false, TierExact, checkerr.Wrap(checkerr.KindTimeout, "deadline exceeded before symbolic comparison", err)
	}

	if mode == symbols.Logic {
		return simplify.LogicEqual(target, test), TierSymbolic, nil
	}

	simplifiedTarget := simplify.Maths(target, opts.SimplifyDerivatives)
	simplifiedTest := simplify.Maths(test, opts.SimplifyDerivatives)
	if ast.Equal(simplifiedTarget, simplifiedTest) {
		return true, TierSymbolic, nil
	}

	if err := ctx.Err(); err != nil {
		return false, TierSymbolic, checkerr.Wrap(checkerr.KindTimeout, "deadline exceeded before numeric comparison", err)
	}

	equal, err := numeric.Equal(simplifiedTarget, simplifiedTest)
	if err != nil {
		return false, TierNumeric, err
	}
	return equal, TierNumeric, nil
}
