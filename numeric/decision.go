package numeric

import (
	"math"
	"math/cmplx"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/checkerr"
)

const (
	maxRange  = 1e10
	minRange  = 1e-10
	tolerance = 1e-10
)

// Equal is the numeric matcher: the tier of last resort, reached only
// once both the exact (ast package) and symbolic (simplify package)
// tiers fail to decide. target is the trusted reference expression, test
// is the student's submission.
func Equal(target, test ast.Node) (bool, error) {
	target, test, _ = substituteDerivatives(target, test)

	sg := FreeSymbols(target)
	st := FreeSymbols(test)
	if !subset(sg, st) {
		return false, nil
	}
	extra := difference(st, sg)

	rowsG := samples(sg)
	rowsExtra := samples(extra)

	vg, vt := evaluateRealBoth(target, test, rowsG, rowsExtra)
	if !containsNaN(vg) && !containsNaN(vt) {
		return decideReal(vg, vt, len(sg) > 0)
	}

	cg, ct := evaluateComplexBoth(target, test, rowsG, rowsExtra)
	if containsNaNComplex(cg) || containsNaNComplex(ct) {
		return false, checkerr.New(checkerr.KindNumericDomainError,
			"target and test could not be evaluated to finite values, even on the complex plane")
	}
	return decideComplex(cg, ct, len(sg) > 0)
}

func evaluateRealBoth(target, test ast.Node, rowsG, rowsExtra []map[string]float64) (vg, vt []float64) {
	vg = make([]float64, sampleCount)
	vt = make([]float64, sampleCount)
	for i := 0; i < sampleCount; i++ {
		vg[i] = realOrNaN(target, rowsG[i])
		env := mergeFloat(rowsG[i], rowsExtra[i])
		vt[i] = realOrNaN(test, env)
	}
	return vg, vt
}

func realOrNaN(n ast.Node, env map[string]float64) float64 {
	f, ok := evalReal(n, env)
	if !ok {
		return math.NaN()
	}
	return f
}

func evaluateComplexBoth(target, test ast.Node, rowsG, rowsExtra []map[string]float64) (cg, ct []complex128) {
	cgRows := toComplexRows(rowsG)
	cExtraRows := toComplexRows(rowsExtra)
	cg = make([]complex128, sampleCount)
	ct = make([]complex128, sampleCount)
	for i := 0; i < sampleCount; i++ {
		cg[i] = complexOrNaN(target, cgRows[i])
		env := mergeComplex(cgRows[i], cExtraRows[i])
		ct[i] = complexOrNaN(test, env)
	}
	return cg, ct
}

func complexOrNaN(n ast.Node, env map[string]complex128) complex128 {
	z, ok := evalComplex(n, env)
	if !ok {
		return complex(math.NaN(), math.NaN())
	}
	return z
}

func mergeFloat(a, b map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func mergeComplex(a, b map[string]complex128) map[string]complex128 {
	out := make(map[string]complex128, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func containsNaN(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

func containsNaNComplex(vs []complex128) bool {
	for _, v := range vs {
		if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
			return true
		}
	}
	return false
}

// decideReal applies the range/tolerance decision rule to real-sampled
// arrays: too wide a spread, or a suspiciously constant target when it
// has free variables, or a value too large to trust, all fail with
// NumericRangeError rather than silently risking a false accept.
func decideReal(vg, vt []float64, targetHasSymbols bool) (bool, error) {
	minV, maxV := vg[0], vg[0]
	for _, v := range vg {
		if math.IsInf(v, 0) {
			return false, checkerr.New(checkerr.KindNumericRangeError,
				"sampled value does not fit a finite representation")
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	spread := maxV - minV
	if spread > maxRange {
		return false, checkerr.New(checkerr.KindNumericRangeError, "sampled range too wide to compare reliably")
	}
	if spread < minRange && targetHasSymbols {
		return false, checkerr.New(checkerr.KindNumericRangeError, "target looks constant across its free symbols")
	}

	maxAbs := 0.0
	sumDiff := 0.0
	for i := range vg {
		if math.Abs(vg[i]) > maxAbs {
			maxAbs = math.Abs(vg[i])
		}
		sumDiff += math.Abs(vg[i] - vt[i])
	}
	return sumDiff <= tolerance*maxAbs, nil
}

func decideComplex(vg, vt []complex128, targetHasSymbols bool) (bool, error) {
	minV, maxV := cmplx.Abs(vg[0]), cmplx.Abs(vg[0])
	for _, v := range vg {
		m := cmplx.Abs(v)
		if math.IsInf(m, 0) {
			return false, checkerr.New(checkerr.KindNumericRangeError,
				"sampled value does not fit a finite complex128 representation")
		}
		if m < minV {
			minV = m
		}
		if m > maxV {
			maxV = m
		}
	}
	spread := maxV - minV
	if spread > maxRange {
		return false, checkerr.New(checkerr.KindNumericRangeError, "sampled range too wide to compare reliably")
	}
	if spread < minRange && targetHasSymbols {
		return false, checkerr.New(checkerr.KindNumericRangeError, "target looks constant across its free symbols")
	}

	maxAbs := 0.0
	sumDiff := 0.0
	for i := range vg {
		if cmplx.Abs(vg[i]) > maxAbs {
			maxAbs = cmplx.Abs(vg[i])
		}
		sumDiff += cmplx.Abs(vg[i] - vt[i])
	}
	return sumDiff <= tolerance*maxAbs, nil
}

func subset(a, b []string) bool {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	for _, s := range a {
		if !set[s] {
			return false
		}
	}
	return true
}

func difference(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if !set[s] {
			out = append(out, s)
		}
	}
	return out
}
