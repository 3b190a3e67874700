package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphysics/equality-checker/checkerr"
	"github.com/isaacphysics/equality-checker/symbols"
)

func mathsOpts() Options { return Options{Mode: symbols.Maths} }
func logicOpts() Options { return Options{Mode: symbols.Logic} }

func TestCheckExactMatch(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x+1", "x+1", mathsOpts())
	require.NoError(t, err)
	assert.True(t, res.Equal)
	assert.Equal(t, TierExact, res.Tier)
}

func TestCheckSymbolicMatch(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "(x+1)^2", "x^2+2*x+1", mathsOpts())
	require.NoError(t, err)
	assert.True(t, res.Equal)
	assert.Equal(t, TierSymbolic, res.Tier)
}

func TestCheckNumericMatch(t *testing.T) {
	e := New()
	opts := mathsOpts()
	opts.SkipSymbolCheck = true
	res, err := e.Check(context.Background(), "1", "sin(x)^2+cos(x)^2", opts)
	require.NoError(t, err)
	assert.True(t, res.Equal)
	assert.Equal(t, TierNumeric, res.Tier)
}

func TestCheckRejectsInequivalentExpressions(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x^2", "2*x", mathsOpts())
	require.NoError(t, err)
	assert.False(t, res.Equal)
}

func TestCheckLogicDeMorgan(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "not (a and b)", "(not a) or (not b)", logicOpts())
	require.NoError(t, err)
	assert.True(t, res.Equal)
	assert.Equal(t, TierSymbolic, res.Tier)
}

func TestCheckEmptyTargetIsFatal(t *testing.T) {
	e := New()
	_, err := e.Check(context.Background(), "", "x", mathsOpts())
	require.Error(t, err)
	ce, ok := checkerr.As(err)
	require.True(t, ok)
	assert.Equal(t, checkerr.KindEmptyInput, ce.Kind)
	assert.True(t, ce.Fatal)
}

func TestCheckEmptyTestIsNonFatal(t *testing.T) {
	e := New()
	_, err := e.Check(context.Background(), "x", "", mathsOpts())
	require.Error(t, err)
	ce, ok := checkerr.As(err)
	require.True(t, ok)
	assert.False(t, ce.Fatal)
}

func TestCheckSymbolMismatchReportsMissingAndExtra(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x+y", "x+z", mathsOpts())
	require.NoError(t, err)
	assert.False(t, res.Equal)
	require.NotNil(t, res.Mismatch)
	assert.ElementsMatch(t, []string{"y"}, res.Mismatch.Missing)
	assert.ElementsMatch(t, []string{"z"}, res.Mismatch.Extra)
}

func TestCheckEquationMatchesAcrossSwappedSides(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x+1=y", "y=x+1", mathsOpts())
	require.NoError(t, err)
	assert.True(t, res.Equal)
}

func TestCheckEquationTypeMismatchIsNotEqual(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x=1", "x+1", mathsOpts())
	require.NoError(t, err)
	assert.False(t, res.Equal)
}

func TestCheckInequalityRejectsOppositeDirection(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x<1", "x>1", mathsOpts())
	require.NoError(t, err)
	assert.False(t, res.Equal)
}

func TestCheckInequalityRejectsStrictnessMismatch(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x<1", "x<=1", mathsOpts())
	require.NoError(t, err)
	assert.False(t, res.Equal)
}

func TestCheckInequalityMatches(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x+1<y", "y>x+1", mathsOpts())
	require.NoError(t, err)
	assert.True(t, res.Equal)
}

func TestCheckPlusMinusBothSignsMustMatch(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x±1", "x±1", mathsOpts())
	require.NoError(t, err)
	assert.True(t, res.Equal)
}

func TestCheckPlusMinusMismatchPresence(t *testing.T) {
	e := New()
	res, err := e.Check(context.Background(), "x±1", "x+1", mathsOpts())
	require.NoError(t, err)
	assert.False(t, res.Equal)
}

func TestCheckMemoisesSymbolicResult(t *testing.T) {
	e := New()
	res1, err := e.Check(context.Background(), "(x+1)^2", "x^2+2*x+1", mathsOpts())
	require.NoError(t, err)
	assert.Equal(t, TierSymbolic, res1.Tier)

	res2, err := e.Check(context.Background(), "(x+1)^2", "x^2+2*x+1", mathsOpts())
	require.NoError(t, err)
	assert.True(t, res2.Equal)
	assert.Equal(t, TierKnown, res2.Tier)
}

func TestCheckDeadlineExceededReturnsTimeout(t *testing.T) {
	e := New()
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	time.Sleep(time.Millisecond)
	_, err := e.Check(ctx, "x+1", "x+1", mathsOpts())
	require.Error(t, err)
}

func TestWorseTierRanksNumericAboveSymbolic(t *testing.T) {
	assert.Equal(t, TierNumeric, worseTier(TierSymbolic, TierNumeric))
	assert.Equal(t, TierSymbolic, worseTier(TierExact, TierSymbolic))
	assert.Equal(t, TierKnown, worseTier(TierExact, TierKnown))
}
