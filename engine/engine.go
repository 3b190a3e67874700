// Package engine implements the top-level equivalence check: sanitise,
// parse, dispatch by tree shape through the exact/symbolic/numeric tiers
// in order, and cache any symbolic or numeric proof in a process-local
// memo. It is the one package that knows about every other pipeline
// stage (sanitize, parser, ast, simplify, numeric) and wires them
// together the way spec.md §4.5 describes.
package engine

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/checkerr"
	"github.com/isaacphysics/equality-checker/numeric"
	"github.com/isaacphysics/equality-checker/parser"
	"github.com/isaacphysics/equality-checker/sanitize"
	"github.com/isaacphysics/equality-checker/symbols"
)

// Tier names the strength of equivalence that decided a check, in the
// same increasing-cost order the response JSON expects.
type Tier string

const (
	TierExact    Tier = "exact"
	TierSymbolic Tier = "symbolic"
	TierNumeric  Tier = "numeric"
	TierKnown    Tier = "known"
)

// tierRank orders tiers so the ± and equation dispatch paths can report
// "the worse of these two outcomes." Known sits between exact and
// symbolic: a memo hit was proved at symbolic or numeric strength at some
// point, but cheaper than re-deriving it, so it is worse than a fresh
// exact match but never worse than re-running the full symbolic/numeric
// pipeline would have been.
var tierRank = map[Tier]int{TierExact: 0, TierKnown: 1, TierSymbolic: 2, TierNumeric: 3}

func worseTier(a, b Tier) Tier {
	if tierRank[a] >= tierRank[b] {
		return a
	}
	return b
}

// SymbolMismatch reports the symbol-checking pre-check's breakdown when
// free(test) != free(target).
type SymbolMismatch struct {
	Missing []string
	Extra   []string
}

// Options configures a single Check call. The zero value matches the
// documented default behaviour: maths mode, no extra user symbols or
// hints, and the free-symbol pre-check enabled (SkipSymbolCheck false).
type Options struct {
	Mode                symbols.Mode
	UserSymbols         []string
	Hints               []symbols.Hint
	SkipSymbolCheck     bool
	SimplifyDerivatives bool
}

// Result is the outcome of a successful (error-free) check. Target/Test
// hold the post-sanitisation text; ParsedTarget/ParsedTest hold the
// canonical string form of the parsed tree.
type Result struct {
	Target       string
	Test         string
	ParsedTarget string
	ParsedTest   string
	Equal        bool
	Tier         Tier
	Mismatch     *SymbolMismatch
}

// CaseError wraps an error raised while evaluating one branch of a ±
// expansion, recording which sign ("+" or "-") produced it.
type CaseError struct {
	Case string
	Err  error
}

func (e *CaseError) Error() string { return e.Err.Error() }
func (e *CaseError) Unwrap() error { return e.Err }

// Engine holds the process-local known-equal memo. Its only field is a
// sync.Map, so the zero value is ready to use; New returns one.
type Engine struct {
	memo sync.Map // [32]byte -> Tier
}

func New() *Engine {
	return &Engine{}
}

// Check runs the full equivalence pipeline for one (target, test) pair.
// ctx's deadline is checked between parse, exact, symbolic and numeric —
// the sub-task boundaries spec.md §5 requires, since the engine itself
// has no other suspension points.
func (e *Engine) Check(ctx context.Context, targetText, testText string, opts Options) (*Result, error) {
	if targetText == "" {
		return nil, checkerr.New(checkerr.KindEmptyInput, "target is empty").WithFatal()
	}
	if testText == "" {
		return nil, checkerr.New(checkerr.KindEmptyInput, "test is empty")
	}

	targetHasPM := strings.Contains(targetText, "±")
	testHasPM := strings.Contains(testText, "±")
	if targetHasPM != testHasPM {
		return &Result{Equal: false, Tier: TierSymbolic}, nil
	}
	if targetHasPM {
		return e.checkPlusMinus(ctx, targetText, testText, opts)
	}
	return e.checkOnce(ctx, targetText, testText, opts)
}

func (e *Engine) checkPlusMinus(ctx context.Context, targetText, testText string, opts Options) (*Result, error) {
	plusTarget := strings.ReplaceAll(targetText, "±", "+")
	plusTest := strings.ReplaceAll(testText, "±", "+")
	minusTarget := strings.ReplaceAll(targetText, "±", "-")
	minusTest := strings.ReplaceAll(testText, "±", "-")

	plusResult, err := e.checkOnce(ctx, plusTarget, plusTest, opts)
	if err != nil {
		return nil, &CaseError{Case: "+", Err: err}
	}
	minusResult, err := e.checkOnce(ctx, minusTarget, minusTest, opts)
	if err != nil {
		return nil, &CaseError{Case: "-", Err: err}
	}

	tier := worseTier(plusResult.Tier, minusResult.Tier)
	return &Result{
		Target:       plusResult.Target,
		Test:         plusResult.Test,
		ParsedTarget: plusResult.ParsedTarget,
		ParsedTest:   plusResult.ParsedTest,
		Equal:        plusResult.Equal && minusResult.Equal,
		Tier:         tier,
	}, nil
}

func (e *Engine) checkOnce(ctx context.Context, targetText, testText string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, checkerr.Wrap(checkerr.KindTimeout, "deadline exceeded before sanitising", err).WithFatal()
	}

	sanMode := sanitize.Maths
	if opts.Mode == symbols.Logic {
		sanMode = sanitize.Logic
	}
	cleanTarget, err := sanitize.Clean(targetText, sanMode, true)
	if err != nil {
		return nil, asFatal(err)
	}
	cleanTest, err := sanitize.Clean(testText, sanMode, true)
	if err != nil {
		return nil, err
	}

	table := symbols.NewTable(opts.Mode, opts.UserSymbols, opts.Hints...)
	targetTree, err := parser.Parse(cleanTarget, opts.Mode, table)
	if err != nil {
		return nil, asFatal(err)
	}
	testTree, err := parser.Parse(cleanTest, opts.Mode, table)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, checkerr.Wrap(checkerr.KindTimeout, "deadline exceeded after parsing", err).WithFatal()
	}

	base := Result{
		Target:       cleanTarget,
		Test:         cleanTest,
		ParsedTarget: ast.String(targetTree),
		ParsedTest:   ast.String(testTree),
	}

	if !opts.SkipSymbolCheck {
		missing, extra := symbolDiff(numeric.FreeSymbols(targetTree), numeric.FreeSymbols(testTree))
		if len(missing) > 0 || len(extra) > 0 {
			res := base
			res.Equal = false
			res.Tier = TierSymbolic
			res.Mismatch = &SymbolMismatch{Missing: missing, Extra: extra}
			return &res, nil
		}
	}

	key := memoKey(targetTree, testTree)
	if _, ok := e.memo.Load(key); ok {
		res := base
		res.Equal = true
		res.Tier = TierKnown
		return &res, nil
	}

	equal, tier, err := dispatch(ctx, targetTree, testTree, opts.Mode, opts)
	if err != nil {
		return nil, err
	}
	if equal && (tier == TierSymbolic || tier == TierNumeric) {
		e.memo.Store(key, tier)
	}
	res := base
	res.Equal = equal
	res.Tier = tier
	return &res, nil
}

// asFatal marks a checkerr.Error as fatal (a failure on the trusted
// target side), leaving any other error type untouched.
func asFatal(err error) error {
	if ce, ok := checkerr.As(err); ok {
		return ce.WithFatal()
	}
	return err
}

func symbolDiff(targetSyms, testSyms []string) (missing, extra []string) {
	targetSet := make(map[string]bool, len(targetSyms))
	for _, s := range targetSyms {
		targetSet[s] = true
	}
	testSet := make(map[string]bool, len(testSyms))
	for _, s := range testSyms {
		testSet[s] = true
	}
	for _, s := range targetSyms {
		if !testSet[s] {
			missing = append(missing, s)
		}
	}
	for _, s := range testSyms {
		if !targetSet[s] {
			extra = append(extra, s)
		}
	}
	return missing, extra
}

// memoKey hashes the canonical encodings of both trees together, reusing
// the same blake2b digest the ast package already uses for the exact
// matcher's child-sorting hash.
func memoKey(target, test ast.Node) [32]byte {
	h, _ := blake2b.New256(nil)
	h.Write(ast.Bytes(target))
	h.Write([]byte{0})
	h.Write(ast.Bytes(test))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
