// Package symbols resolves bare identifiers encountered while parsing into
// global functions, global constants, or free symbols, and offers
// "did you mean" suggestions when a name is close to but not quite a
// recognised global.
package symbols

import "github.com/lithammer/fuzzysearch/fuzzy"

// Hint is a per-request parse hint set on the table before parsing starts.
// natural_logarithm changes log's implicit base (see NaturalLog). The
// constant_pi, constant_e, imaginary_i and imaginary_j hints only make
// IsConstant report the name, which keeps "pi" as one Symbol instead of
// p*i; no numeric value is bound, so the name is still a free symbol for
// the symbol check and for sampling. "e", "i" and "j" are single letters
// and parse as one Symbol with or without their hint.
type Hint string

const (
	ConstantPi        Hint = "constant_pi"
	ConstantE         Hint = "constant_e"
	ImaginaryI        Hint = "imaginary_i"
	ImaginaryJ        Hint = "imaginary_j"
	NaturalLogarithm  Hint = "natural_logarithm"
)

// mathsFunctions is the global table of recognised maths-mode function
// names. Many names are aliased (Sin/sin, ArcSin/arcsin/asin) the same way
// the original checker's _GLOBAL_DICT does, so a student's capitalisation
// choice never turns a trig call into a free symbol times a symbol.
var mathsFunctions = buildSet(
	"sin", "Sin", "cos", "Cos", "tan", "Tan",
	"cosec", "sec", "cot", "Csc", "Sec", "Cot",
	"arcsin", "arccos", "arctan", "asin", "acos", "atan",
	"ArcSin", "ArcCos", "ArcTan",
	"arccosec", "arcsec", "arccot", "acsc", "asec", "acot",
	"ArcCsc", "ArcSec", "ArcCot",
	"sinh", "cosh", "tanh", "cosech", "sech", "coth",
	"arcsinh", "arccosh", "arctanh", "asinh", "acosh", "atanh",
	"arccosech", "arcsech", "arccoth", "acsch", "asech", "acoth",
	"arsinh", "arcosh", "artanh", "arcsch", "arsech", "arcoth",
	"exp", "Exp", "log", "Log", "ln", "Ln",
	"sqrt", "Sqrt", "abs", "Abs",
	"factorial", "Rel", "Eq", "Derivative", "diff",
)

// logicFunctions is the global table of recognised logic-mode connective
// names, for the function-call surface syntax ("And(A, B)") alongside the
// infix operators the lexer already tokenizes.
var logicFunctions = buildSet("And", "Or", "Not", "Xor", "Implies", "Eq")

// logicConstants is the global table of recognised logic-mode literal
// names.
var logicConstants = map[string]bool{"True": true, "False": true}

func buildSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Table is the three-layer lookup a parser consults for every identifier:
// names the caller registered explicitly, the mode's global function and
// constant names, and otherwise an auto-created free symbol.
type Table struct {
	mode      Mode
	user      map[string]bool
	hints     map[Hint]bool
}

// Mode mirrors lexer.Mode without importing it, so this package stays
// leaf-level.
type Mode int

const (
	Maths Mode = iota
	Logic
)

// NewTable builds a symbol table for the given mode, optionally seeded
// with user-registered identifiers (multi-character names that must not
// be split by implicit multiplication) and parse hints.
func NewTable(mode Mode, userIdentifiers []string, hints ...Hint) *Table {
	t := &Table{mode: mode, user: make(map[string]bool), hints: make(map[Hint]bool)}
	for _, id := range userIdentifiers {
		t.user[id] = true
	}
	for _, h := range hints {
		t.hints[h] = true
	}
	return t
}

// IsUserRegistered reports whether name was explicitly registered by the
// caller and so must be treated as one atomic identifier, never split by
// implicit multiplication.
func (t *Table) IsUserRegistered(name string) bool {
	return t.user[name]
}

// IsFunction reports whether name is a recognised global function for
// this table's mode.
func (t *Table) IsFunction(name string) bool {
	if t.mode == Logic {
		return logicFunctions[name]
	}
	return mathsFunctions[name]
}

// IsConstant reports whether name is a recognised global constant for
// this table's mode. In maths mode, "pi", "e", "i" and "j" are ordinary
// free symbols unless the matching parse hint is present — there is no
// default binding, since a student's reference expression may well use
// any of those letters as a plain variable. The maths parser emits a name
// reported here as an ordinary Symbol, without a bound value.
func (t *Table) IsConstant(name string) bool {
	if t.mode == Logic {
		return logicConstants[name]
	}
	switch name {
	case "pi":
		return t.hints[ConstantPi]
	case "e":
		return t.hints[ConstantE]
	case "i":
		return t.hints[ImaginaryI]
	case "j":
		return t.hints[ImaginaryJ]
	case "true", "false":
		// Not a constant with a bound value in maths mode — an ordinary
		// symbol here — but must still be a single atom: without this, an
		// unregistered "true" would fall through to the single-character
		// splitting branch and parse as t*r*u*e instead of Symbol{"true"}.
		return true
	default:
		return false
	}
}

// NaturalLog reports whether the "natural_logarithm" hint is active,
// making a single-argument log(x) call mean the natural logarithm
// instead of the mode's default of base 10.
func (t *Table) NaturalLog() bool {
	return t.hints[NaturalLogarithm]
}

// Suggest returns the closest recognised global function name to a
// misspelled call target, or "" if nothing is close enough to be useful.
// A candidate counts when either name's letters appear in order within the
// other, ignoring case; the smallest edit distance wins, and a tie goes to
// the alphabetically first name.
func (t *Table) Suggest(name string) string {
	candidates := mathsFunctions
	if t.mode == Logic {
		candidates = logicFunctions
	}
	best, bestDist := "", 0
	for c := range candidates {
		if !fuzzy.MatchFold(name, c) && !fuzzy.MatchFold(c, name) {
			continue
		}
		d := fuzzy.LevenshteinDistance(name, c)
		if best == "" || d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	return best
}
