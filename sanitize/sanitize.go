// Package sanitize scrubs untrusted expression text before it reaches a
// lexer: Unicode glyphs that have an obvious ASCII-safe equivalent are
// rewritten, then every remaining character is checked against a per-mode
// whitelist.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/isaacphysics/equality-checker/checkerr"
)

// Mode selects which whitelist and post-rewrite rules apply.
type Mode int

const (
	Maths Mode = iota
	Logic
)

const mathsWhitelist = " ()*+,-./<=>^_±" + "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const logicWhitelist = " &()<=>^_|~" + "01" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var greekNames = map[rune]string{
	'α': "alpha", 'Α': "Alpha",
	'β': "beta", 'Β': "Beta",
	'γ': "gamma", 'Γ': "Gamma",
	'δ': "delta", 'Δ': "Delta",
	'ε': "epsilon", 'Ε': "Epsilon",
	'ζ': "zeta", 'Ζ': "Zeta",
	'η': "eta", 'Η': "Eta",
	'θ': "theta", 'Θ': "Theta",
	'ι': "iota", 'Ι': "Iota",
	'κ': "kappa", 'Κ': "Kappa",
	'λ': "lamda", 'Λ': "Lamda", // lambda is reserved, see lambda rewrite below
	'μ': "mu", 'Μ': "Mu",
	'ν': "nu", 'Ν': "Nu",
	'ξ': "xi", 'Ξ': "Xi",
	'π': "pi", 'Π': "Pi",
	'ρ': "rho", 'Ρ': "Rho",
	'σ': "sigma", 'Σ': "Sigma",
	'τ': "tau", 'Τ': "Tau",
	'υ': "upsilon", 'Υ': "Upsilon",
	'φ': "phi", 'Φ': "Phi",
	'χ': "chi", 'Χ': "Chi",
	'ψ': "psi", 'Ψ': "Psi",
	'ω': "omega", 'Ω': "Omega",
}

// superscriptDigits and subscriptDigits map Unicode superscript/subscript
// digits to their ordinary ASCII digit.
var superscriptDigits = map[rune]byte{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

var subscriptDigits = map[rune]byte{
	'₀': '0', '₁': '1', '₂': '2', '₃': '3', '₄': '4',
	'₅': '5', '₆': '6', '₇': '7', '₈': '8', '₉': '9',
}

// vulgarFractions maps a vulgar fraction glyph to its "(p/q)" expansion.
var vulgarFractions = map[rune]string{
	'¼': "(1/4)", '½': "(1/2)", '¾': "(3/4)",
	'⅓': "(1/3)", '⅔': "(2/3)",
	'⅕': "(1/5)", '⅖': "(2/5)", '⅗': "(3/5)", '⅘': "(4/5)",
	'⅙': "(1/6)", '⅚': "(5/6)",
	'⅐': "(1/7)", '⅛': "(1/8)", '⅜': "(3/8)", '⅝': "(5/8)", '⅞': "(7/8)",
	'⅑': "(1/9)", '⅒': "(1/10)",
}

// normalize rewrites glyphs with an unambiguous ASCII-safe equivalent,
// before whitelisting runs. Superscript and subscript runs are collapsed:
// the first digit of a run gets the "**"/"_" prefix, subsequent digits in
// the same run are appended bare, matching how "x²⁴" means x to the 24th
// power rather than x² times x⁴.
func normalize(s string, mode Mode) string {
	var b strings.Builder
	prevSuper, prevSub := false, false
	for _, r := range s {
		switch {
		case r == '×' || r == '∗':
			b.WriteByte('*')
			prevSuper, prevSub = false, false
		case r == '÷' || r == '∕':
			b.WriteByte('/')
			prevSuper, prevSub = false, false
		case r == '≤':
			b.WriteString("<=")
			prevSuper, prevSub = false, false
		case r == '≥':
			b.WriteString(">=")
			prevSuper, prevSub = false, false
		case mode == Logic && r == '∧':
			b.WriteByte('&')
			prevSuper, prevSub = false, false
		case mode == Logic && r == '∨':
			b.WriteByte('|')
			prevSuper, prevSub = false, false
		case mode == Logic && r == '¬':
			b.WriteByte('~')
			prevSuper, prevSub = false, false
		case mode == Logic && (r == '⊕' || r == '⊻'):
			b.WriteByte('^')
			prevSuper, prevSub = false, false
		case superscriptDigits[r] != 0:
			if !prevSuper {
				b.WriteString("**")
			}
			b.WriteByte(superscriptDigits[r])
			prevSuper, prevSub = true, false
		case subscriptDigits[r] != 0:
			if !prevSub {
				b.WriteByte('_')
			}
			b.WriteByte(subscriptDigits[r])
			prevSuper, prevSub = false, true
		case vulgarFractions[r] != "":
			b.WriteString(vulgarFractions[r])
			prevSuper, prevSub = false, false
		case greekNames[r] != "":
			b.WriteString("(" + greekNames[r] + ")")
			prevSuper, prevSub = false, false
		default:
			b.WriteRune(r)
			prevSuper, prevSub = false, false
		}
	}
	return b.String()
}

func whitelist(mode Mode) string {
	if mode == Logic {
		return logicWhitelist
	}
	return mathsWhitelist
}

// Clean normalizes s, replaces every non-whitelisted character with '?',
// then softens any surviving '?' to a space — unless strict is set, in
// which case a surviving '?' is a checkerr.KindUnsafeInput error.
func Clean(s string, mode Mode, strict bool) (string, error) {
	normalized := normalize(s, mode)
	allowed := whitelist(mode)

	runes := []rune(normalized)
	for i, r := range runes {
		if !strings.ContainsRune(allowed, r) {
			runes[i] = '?'
		}
	}
	cleaned := string(runes)

	if strings.ContainsRune(cleaned, '?') {
		if strict {
			return "", checkerr.New(checkerr.KindUnsafeInput, "input contains characters outside the allowed set")
		}
		cleaned = strings.ReplaceAll(cleaned, "?", " ")
	}

	if mode == Maths {
		cleaned = postRewriteMaths(cleaned)
	}
	return cleaned, nil
}

// postRewriteMaths applies the maths-mode rewrites that must run after
// whitelisting: decimal points are spaced away from non-digit neighbours so
// "5.a" doesn't parse as a number, double underscores become a space, a
// lone '=' is promoted to '==', "lambda" is renamed to the reserved-word-safe
// "lamda", and an integer-long suffix like "2L" is broken up.
func postRewriteMaths(s string) string {
	s = spaceOutDecimalPoint(s)
	s = strings.ReplaceAll(s, "__", " ")
	s = promoteLoneEquals(s)
	s = strings.ReplaceAll(s, "lambda", "lamda")
	s = spaceOutLongSuffix(s)
	return s
}

func spaceOutDecimalPoint(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r != '.' {
			b.WriteRune(r)
			continue
		}
		before := i > 0 && unicode.IsDigit(runes[i-1])
		after := i+1 < len(runes) && unicode.IsDigit(runes[i+1])
		if before && after {
			b.WriteRune(r)
			continue
		}
		b.WriteString(" . ")
	}
	return b.String()
}

func promoteLoneEquals(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '=' {
			b.WriteRune(r)
			continue
		}
		prev := rune(0)
		if i > 0 {
			prev = runes[i-1]
		}
		next := rune(0)
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		switch {
		case next == '=':
			b.WriteString("==")
			i++
		case prev == '<' || prev == '>' || prev == '=':
			b.WriteRune(r)
		default:
			b.WriteString("==")
		}
	}
	return b.String()
}

// spaceOutLongSuffix breaks up a trailing integer-long suffix such as "2L"
// so the lexer reads it as the number 2 followed by an identifier L, rather
// than choking on a form the number grammar doesn't recognise.
func spaceOutLongSuffix(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r == 'L' && i > 0 && unicode.IsDigit(runes[i-1]) {
			if i+1 == len(runes) || !unicode.IsLetter(runes[i+1]) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
