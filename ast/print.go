package ast

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// String renders n as an infix expression, used for the parsed_target and
// parsed_test fields of a check response and for test failure messages. It
// is not used for equality comparison — Equal works on canonical CBOR
// bytes, not on this text.
func String(n Node) string {
	return render(n, false)
}

func render(n Node, parenthesizeAdd bool) string {
	switch v := n.(type) {
	case Integer:
		return v.Value.String()
	case Rational:
		return v.Num.String() + "/" + v.Den.String()
	case Float:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case Symbol:
		return v.Name
	case BoolConst:
		if v.Value {
			return "True"
		}
		return "False"
	case Add:
		s := renderAdd(v.Terms)
		if parenthesizeAdd {
			return "(" + s + ")"
		}
		return s
	case Mul:
		return renderMul(v.Factors)
	case And:
		return strings.Join(renderEach(v.Args), " & ")
	case Or:
		return strings.Join(renderEach(v.Args), " | ")
	case Xor:
		return strings.Join(renderEach(v.Args), " ^ ")
	case Pow:
		return render(v.Base, true) + "**" + render(v.Exp, true)
	case Implies:
		return fmt.Sprintf("Implies(%s, %s)", render(v.Antecedent, false), render(v.Consequent, false))
	case Relation:
		return render(v.Lhs, true) + " " + v.Kind.String() + " " + render(v.Rhs, true)
	case Not:
		return "~" + render(v.X, true)
	case Call:
		if v.Name == "E" && len(v.Args) == 0 {
			return "e"
		}
		parts := make([]string, len(v.Args))
		for i, a := range v.Args {
			parts[i] = render(a, false)
		}
		return v.Name + "(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprintf("<%T>", n)
	}
}

// renderEach renders each arg, parenthesizing an Add term and any nested
// connective so "A & (B | C)" doesn't print as the ambiguous "A & B | C".
func renderEach(args []Node) []string {
	out := make([]string, len(args))
	for i, a := range args {
		switch a.(type) {
		case And, Or, Xor:
			out[i] = "(" + render(a, false) + ")"
		default:
			out[i] = render(a, true)
		}
	}
	return out
}

// renderAdd prints negative terms (a Mul with a leading Integer(-1) factor)
// as "- x" instead of "+ -1*x", the same cosmetic rewrite a reader expects
// from ordinary algebraic notation.
func renderAdd(terms []Node) string {
	var b strings.Builder
	for i, t := range terms {
		neg, rest := asNegated(t)
		switch {
		case i == 0 && neg:
			b.WriteString("-")
			b.WriteString(render(rest, true))
		case i == 0:
			b.WriteString(render(t, true))
		case neg:
			b.WriteString(" - ")
			b.WriteString(render(rest, true))
		default:
			b.WriteString(" + ")
			b.WriteString(render(t, true))
		}
	}
	return b.String()
}

// asNegated reports whether t is a Mul with a leading negative integer
// factor, and returns the node to print after the sign if so. A bare
// Integer(-1) term renders as "-1" via the ok=false path rather than "-".
func asNegated(t Node) (ok bool, rest Node) {
	m, isMul := t.(Mul)
	if !isMul || len(m.Factors) == 0 {
		return false, t
	}
	lead, isInt := m.Factors[0].(Integer)
	if !isInt || lead.Value.Sign() >= 0 {
		return false, t
	}
	mag := new(big.Int).Neg(lead.Value)
	restFactors := m.Factors[1:]
	if mag.Cmp(big.NewInt(1)) == 0 {
		if len(restFactors) == 0 {
			return false, t
		}
		if len(restFactors) == 1 {
			return true, restFactors[0]
		}
		return true, Mul{Factors: restFactors}
	}
	lead = Integer{Value: mag}
	if len(restFactors) == 0 {
		return true, lead
	}
	return true, Mul{Factors: append([]Node{lead}, restFactors...)}
}

// renderMul prints a trailing Pow(x, -1) factor as "/x" instead of "*x**-1".
func renderMul(factors []Node) string {
	var numer, denom []Node
	for _, f := range factors {
		if p, ok := f.(Pow); ok {
			if i, ok := p.Exp.(Integer); ok && i.Value.Sign() < 0 {
				negExp := new(big.Int).Neg(i.Value)
				if negExp.Cmp(big.NewInt(1)) == 0 {
					denom = append(denom, p.Base)
				} else {
					denom = append(denom, Pow{Base: p.Base, Exp: Integer{Value: negExp}})
				}
				continue
			}
		}
		numer = append(numer, f)
	}
	if len(denom) == 0 {
		return joinMul(numer)
	}
	n := joinMul(numer)
	if n == "" {
		n = "1"
	}
	return n + "/" + joinMul(denom)
}

func joinMul(factors []Node) string {
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = render(f, true)
	}
	return strings.Join(parts, "*")
}
