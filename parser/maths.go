package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/symbols"
	"github.com/isaacphysics/equality-checker/token"
)

// parseMathsTop parses a maths expression, optionally wrapped in exactly
// one top-level relation (equation or inequality). Nested relations are
// a parse error: "Cannot parse a relation inside a relation."
func (p *Parser) parseMathsTop() ast.Node {
	lhs := p.parseAdditive()
	kind, ok := relKind(p.current().Type)
	if !ok {
		return lhs
	}
	p.advance()
	rhs := p.parseAdditive()
	if _, ok := relKind(p.current().Type); ok {
		p.addErrorf("cannot parse a relation inside a relation")
		return lhs
	}
	_, lhsRel := lhs.(ast.Relation)
	_, rhsRel := rhs.(ast.Relation)
	if lhsRel || rhsRel {
		p.addErrorf("cannot parse a relation inside a relation")
		return lhs
	}
	return ast.Relation{Kind: kind, Lhs: lhs, Rhs: rhs}
}

func relKind(t token.Type) (ast.RelKind, bool) {
	switch t {
	case token.EQ:
		return ast.RelEq, true
	case token.LT:
		return ast.RelLt, true
	case token.LE:
		return ast.RelLe, true
	case token.GT:
		return ast.RelGt, true
	case token.GE:
		return ast.RelGe, true
	default:
		return 0, false
	}
}

func (p *Parser) parseAdditive() ast.Node {
	terms := []ast.Node{p.parseMultiplicative()}
	for {
		switch {
		case p.match(token.PLUS):
			terms = append(terms, p.parseMultiplicative())
		case p.match(token.MINUS):
			terms = append(terms, ast.Neg(p.parseMultiplicative()))
		default:
			if len(terms) == 1 {
				return terms[0]
			}
			return ast.Add{Terms: terms}
		}
	}
}

func (p *Parser) parseMultiplicative() ast.Node {
	factors := []ast.Node{p.parseUnary()}
	for {
		switch {
		case p.match(token.STAR):
			factors = append(factors, p.parseUnary())
		case p.match(token.SLASH):
			factors = append(factors, ast.Pow{Base: p.parseUnary(), Exp: ast.NewInteger(-1)})
		case canStartPrimary(p.current()):
			// Implicit multiplication: "2x", "(x+1)(x-2)", "2 x".
			factors = append(factors, p.parseUnary())
		default:
			if len(factors) == 1 {
				return factors[0]
			}
			return ast.Mul{Factors: factors}
		}
	}
}

func (p *Parser) parseUnary() ast.Node {
	if p.match(token.MINUS) {
		return ast.Neg(p.parseUnary())
	}
	if p.match(token.PLUS) {
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles right-associative exponentiation and the
// function-then-exponent-then-args rewrite: sin^2(x) means
// (sin(x))**2, not sin applied to x**2 or a power of the bare name sin.
func (p *Parser) parsePower() ast.Node {
	if p.current().Type == token.IDENTIFIER && p.table.IsFunction(p.current().Value) &&
		(p.peek(1).Type == token.CARET || p.peek(1).Type == token.DSTAR) {
		name := p.current().Value
		save := p.pos
		p.advance() // name
		p.advance() // ^ or **
		if p.current().Type == token.NUMBER && p.peek(1).Type == token.LPAREN {
			expTok := p.advance()
			call := p.parseCallArgs(name)
			exp := parseNumberLiteral(expTok.Value)
			return ast.Pow{Base: call, Exp: exp}
		}
		p.pos = save
	}

	base := p.parsePostfix()
	if p.match(token.CARET, token.DSTAR) {
		exp := p.parseUnary()
		return ast.Pow{Base: base, Exp: exp}
	}
	return base
}

func (p *Parser) parsePostfix() ast.Node {
	x := p.parsePrimary()
	for p.match(token.BANG) {
		n, ok := integerValue(x)
		if ok && n.CmpAbs(big.NewInt(maxFactorial)) > 0 {
			p.addErrorf("factorial(%s) is too large to evaluate", n.String())
			continue
		}
		x = ast.Call{Name: "factorial", Args: []ast.Node{x}}
	}
	return x
}

func integerValue(n ast.Node) (*big.Int, bool) {
	if i, ok := n.(ast.Integer); ok {
		return i.Value, true
	}
	return nil, false
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.current()
	switch tok.Type {
	case token.NUMBER:
		p.advance()
		return parseNumberLiteral(tok.Value)
	case token.LPAREN:
		p.advance()
		inner := p.parseAdditive()
		if rk, ok := relKind(p.current().Type); ok {
			p.advance()
			rhs := p.parseAdditive()
			inner = ast.Relation{Kind: rk, Lhs: inner, Rhs: rhs}
		}
		if !p.match(token.RPAREN) {
			p.addErrorf("expected ')' at offset %d", p.current().Offset)
		}
		return inner
	case token.IDENTIFIER:
		return p.parseIdentifier()
	default:
		p.advance()
		p.addErrorf("unexpected token %s at offset %d", tok.Type.String(), tok.Offset)
		return ast.NewInteger(0)
	}
}

func (p *Parser) parseIdentifier() ast.Node {
	name := p.current().Value
	p.advance()

	if p.current().Type == token.LPAREN {
		if p.table.IsFunction(name) {
			return p.parseCallArgs(name)
		}
		if suggestion := p.table.Suggest(name); suggestion != "" {
			p.addErrorf("unknown function %q, did you mean %q?", name, suggestion)
		} else {
			p.addErrorf("unknown function %q", name)
		}
		return p.parseCallArgs(name)
	}

	if name == "factorial" {
		p.addErrorf("factorial requires an argument")
		return ast.NewInteger(0)
	}

	if p.table.IsConstant(name) {
		return ast.Symbol{Name: name}
	}
	if p.table.IsUserRegistered(name) || len(name) == 1 {
		return ast.Symbol{Name: name}
	}
	// Unregistered multi-character identifier: split into single-character
	// symbols multiplied together, e.g. "xyz" -> x*y*z.
	factors := make([]ast.Node, len(name))
	for i, r := range name {
		factors[i] = ast.Symbol{Name: string(r)}
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return ast.Mul{Factors: factors}
}

func (p *Parser) parseCallArgs(name string) ast.Node {
	p.advance() // consume '('
	var args []ast.Node
	if p.current().Type != token.RPAREN {
		args = append(args, p.parseAdditive())
		for p.match(token.COMMA) {
			args = append(args, p.parseAdditive())
		}
	}
	if !p.match(token.RPAREN) {
		p.addErrorf("expected ')' to close call to %s", name)
	}
	if name == "factorial" && len(args) == 1 {
		if n, ok := integerValue(args[0]); ok && n.CmpAbs(big.NewInt(maxFactorial)) > 0 {
			p.addErrorf("factorial(%s) is too large to evaluate", n.String())
		}
	}
	if (name == "log" || name == "Log") && len(args) == 1 {
		args = append(args, defaultLogBase(p.table))
	}
	return ast.Call{Name: name, Args: args}
}

// defaultLogBase supplies log(x)'s implicit second argument: base 10,
// unless the natural_logarithm hint is active, in which case the base is
// Euler's number (represented as the zero-argument call "E" rather than
// the symbol "e", since "e" may simultaneously be in use as an ordinary
// free variable).
func defaultLogBase(table *symbols.Table) ast.Node {
	if table.NaturalLog() {
		return ast.Call{Name: "E"}
	}
	return ast.NewInteger(10)
}

// parseNumberLiteral turns a lexed NUMBER token into an Integer or Float
// node. It never produces a Rational — those only arise from simplifier
// arithmetic, never from source text.
func parseNumberLiteral(s string) ast.Node {
	if !strings.ContainsAny(s, ".eE") {
		if n, ok := new(big.Int).SetString(s, 10); ok {
			return ast.Integer{Value: n}
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ast.NewInteger(0)
	}
	return ast.Float{Value: f}
}
