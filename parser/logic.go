package parser

import (
	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/token"
)

// parseLogicTop parses a boolean formula: Or is the loosest infix
// connective available in surface syntax (Implies only exists as the
// function call Implies(A, B), since '-' isn't in the logic whitelist and
// so no infix arrow can be written).
func (p *Parser) parseLogicTop() ast.Node {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Node {
	args := []ast.Node{p.parseXor()}
	for p.match(token.OR) {
		args = append(args, p.parseXor())
	}
	if len(args) == 1 {
		return args[0]
	}
	return ast.Or{Args: args}
}

func (p *Parser) parseXor() ast.Node {
	args := []ast.Node{p.parseAnd()}
	for p.match(token.XOR) {
		args = append(args, p.parseAnd())
	}
	if len(args) == 1 {
		return args[0]
	}
	return ast.Xor{Args: args}
}

func (p *Parser) parseAnd() ast.Node {
	args := []ast.Node{p.parseNot()}
	for p.match(token.AND) {
		args = append(args, p.parseNot())
	}
	if len(args) == 1 {
		return args[0]
	}
	return ast.And{Args: args}
}

func (p *Parser) parseNot() ast.Node {
	if p.match(token.NOT) {
		return ast.Not{X: p.parseNot()}
	}
	return p.parseRelationOrAtom()
}

// parseRelationOrAtom parses a single boolean atom, optionally followed by
// a relation operator making it a Relation node (e.g. comparing two 0/1
// literals), matching maths mode's relation support per the data model's
// "Eq, Rel(<, ≤, >, ≥) (both)" entry.
func (p *Parser) parseRelationOrAtom() ast.Node {
	lhs := p.parseAtom()
	if kind, ok := relKind(p.current().Type); ok {
		p.advance()
		rhs := p.parseAtom()
		return ast.Relation{Kind: kind, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseAtom() ast.Node {
	tok := p.current()
	switch tok.Type {
	case token.LPAREN:
		p.advance()
		inner := p.parseOr()
		if !p.match(token.RPAREN) {
			p.addErrorf("expected ')' at offset %d", p.current().Offset)
		}
		return inner
	case token.NUMBER:
		p.advance()
		switch tok.Value {
		case "0":
			return ast.BoolConst{Value: false}
		case "1":
			return ast.BoolConst{Value: true}
		default:
			p.addErrorf("logic mode only accepts 0 or 1 as literals, got %q", tok.Value)
			return ast.BoolConst{Value: false}
		}
	case token.IDENTIFIER:
		return p.parseLogicIdentifier()
	default:
		p.advance()
		p.addErrorf("unexpected token %s at offset %d", tok.Type.String(), tok.Offset)
		return ast.BoolConst{Value: false}
	}
}

func (p *Parser) parseLogicIdentifier() ast.Node {
	name := p.current().Value
	p.advance()

	switch name {
	case "True":
		return ast.BoolConst{Value: true}
	case "False":
		return ast.BoolConst{Value: false}
	}

	if p.current().Type == token.LPAREN {
		return p.parseLogicCall(name)
	}

	return ast.Symbol{Name: name}
}

func (p *Parser) parseLogicCall(name string) ast.Node {
	if !p.table.IsFunction(name) {
		if suggestion := p.table.Suggest(name); suggestion != "" {
			p.addErrorf("unknown connective %q, did you mean %q?", name, suggestion)
		} else {
			p.addErrorf("unknown connective %q", name)
		}
	}
	p.advance() // consume '('
	var args []ast.Node
	if p.current().Type != token.RPAREN {
		args = append(args, p.parseOr())
		for p.match(token.COMMA) {
			args = append(args, p.parseOr())
		}
	}
	if !p.match(token.RPAREN) {
		p.addErrorf("expected ')' to close call to %s", name)
	}

	switch name {
	case "And":
		return ast.And{Args: args}
	case "Or":
		return ast.Or{Args: args}
	case "Xor":
		return ast.Xor{Args: args}
	case "Not":
		if len(args) != 1 {
			p.addErrorf("Not takes exactly one argument")
			return ast.BoolConst{Value: false}
		}
		return ast.Not{X: args[0]}
	case "Implies":
		if len(args) != 2 {
			p.addErrorf("Implies takes exactly two arguments")
			return ast.BoolConst{Value: false}
		}
		return ast.Implies{Antecedent: args[0], Consequent: args[1]}
	case "Eq":
		if len(args) != 2 {
			p.addErrorf("Eq takes exactly two arguments")
			return ast.BoolConst{Value: false}
		}
		return ast.Relation{Kind: ast.RelEq, Lhs: args[0], Rhs: args[1]}
	default:
		return ast.Call{Name: name, Args: args}
	}
}
