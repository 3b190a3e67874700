// Package parser builds canonical ast.Node trees from maths and logic
// token streams. It never evaluates arithmetic and never simplifies an
// identity while parsing: "2+3" parses to Add(2,3), "log(x,10)" stays an
// uninterpreted Call, "cos(-x)" stays Call{cos, Mul(-1,x)}.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/isaacphysics/equality-checker/ast"
	"github.com/isaacphysics/equality-checker/checkerr"
	"github.com/isaacphysics/equality-checker/lexer"
	"github.com/isaacphysics/equality-checker/symbols"
	"github.com/isaacphysics/equality-checker/token"
)

const maxFactorial = 50

// Parser is a recursive-descent parser shared by both maths and logic
// mode; the grammar functions it dispatches to differ per mode, but the
// token-stream bookkeeping (pos/advance/match/current/peek) does not.
type Parser struct {
	input  string
	tokens []token.Token
	pos    int
	mode   symbols.Mode
	table  *symbols.Table
	errors []string
}

// Parse tokenizes and parses input under the given mode, consulting table
// for identifier resolution.
func Parse(input string, mode symbols.Mode, table *symbols.Table) (ast.Node, error) {
	lexMode := lexer.Maths
	if mode == symbols.Logic {
		lexMode = lexer.Logic
	}
	toks, err := lexer.New(input, lexMode).Tokenize()
	if err != nil {
		return nil, checkerr.Wrap(checkerr.KindParseError, "tokenising failed", err)
	}
	if len(toks) == 1 && toks[0].Type == token.EOF {
		return nil, checkerr.New(checkerr.KindEmptyInput, "empty expression")
	}
	p := &Parser{input: input, tokens: toks, mode: mode, table: table}

	var node ast.Node
	if mode == symbols.Logic {
		node = p.parseLogicTop()
	} else {
		node = p.parseMathsTop()
	}
	if len(p.errors) > 0 {
		return nil, checkerr.New(checkerr.KindParseError, strings.Join(p.errors, "; "))
	}
	if !p.atEnd() {
		return nil, checkerr.New(checkerr.KindParseError,
			"unexpected trailing input at offset "+strconv.Itoa(p.current().Offset))
	}
	return node, nil
}

func (p *Parser) current() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	if p.pos+n >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) atEnd() bool { return p.current().Type == token.EOF }

func (p *Parser) advance() token.Token {
	t := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.current().Type == t {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) addErrorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

// canStartPrimary reports whether t can begin a new operand, used to
// detect implicit multiplication: "2x", "(x+1)(x-2)", "2 x" all have two
// adjacent primaries with no explicit operator between them.
func canStartPrimary(t token.Token) bool {
	switch t.Type {
	case token.NUMBER, token.IDENTIFIER, token.LPAREN:
		return true
	default:
		return false
	}
}
