package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphysics/equality-checker/token"
)

func typesOf(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenizeSimpleExpression(t *testing.T) {
	toks, err := New("2*x + 1", Maths).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.NUMBER, token.STAR, token.IDENTIFIER, token.PLUS, token.NUMBER, token.EOF,
	}, typesOf(toks))
}

func TestTokenizeCaretIsCaretInMaths(t *testing.T) {
	toks, err := New("x^2", Maths).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, token.CARET, toks[1].Type)
}

func TestTokenizeCaretIsXorInLogic(t *testing.T) {
	toks, err := New("A^B", Logic).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, token.XOR, toks[1].Type)
}

func TestTokenizeRelationalOperators(t *testing.T) {
	toks, err := New("x<=y", Maths).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []token.Type{token.IDENTIFIER, token.LE, token.IDENTIFIER, token.EOF}, typesOf(toks))
}

func TestTokenizeFloatAndExponent(t *testing.T) {
	toks, err := New("3.14e-2", Maths).Tokenize()
	require.NoError(t, err)
	assert.Equal(t, token.NUMBER, toks[0].Type)
	assert.Equal(t, "3.14e-2", toks[0].Value)
}

func TestTokenizeUnexpectedCharacterErrors(t *testing.T) {
	_, err := New("x @ y", Maths).Tokenize()
	assert.Error(t, err)
}
