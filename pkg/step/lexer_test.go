package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer([]byte(src))
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestLexer_EntityReference(t *testing.T) {
	toks := collectTokens(t, "#42")
	require.Len(t, toks, 2)
	assert.Equal(t, TokHash, toks[0].Kind)
	assert.EqualValues(t, 42, toks[0].Int)
}

func TestLexer_EnumVsBooleanDisambiguation(t *testing.T) {
	toks := collectTokens(t, ".T. .F. .TRUE. .FALSE. .ELEMENT.")
	for _, tok := range toks[:len(toks)-1] {
		assert.True(t, tok.EnumLiteral)
	}
	assert.Equal(t, "T", toks[0].Text)
	assert.Equal(t, "ELEMENT", toks[4].Text)
}

func TestLexer_HyphenatedKeyword(t *testing.T) {
	toks := collectTokens(t, "ISO-10303-21")
	require.Len(t, toks, 2)
	assert.Equal(t, TokKeyword, toks[0].Kind)
	assert.Equal(t, "ISO-10303-21", toks[0].Text)
}

func TestLexer_NestedComment(t *testing.T) {
	toks := collectTokens(t, "/* outer /* inner */ still-comment */#1")
	require.Len(t, toks, 2)
	assert.Equal(t, TokHash, toks[0].Kind)
}

func TestLexer_RealVsFieldTerminator(t *testing.T) {
	toks := collectTokens(t, "3.14,7.,-2.5E3")
	require.Len(t, toks, 6)
	assert.Equal(t, TokReal, toks[0].Kind)
	assert.Equal(t, 3.14, toks[0].Real)
	assert.Equal(t, TokReal, toks[2].Kind)
	assert.Equal(t, 7.0, toks[2].Real)
	assert.Equal(t, TokReal, toks[4].Kind)
	assert.Equal(t, -2500.0, toks[4].Real)
}

func TestLexer_NegativeInteger(t *testing.T) {
	toks := collectTokens(t, "-17")
	require.Len(t, toks, 2)
	assert.Equal(t, TokInteger, toks[0].Kind)
	assert.EqualValues(t, -17, toks[0].Int)
}
