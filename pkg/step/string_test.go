package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStepString_X2Escape(t *testing.T) {
	got, err := decodeStepString(`\X2\00D3\X0\`, 0)
	require.NoError(t, err)
	assert.Equal(t, "Ó", got)
	assert.Equal(t, []byte{0xC3, 0x93}, []byte(got))
}

func TestDecodeStepString_X4Escape(t *testing.T) {
	got, err := decodeStepString(`\X4\0001F600\X0\`, 0)
	require.NoError(t, err)
	assert.Equal(t, "😀", got)
}

func TestDecodeStepString_X1ByteEscape(t *testing.T) {
	got, err := decodeStepString(`caf\X\E9`, 0)
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestDecodeStepString_SEscape(t *testing.T) {
	got, err := decodeStepString(`\S\A`, 0)
	require.NoError(t, err)
	assert.Equal(t, string(rune(0x80|'A')), got)
}

func TestDecodeStepString_VerbatimUnrecognizedEscape(t *testing.T) {
	got, err := decodeStepString(`\Q\plain`, 0)
	require.NoError(t, err)
	assert.Equal(t, `\Q\plain`, got)
}

func TestDecodeStepString_TruncatedX2Fails(t *testing.T) {
	_, err := decodeStepString(`\X2\00D3`, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `X0`)
}

func TestDecodeStepString_TruncatedXFails(t *testing.T) {
	_, err := decodeStepString(`\X\E`, 0)
	require.Error(t, err)
}

func TestDecodeStepString_TruncatedSFails(t *testing.T) {
	_, err := decodeStepString(`\S\`, 0)
	require.Error(t, err)
}

func TestLexer_DoubledApostrophe(t *testing.T) {
	l := NewLexer([]byte(`'it''s a wall';`))
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokString, tok.Kind)
	assert.Equal(t, "it's a wall", tok.Text)
}
