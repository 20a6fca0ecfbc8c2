package nlreader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	tok := NewTokenizer("", []byte(src))
	var tokens []Token
	for {
		next := tok.Next()
		tokens = append(tokens, next)
		if next.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func TestTokenizerKinds(t *testing.T) {
	tokens := collectTokens(t, "12 -3 4.5 1e3 abc\n")
	expected := []TokenKind{
		TokenInteger, TokenInteger, TokenReal, TokenReal, TokenName, TokenNewline, TokenEOF,
	}
	require.Len(t, tokens, len(expected))
	for i, tok := range tokens {
		assert.Equal(t, expected[i], tok.Kind, "token %d: %s", i, tok.Literal)
	}
	assert.Equal(t, "-3", tokens[1].Literal)
	assert.Equal(t, "abc", tokens[4].Literal)
}

func TestTokenizerClassify(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"0", TokenInteger},
		{"+7", TokenInteger},
		{".5", TokenReal},
		{"5.", TokenReal},
		{"1.5e-3", TokenReal},
		{"1e", TokenName},
		{"-", TokenName},
		{"12ab", TokenName},
		{"x1", TokenName},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, classify(tt.input), "input: %s", tt.input)
	}
}

func TestTokenizerCommentsKeepLineBoundary(t *testing.T) {
	tokens := collectTokens(t, "1 # comment\n2")
	require.Len(t, tokens, 4) // 1, newline, 2, EOF
	assert.Equal(t, TokenInteger, tokens[0].Kind)
	assert.Equal(t, TokenNewline, tokens[1].Kind)
	assert.Equal(t, Position{Line: 1, Column: 12, Offset: 11}, tokens[1].Pos)
	assert.Equal(t, "2", tokens[2].Literal)
	assert.Equal(t, 2, tokens[2].Pos.Line)
	assert.Equal(t, 1, tokens[2].Pos.Column)
}

func TestTokenizerPositionAfterComment(t *testing.T) {
	tokens := collectTokens(t, "# only comment\n  7")
	require.Len(t, tokens, 3) // newline, 7, EOF
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 15, tokens[0].Pos.Column)
	assert.Equal(t, 2, tokens[1].Pos.Line)
	assert.Equal(t, 3, tokens[1].Pos.Column)
}

func TestTokenizerTabIsOneColumn(t *testing.T) {
	tokens := collectTokens(t, "\t9")
	require.Len(t, tokens, 2)
	assert.Equal(t, 2, tokens[0].Pos.Column)
}

func TestTokenizerEmpty(t *testing.T) {
	tokens := collectTokens(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenEOF, tokens[0].Kind)
	assert.True(t, tokens[0].Pos.IsValid())
}

func TestTokenizerDefaultSourceName(t *testing.T) {
	assert.Equal(t, DefaultSourceName, NewTokenizer("", nil).Source())
	assert.Equal(t, "model.nl", NewTokenizer("model.nl", nil).Source())
}

func TestTokenizerReadTillEndOfLine(t *testing.T) {
	tok := NewTokenizer("", []byte("  # trailing\nX"))
	require.NoError(t, tok.ReadTillEndOfLine())
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 13}, tok.Pos())

	tok = NewTokenizer("", []byte("   "))
	require.NoError(t, tok.ReadTillEndOfLine())
	assert.True(t, tok.AtEnd())

	tok = NewTokenizer("", []byte("  x"))
	err := tok.ReadTillEndOfLine()
	assert.EqualError(t, err, "(input):1:3: expected newline")
	assert.ErrorIs(t, err, ErrExpectedNewline)
}

func TestTokenizerCRLF(t *testing.T) {
	tok := NewTokenizer("", []byte("4\r\n5"))
	n, err := tok.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, tok.ReadTillEndOfLine())
	n, err = tok.ReadUint()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestTokenizerDigitAhead(t *testing.T) {
	tok := NewTokenizer("", []byte("  3 # c"))
	assert.True(t, tok.digitAhead())
	_, err := tok.ReadUint()
	require.NoError(t, err)
	assert.False(t, tok.digitAhead())
}

func TestTokenizerSkipBlankLines(t *testing.T) {
	tok := NewTokenizer("", []byte("\n  # c\n\t\nG"))
	tok.skipBlankLines()
	assert.Equal(t, byte('G'), tok.peek())
	assert.Equal(t, 4, tok.Pos().Line)
}

func TestTokenizerErrorf(t *testing.T) {
	tok := NewTokenizer("f.nl", []byte("abc"))
	err := tok.Errorf(Position{Line: 3, Column: 7}, "bad %s", "body")
	pe := requireParseError(t, err)
	assert.Equal(t, StructuralError, pe.Kind)
	assert.EqualError(t, err, "f.nl:3:7: bad body")
}

func TestReadUint(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"0", 0},
		{"42", 42},
		{"  7", 7},
		{"2147483647", math.MaxInt32},
	}
	for _, tt := range tests {
		n, err := NewTokenizer("", []byte(tt.input)).ReadUint()
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, n, "input: %s", tt.input)
	}
}

func TestReadUintErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		cause error
		kind  ErrorKind
	}{
		{"a", "(input):1:1: expected integer", ErrExpectedInteger, LexicalError},
		{"-1", "(input):1:1: expected integer", ErrExpectedInteger, LexicalError},
		{"", "(input):1:1: expected integer", ErrExpectedInteger, LexicalError},
		{" 2147483648", "(input):1:2: number is too big", ErrNumberTooBig, RangeError},
		{"99999999999999999999999", "(input):1:1: number is too big", ErrNumberTooBig, RangeError},
	}
	for _, tt := range tests {
		_, err := NewTokenizer("", []byte(tt.input)).ReadUint()
		pe := requireParseError(t, err)
		assert.EqualError(t, err, tt.msg, "input: %q", tt.input)
		assert.ErrorIs(t, err, tt.cause, "input: %q", tt.input)
		assert.Equal(t, tt.kind, pe.Kind, "input: %q", tt.input)
	}
}

func TestReadUintConsumesWholeOverflowingLiteral(t *testing.T) {
	tok := NewTokenizer("", []byte("99999999999 x"))
	_, err := tok.ReadUint()
	require.Error(t, err)
	assert.Equal(t, 12, tok.Pos().Column)
}

func TestReadInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"-1", -1},
		{"15", 15},
		{"-2147483648", math.MinInt32},
		{"2147483647", math.MaxInt32},
	}
	for _, tt := range tests {
		n, err := NewTokenizer("", []byte(tt.input)).ReadInt()
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, n, "input: %s", tt.input)
	}
}

func TestReadIntErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"-", "(input):1:1: expected integer"},
		{"-x", "(input):1:1: expected integer"},
		{"+1", "(input):1:1: expected integer"},
		{"-2147483649", "(input):1:1: number is too big"},
		{"2147483648", "(input):1:1: number is too big"},
	}
	for _, tt := range tests {
		_, err := NewTokenizer("", []byte(tt.input)).ReadInt()
		assert.EqualError(t, err, tt.msg, "input: %q", tt.input)
	}
}

func TestReadDouble(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1.5", 1.5},
		{"-2e3", -2000},
		{"0", 0},
		{"1e-400", 0},
	}
	for _, tt := range tests {
		f, err := NewTokenizer("", []byte(tt.input)).ReadDouble()
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.want, f, "input: %s", tt.input)
	}

	f, err := NewTokenizer("", []byte("inf")).ReadDouble()
	require.NoError(t, err)
	assert.True(t, math.IsInf(f, 1))
}

func TestReadDoubleErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		cause error
	}{
		{"abc", "(input):1:1: expected double", ErrExpectedDouble},
		{"", "(input):1:1: expected double", ErrExpectedDouble},
		{"  # c", "(input):1:3: expected double", ErrExpectedDouble},
		{"1e400", "(input):1:1: number is too big", ErrNumberTooBig},
	}
	for _, tt := range tests {
		_, err := NewTokenizer("", []byte(tt.input)).ReadDouble()
		assert.EqualError(t, err, tt.msg, "input: %q", tt.input)
		assert.ErrorIs(t, err, tt.cause, "input: %q", tt.input)
	}
}

func TestReadName(t *testing.T) {
	tok := NewTokenizer("", []byte(" my_func # c"))
	name, err := tok.ReadName()
	require.NoError(t, err)
	assert.Equal(t, "my_func", name)

	_, err = NewTokenizer("", []byte("\n")).ReadName()
	assert.EqualError(t, err, "(input):1:1: expected name")
}

func TestReadCountedString(t *testing.T) {
	tok := NewTokenizer("", []byte("5:hello\n"))
	s, err := tok.readCountedString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	tok = NewTokenizer("", []byte("3:a\nb"))
	s, err = tok.readCountedString()
	require.NoError(t, err)
	assert.Equal(t, "a\nb", s)
	assert.Equal(t, 2, tok.Pos().Line)

	_, err = NewTokenizer("", []byte("5:hi")).readCountedString()
	assert.EqualError(t, err, "(input):1:3: unexpected end of input")

	_, err = NewTokenizer("", []byte("3hey")).readCountedString()
	assert.EqualError(t, err, "(input):1:2: expected ':'")
}
