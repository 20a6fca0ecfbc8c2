package nlreader

// Tokenizer reads tokens and typed fields from the text of an .nl stream.
// The header grammar is positional, so most callers use the typed reads
// (ReadUint, ReadInt, ReadDouble, ReadName, ReadTillEndOfLine) rather than
// Next.
type Tokenizer struct {
	name string
	src  []byte
	pos  int // current byte offset
	line int // current line (1-based)
	col  int // current column (1-based)
}

// NewTokenizer creates a Tokenizer over src. name appears in diagnostics;
// an empty name becomes DefaultSourceName.
func NewTokenizer(name string, src []byte) *Tokenizer {
	if name == "" {
		name = DefaultSourceName
	}
	return &Tokenizer{name: name, src: src, line: 1, col: 1}
}

// Source returns the name used in diagnostics.
func (t *Tokenizer) Source() string { return t.name }

// Pos returns the position of the next unread byte.
func (t *Tokenizer) Pos() Position {
	return Position{Line: t.line, Column: t.col, Offset: t.pos}
}

// AtEnd reports whether all input has been consumed.
func (t *Tokenizer) AtEnd() bool {
	return t.pos >= len(t.src)
}

func (t *Tokenizer) peek() byte {
	if t.AtEnd() {
		return 0
	}
	return t.src[t.pos]
}

func (t *Tokenizer) advance() byte {
	ch := t.src[t.pos]
	t.pos++
	if ch == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return ch
}

// skipSpace skips blanks within the current line.
func (t *Tokenizer) skipSpace() {
	for !t.AtEnd() {
		switch t.peek() {
		case ' ', '\t', '\r':
			t.advance()
		default:
			return
		}
	}
}

// skipComment discards a # comment up to, but not including, the line
// terminator.
func (t *Tokenizer) skipComment() {
	if t.peek() != '#' {
		return
	}
	for !t.AtEnd() && t.peek() != '\n' {
		t.advance()
	}
}

// skipBlankLines skips blanks, comments and empty lines.
func (t *Tokenizer) skipBlankLines() {
	for {
		t.skipSpace()
		t.skipComment()
		if t.AtEnd() || t.peek() != '\n' {
			return
		}
		t.advance()
	}
}

// skipLine discards the rest of the current line including its terminator.
// It returns false if input ended before a terminator was found.
func (t *Tokenizer) skipLine() bool {
	for !t.AtEnd() {
		if t.advance() == '\n' {
			return true
		}
	}
	return false
}

// ReadTillEndOfLine consumes trailing blanks, an optional comment and the
// line terminator. End of input also ends a line.
func (t *Tokenizer) ReadTillEndOfLine() error {
	t.skipSpace()
	t.skipComment()
	if t.AtEnd() {
		return nil
	}
	if t.peek() != '\n' {
		return t.report(t.Pos(), LexicalError, ErrExpectedNewline, "expected newline")
	}
	t.advance()
	return nil
}

// digitAhead reports whether another unsigned integer follows on the
// current line.
func (t *Tokenizer) digitAhead() bool {
	t.skipSpace()
	return isDigit(t.peek())
}

// Next returns the next token on the stream. Comments are dropped; the line
// terminator that ends a comment is still returned as TokenNewline.
func (t *Tokenizer) Next() Token {
	t.skipSpace()
	t.skipComment()

	pos := t.Pos()
	if t.AtEnd() {
		return Token{Kind: TokenEOF, Pos: pos}
	}
	if t.peek() == '\n' {
		t.advance()
		return Token{Kind: TokenNewline, Literal: "\n", Pos: pos}
	}

	start := t.pos
	for !t.AtEnd() && !isDelimiter(t.peek()) {
		t.advance()
	}
	literal := string(t.src[start:t.pos])
	return Token{Kind: classify(literal), Literal: literal, Pos: pos}
}

// classify decides whether a literal is an integer, a real or a name.
func classify(s string) TokenKind {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i == len(s) {
		if digits > 0 {
			return TokenInteger
		}
		return TokenName
	}
	if s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return TokenName
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return TokenName
		}
	}
	if i != len(s) {
		return TokenName
	}
	return TokenReal
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '#':
		return true
	}
	return false
}
