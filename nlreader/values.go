package nlreader

import (
	"errors"
	"math"
	"strconv"
)

// Integer fields are 32-bit signed in the format; anything larger is
// rejected rather than truncated.
const (
	maxInt = math.MaxInt32
	minInt = math.MinInt32
)

// ReadUint reads a non-negative integer. A sign is not accepted.
func (t *Tokenizer) ReadUint() (int, error) {
	n, _, err := t.readUint()
	return n, err
}

// ReadInt reads an integer with an optional leading '-'.
func (t *Tokenizer) ReadInt() (int, error) {
	n, _, err := t.readInt()
	return n, err
}

func (t *Tokenizer) readUint() (int, Position, error) {
	t.skipSpace()
	pos := t.Pos()
	if !isDigit(t.peek()) {
		return 0, pos, t.report(pos, LexicalError, ErrExpectedInteger, "expected integer")
	}
	n, ok := t.scanDigits(maxInt)
	if !ok {
		return 0, pos, t.report(pos, RangeError, ErrNumberTooBig, "number is too big")
	}
	return int(n), pos, nil
}

func (t *Tokenizer) readInt() (int, Position, error) {
	t.skipSpace()
	pos := t.Pos()
	neg := t.peek() == '-'
	if neg {
		t.advance()
	}
	if !isDigit(t.peek()) {
		return 0, pos, t.report(pos, LexicalError, ErrExpectedInteger, "expected integer")
	}
	limit := uint64(maxInt)
	if neg {
		limit = uint64(-minInt)
	}
	n, ok := t.scanDigits(limit)
	if !ok {
		return 0, pos, t.report(pos, RangeError, ErrNumberTooBig, "number is too big")
	}
	if neg {
		return int(-int64(n)), pos, nil
	}
	return int(n), pos, nil
}

// scanDigits consumes a run of digits. It keeps consuming past the limit so
// the cursor always ends after the whole literal.
func (t *Tokenizer) scanDigits(limit uint64) (uint64, bool) {
	var n uint64
	ok := true
	for isDigit(t.peek()) {
		n = n*10 + uint64(t.advance()-'0')
		if n > limit {
			ok = false
			n = limit + 1
		}
	}
	return n, ok
}

// ReadDouble reads a floating-point number in any form strconv accepts,
// including inf and nan. Underflow yields the rounded value; overflow is an
// error.
func (t *Tokenizer) ReadDouble() (float64, error) {
	t.skipSpace()
	pos := t.Pos()
	literal := t.scanWord()
	if literal == "" {
		return 0, t.report(pos, LexicalError, ErrExpectedDouble, "expected double")
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			if math.IsInf(f, 0) {
				return 0, t.report(pos, RangeError, ErrNumberTooBig, "number is too big")
			}
			return f, nil
		}
		return 0, t.report(pos, LexicalError, ErrExpectedDouble, "expected double")
	}
	return f, nil
}

// ReadName reads a run of non-blank characters, such as a function or
// suffix name.
func (t *Tokenizer) ReadName() (string, error) {
	t.skipSpace()
	pos := t.Pos()
	name := t.scanWord()
	if name == "" {
		return "", t.report(pos, LexicalError, ErrExpectedName, "expected name")
	}
	return name, nil
}

func (t *Tokenizer) scanWord() string {
	start := t.pos
	for !t.AtEnd() && !isDelimiter(t.peek()) {
		t.advance()
	}
	return string(t.src[start:t.pos])
}

// readCountedString reads the <len>:<bytes> form of a string literal. The
// bytes may contain anything, including line terminators.
func (t *Tokenizer) readCountedString() (string, error) {
	n, _, err := t.readUint()
	if err != nil {
		return "", err
	}
	if t.peek() != ':' {
		return "", t.report(t.Pos(), StructuralError, nil, "expected ':'")
	}
	t.advance()
	if len(t.src)-t.pos < n {
		return "", t.report(t.Pos(), StructuralError, ErrUnexpectedEOF, "unexpected end of input")
	}
	start := t.pos
	for range n {
		t.advance()
	}
	return string(t.src[start:t.pos]), nil
}
