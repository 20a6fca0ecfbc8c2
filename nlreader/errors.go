package nlreader

import (
	"errors"
	"fmt"
)

// DefaultSourceName names in-memory sources in diagnostics.
const DefaultSourceName = "(input)"

// Sentinel causes carried by ParseError. Match them with errors.Is.
var (
	ErrInvalidFormat     = errors.New("invalid format")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExpectedInteger   = errors.New("expected integer")
	ErrExpectedDouble    = errors.New("expected double")
	ErrExpectedName      = errors.New("expected name")
	ErrExpectedNewline   = errors.New("expected newline")
	ErrNumberTooBig      = errors.New("number is too big")
	ErrTooManyOptions    = errors.New("too many options")
	ErrOutOfBounds       = errors.New("integer out of bounds")
	ErrUnexpectedEOF     = errors.New("unexpected end of input")
	ErrConcurrentRead    = errors.New("nlreader: read already in progress")
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// FormatError means the stream does not start with a known format letter.
	FormatError ErrorKind = iota
	// LexicalError means a token could not be read as the expected kind.
	LexicalError
	// RangeError means a number does not fit its field.
	RangeError
	// CardinalityError means a declared count exceeds a fixed maximum.
	CardinalityError
	// StructuralError means a segment tag or body is malformed.
	StructuralError
	// HandlerError means a header or segment handler returned an error.
	HandlerError
)

var errorKindNames = map[ErrorKind]string{
	FormatError:      "format",
	LexicalError:     "lexical",
	RangeError:       "range",
	CardinalityError: "cardinality",
	StructuralError:  "structural",
	HandlerError:     "handler",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError is the only error type a read returns.
type ParseError struct {
	Source  string
	Pos     Position
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Pos.Line, e.Pos.Column, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// report builds the positioned error for the current source. Every
// diagnostic in the package goes through here.
func (t *Tokenizer) report(pos Position, kind ErrorKind, cause error, format string, args ...any) *ParseError {
	return &ParseError{
		Source:  t.name,
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Errorf reports a structural error at pos. Segment handlers use it to
// reject malformed bodies with the same formatting as the reader.
func (t *Tokenizer) Errorf(pos Position, format string, args ...any) error {
	return t.report(pos, StructuralError, nil, format, args...)
}

// wrapHandlerError positions an error returned by a handler. A ParseError
// from the handler passes through untouched.
func (t *Tokenizer) wrapHandlerError(pos Position, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe
	}
	return t.report(pos, HandlerError, err, "%v", err)
}
