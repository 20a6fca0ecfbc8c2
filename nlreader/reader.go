package nlreader

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// State is the position of a read in the reader state machine.
type State int

const (
	StateStart State = iota
	StateReadingHeader
	StateReadingOptions
	StateReadingHeaderFields
	StateAwaitingSegment
	StateDispatchingSegment
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateStart:               "start",
	StateReadingHeader:       "reading_header",
	StateReadingOptions:      "reading_options",
	StateReadingHeaderFields: "reading_header_fields",
	StateAwaitingSegment:     "awaiting_segment",
	StateDispatchingSegment:  "dispatching_segment",
	StateDone:                "done",
	StateFailed:              "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Config holds optional reader settings. The zero value reads the whole
// stream and dispatches segments to the handler if it implements
// SegmentHandler.
type Config struct {
	// Events receives state transitions. May be nil.
	Events *EventEmitter
	// Segments routes segments by kind ahead of the handler.
	Segments *SegmentRegistry
	// HeaderOnly stops the read once the header has been handled.
	HeaderOnly bool
}

// Reader reads .nl streams and reports to a Handler. A Reader runs one
// read at a time; a read started while another is in progress fails with
// ErrConcurrentRead. Distinct readers share nothing.
type Reader struct {
	handler Handler
	config  Config

	mu    sync.Mutex
	busy  bool
	state State
}

// NewReader creates a Reader. A nil handler ignores the header; a nil
// config uses defaults.
func NewReader(handler Handler, config *Config) *Reader {
	if handler == nil {
		handler = HandlerFuncs{}
	}
	r := &Reader{handler: handler}
	if config != nil {
		r.config = *config
	}
	return r
}

// State returns the state of the current or most recent read.
func (r *Reader) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Reader) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
}

// ReadString reads an in-memory stream named DefaultSourceName.
func (r *Reader) ReadString(text string) error {
	return r.ReadBytes(DefaultSourceName, []byte(text))
}

// Read reads the whole of src and parses it. name appears in diagnostics.
func (r *Reader) Read(name string, src io.Reader) error {
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return r.ReadBytes(name, data)
}

// ReadBytes parses src. It returns nil once the stream is exhausted, or the
// first *ParseError encountered.
func (r *Reader) ReadBytes(name string, src []byte) error {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return ErrConcurrentRead
	}
	r.busy = true
	r.state = StateStart
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	rd := &read{
		reader: r,
		tok:    NewTokenizer(name, src),
		events: r.config.Events,
	}
	return rd.run()
}

// read is the state of a single pass over one source.
type read struct {
	reader    *Reader
	tok       *Tokenizer
	events    *EventEmitter
	state     State
	headerPos Position
	segments  int
}

func (rd *read) setState(s State) {
	rd.state = s
	rd.reader.setState(s)
}

func (rd *read) run() error {
	start := time.Now()
	source := rd.tok.Source()
	rd.events.Emit(ReadStartedEvent(source))

	if err := rd.readAll(); err != nil {
		failedIn := rd.state
		rd.setState(StateFailed)
		rd.events.Emit(ReadFailedEvent(source, err, failedIn))
		return err
	}

	rd.setState(StateDone)
	rd.events.Emit(ReadCompletedEvent(source, rd.segments, time.Since(start)))
	return nil
}

func (rd *read) readAll() error {
	rd.setState(StateReadingHeader)
	h, err := rd.readHeader()
	if err != nil {
		return err
	}
	rd.events.Emit(HeaderReadEvent(rd.tok.Source(), h))
	if err := rd.reader.handler.HandleHeader(h); err != nil {
		return rd.tok.wrapHandlerError(rd.headerPos, err)
	}
	if rd.reader.config.HeaderOnly {
		return nil
	}
	return rd.dispatchSegments(&h)
}

// readHeader fills a Header from the first ten lines of the stream. The
// header is returned only when every line has been read.
func (rd *read) readHeader() (Header, error) {
	t := rd.tok
	var h Header

	// Format errors point at the start of the stream even when blanks
	// precede the format letter.
	pos := t.Pos()
	rd.headerPos = pos
	t.skipSpace()
	if t.AtEnd() {
		return Header{}, t.report(pos, FormatError, ErrInvalidFormat, "expected format")
	}
	switch c := t.advance(); Format(c) {
	case FormatText, FormatBinary:
		h.Format = Format(c)
	default:
		return Header{}, t.report(pos, FormatError, ErrInvalidFormat, "invalid format '%c'", c)
	}

	rd.setState(StateReadingOptions)
	if err := readOptions(t, &h); err != nil {
		return Header{}, err
	}
	if err := t.ReadTillEndOfLine(); err != nil {
		return Header{}, err
	}

	rd.setState(StateReadingHeaderFields)
	for _, line := range h.layout() {
		for _, field := range line.required {
			n, err := t.ReadUint()
			if err != nil {
				return Header{}, err
			}
			*field = n
		}
		for _, field := range line.optional {
			if !t.digitAhead() {
				break
			}
			n, err := t.ReadUint()
			if err != nil {
				return Header{}, err
			}
			*field = n
		}
		if err := t.ReadTillEndOfLine(); err != nil {
			return Header{}, err
		}
	}
	return h, nil
}

// readOptions reads the option count that follows the format letter and
// then that many option values.
func readOptions(t *Tokenizer, h *Header) error {
	n, pos, err := t.readUint()
	if err != nil {
		return err
	}
	if n > MaxOptions {
		return t.report(pos, CardinalityError, ErrTooManyOptions, "too many options")
	}
	h.NumOptions = n
	for i := range n {
		v, err := t.ReadInt()
		if err != nil {
			return err
		}
		h.Options[i] = v
	}
	if n > vbtolOption && h.Options[vbtolOption] == readVBTol {
		h.AMPLVBTol, err = t.ReadDouble()
		if err != nil {
			return err
		}
	}
	return nil
}

func (rd *read) segmentHandler(kind SegmentKind) SegmentHandler {
	if reg := rd.reader.config.Segments; reg != nil {
		if h := reg.Resolve(kind); h != nil {
			return h
		}
	}
	if h, ok := rd.reader.handler.(SegmentHandler); ok {
		return h
	}
	return nil
}

// dispatchSegments reads tag lines until the end of input, handing each
// segment to its handler and skipping whatever body the handler leaves.
func (rd *read) dispatchSegments(h *Header) error {
	t := rd.tok
	for {
		rd.setState(StateAwaitingSegment)
		t.skipBlankLines()
		if t.AtEnd() {
			return nil
		}
		if h.Format == FormatBinary {
			return t.report(t.Pos(), FormatError, ErrUnsupportedFormat, "unsupported format '%c'", byte(h.Format))
		}

		seg, err := readSegment(t, h)
		if err != nil {
			return err
		}

		rd.setState(StateDispatchingSegment)
		index := rd.segments
		rd.segments++
		rd.events.Emit(SegmentStartedEvent(seg, index))

		bodyStart := t.line
		if handler := rd.segmentHandler(seg.Kind); handler != nil {
			if err := handler.HandleSegment(seg, t); err != nil {
				return t.wrapHandlerError(seg.Pos, err)
			}
		}
		if err := skipBody(t, seg, bodyStart); err != nil {
			return err
		}
		rd.events.Emit(SegmentCompletedEvent(seg, index))
	}
}

// Read parses src with a fresh Reader.
func Read(name string, src io.Reader, handler Handler) error {
	return NewReader(handler, nil).Read(name, src)
}

// ReadString parses an in-memory stream with a fresh Reader.
func ReadString(text string, handler Handler) error {
	return NewReader(handler, nil).ReadString(text)
}

// ParseHeader reads only the header of src.
func ParseHeader(name string, src []byte) (Header, error) {
	var header Header
	handler := HandlerFuncs{HeaderFunc: func(h Header) error {
		header = h
		return nil
	}}
	if err := NewReader(handler, &Config{HeaderOnly: true}).ReadBytes(name, src); err != nil {
		return Header{}, err
	}
	return header, nil
}
