package nlreader

// Handler receives the header of a stream. HandleHeader is called exactly
// once per successful header read, before any segment is dispatched.
// Returning an error aborts the read.
type Handler interface {
	HandleHeader(h Header) error
}

// SegmentHandler receives segments after the header. The tokenizer is
// positioned at the start of the segment body; the handler may read as
// much of the body as it wants and the reader skips whatever is left.
//
// A Handler that also implements SegmentHandler receives every segment
// that has no handler in Config.Segments.
type SegmentHandler interface {
	HandleSegment(seg Segment, t *Tokenizer) error
}

// SegmentHandlerFunc adapts a function to SegmentHandler.
type SegmentHandlerFunc func(seg Segment, t *Tokenizer) error

// HandleSegment calls f(seg, t).
func (f SegmentHandlerFunc) HandleSegment(seg Segment, t *Tokenizer) error {
	return f(seg, t)
}

// HandlerFuncs implements Handler and SegmentHandler with optional
// callbacks. A nil field is a no-op.
type HandlerFuncs struct {
	HeaderFunc  func(h Header) error
	SegmentFunc func(seg Segment, t *Tokenizer) error
}

func (f HandlerFuncs) HandleHeader(h Header) error {
	if f.HeaderFunc == nil {
		return nil
	}
	return f.HeaderFunc(h)
}

func (f HandlerFuncs) HandleSegment(seg Segment, t *Tokenizer) error {
	if f.SegmentFunc == nil {
		return nil
	}
	return f.SegmentFunc(seg, t)
}
