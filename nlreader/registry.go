package nlreader

// SegmentRegistry maps segment kinds to handlers.
// Resolution follows: registered handler -> default handler -> none.
type SegmentRegistry struct {
	handlers       map[SegmentKind]SegmentHandler
	defaultHandler SegmentHandler
}

// NewSegmentRegistry creates a registry with the given default handler.
// If defaultHandler is nil, unregistered segments are dispatched to no one
// and their bodies are skipped.
func NewSegmentRegistry(defaultHandler SegmentHandler) *SegmentRegistry {
	return &SegmentRegistry{
		handlers:       make(map[SegmentKind]SegmentHandler),
		defaultHandler: defaultHandler,
	}
}

// Register adds or replaces the handler for kind.
func (r *SegmentRegistry) Register(kind SegmentKind, handler SegmentHandler) {
	r.handlers[kind] = handler
}

// RegisterFunc registers fn as the handler for kind.
func (r *SegmentRegistry) RegisterFunc(kind SegmentKind, fn func(Segment, *Tokenizer) error) {
	r.Register(kind, SegmentHandlerFunc(fn))
}

// SetDefaultHandler replaces the fallback handler.
func (r *SegmentRegistry) SetDefaultHandler(handler SegmentHandler) {
	r.defaultHandler = handler
}

// Resolve returns the handler for kind, or nil if there is none.
func (r *SegmentRegistry) Resolve(kind SegmentKind) SegmentHandler {
	if h, ok := r.handlers[kind]; ok {
		return h
	}
	return r.defaultHandler
}
