package nlreader

import "fmt"

// SegmentKind is the one-letter tag that introduces a segment.
type SegmentKind byte

const (
	SegmentFunc          SegmentKind = 'F' // imported function: index type nargs name
	SegmentSuffix        SegmentKind = 'S' // suffix: kind count name
	SegmentDefinedVar    SegmentKind = 'V' // defined variable: index numLinear position
	SegmentConExpr       SegmentKind = 'C' // algebraic constraint expression: index
	SegmentLogicalCon    SegmentKind = 'L' // logical constraint expression: index
	SegmentObjExpr       SegmentKind = 'O' // objective expression: index sense
	SegmentDualInitial   SegmentKind = 'd' // initial dual values: count
	SegmentPrimalInitial SegmentKind = 'x' // initial primal values: count
	SegmentConBounds     SegmentKind = 'r' // constraint bounds
	SegmentVarBounds     SegmentKind = 'b' // variable bounds
	SegmentColumnSizes   SegmentKind = 'k' // Jacobian column offsets: count
	SegmentJacobian      SegmentKind = 'J' // Jacobian row: index count
	SegmentGradient      SegmentKind = 'G' // objective gradient: index count

	// Expression nodes. They follow C, L, O and V lines and are dispatched
	// like any other segment.
	SegmentNumber   SegmentKind = 'n' // numeric constant: value
	SegmentLong     SegmentKind = 'l' // integer constant: value
	SegmentShort    SegmentKind = 's' // integer constant: value
	SegmentVariable SegmentKind = 'v' // variable reference: index
	SegmentOpcode   SegmentKind = 'o' // operator: opcode
	SegmentCall     SegmentKind = 'f' // function call: index nargs
	SegmentString   SegmentKind = 'h' // string literal: len:chars
)

// Segment describes one tag line. Args holds the integer fields of the
// line in order. Value is set for n, l and s; Name is set for F, S and h.
// BodyLines is the number of lines that make up the body, derived from
// the tag fields and the header.
type Segment struct {
	Kind      SegmentKind
	Pos       Position
	Args      []int
	Value     float64
	Name      string
	BodyLines int
}

func (s Segment) String() string {
	return fmt.Sprintf("%c%v", byte(s.Kind), s.Args)
}

type segmentLayout struct {
	name string
	read func(t *Tokenizer, h *Header, seg *Segment) error
}

var segmentLayouts = map[SegmentKind]segmentLayout{
	SegmentFunc:          {"function", readFuncSegment},
	SegmentSuffix:        {"suffix", readSuffixSegment},
	SegmentDefinedVar:    {"defined variable", readDefinedVarSegment},
	SegmentConExpr:       {"constraint expression", readConExprSegment},
	SegmentLogicalCon:    {"logical constraint", readLogicalConSegment},
	SegmentObjExpr:       {"objective", readObjSegment},
	SegmentDualInitial:   {"dual initial guess", readDualInitialSegment},
	SegmentPrimalInitial: {"primal initial guess", readPrimalInitialSegment},
	SegmentConBounds:     {"constraint bounds", readConBoundsSegment},
	SegmentVarBounds:     {"variable bounds", readVarBoundsSegment},
	SegmentColumnSizes:   {"column sizes", readColumnSizesSegment},
	SegmentJacobian:      {"Jacobian", readJacobianSegment},
	SegmentGradient:      {"gradient", readGradientSegment},
	SegmentNumber:        {"number", readNumberSegment},
	SegmentLong:          {"long constant", readIntConstSegment},
	SegmentShort:         {"short constant", readIntConstSegment},
	SegmentVariable:      {"variable", readVariableSegment},
	SegmentOpcode:        {"operator", readOpcodeSegment},
	SegmentCall:          {"function call", readCallSegment},
	SegmentString:        {"string", readStringSegment},
}

func (k SegmentKind) String() string {
	if layout, ok := segmentLayouts[k]; ok {
		return layout.name
	}
	return fmt.Sprintf("SegmentKind(%q)", byte(k))
}

// readRange reads an unsigned integer in [lo, hi).
func readRange(t *Tokenizer, lo, hi int) (int, error) {
	n, pos, err := t.readUint()
	if err != nil {
		return 0, err
	}
	if n < lo || n >= hi {
		return 0, t.report(pos, RangeError, ErrOutOfBounds, "integer %d out of bounds", n)
	}
	return n, nil
}

func readFuncSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumFuncs)
	if err != nil {
		return err
	}
	kind, pos, err := t.readUint()
	if err != nil {
		return err
	}
	if kind > 1 {
		return t.report(pos, RangeError, ErrOutOfBounds, "invalid function type")
	}
	nargs, err := t.ReadInt()
	if err != nil {
		return err
	}
	seg.Name, err = t.ReadName()
	if err != nil {
		return err
	}
	seg.Args = []int{index, kind, nargs}
	return nil
}

// Suffix kinds keep the item type in the low two bits; bit 2 marks real
// values.
const (
	suffixVar = iota
	suffixCon
	suffixObj
	suffixProblem

	suffixTypeMask = 3
	maxSuffixKind  = 7
)

func readSuffixSegment(t *Tokenizer, h *Header, seg *Segment) error {
	kind, pos, err := t.readUint()
	if err != nil {
		return err
	}
	if kind > maxSuffixKind {
		return t.report(pos, RangeError, ErrOutOfBounds, "invalid suffix kind")
	}
	var items int
	switch kind & suffixTypeMask {
	case suffixVar:
		items = h.NumVars
	case suffixCon:
		items = h.NumAlgebraicCons + h.NumLogicalCons
	case suffixObj:
		items = h.NumObjs
	case suffixProblem:
		items = 1
	}
	count, err := readRange(t, 0, items+1)
	if err != nil {
		return err
	}
	seg.Name, err = t.ReadName()
	if err != nil {
		return err
	}
	seg.Args = []int{kind, count}
	seg.BodyLines = count
	return nil
}

func readDefinedVarSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, h.NumVars, h.NumVars+h.NumCommonExprs())
	if err != nil {
		return err
	}
	numLinear, err := readRange(t, 0, h.NumVars+1)
	if err != nil {
		return err
	}
	position, err := t.ReadUint()
	if err != nil {
		return err
	}
	seg.Args = []int{index, numLinear, position}
	seg.BodyLines = numLinear
	return nil
}

func readConExprSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumAlgebraicCons)
	if err != nil {
		return err
	}
	seg.Args = []int{index}
	return nil
}

func readLogicalConSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumLogicalCons)
	if err != nil {
		return err
	}
	seg.Args = []int{index}
	return nil
}

func readObjSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumObjs)
	if err != nil {
		return err
	}
	sense, pos, err := t.readUint()
	if err != nil {
		return err
	}
	if sense > 1 {
		return t.report(pos, RangeError, ErrOutOfBounds, "invalid objective type")
	}
	seg.Args = []int{index, sense}
	return nil
}

func readDualInitialSegment(t *Tokenizer, h *Header, seg *Segment) error {
	count, err := readRange(t, 0, h.NumAlgebraicCons+1)
	if err != nil {
		return err
	}
	seg.Args = []int{count}
	seg.BodyLines = count
	return nil
}

func readPrimalInitialSegment(t *Tokenizer, h *Header, seg *Segment) error {
	count, err := readRange(t, 0, h.NumVars+1)
	if err != nil {
		return err
	}
	seg.Args = []int{count}
	seg.BodyLines = count
	return nil
}

func readConBoundsSegment(_ *Tokenizer, h *Header, seg *Segment) error {
	seg.BodyLines = h.NumAlgebraicCons
	return nil
}

func readVarBoundsSegment(_ *Tokenizer, h *Header, seg *Segment) error {
	seg.BodyLines = h.NumVars
	return nil
}

func readColumnSizesSegment(t *Tokenizer, h *Header, seg *Segment) error {
	count, pos, err := t.readUint()
	if err != nil {
		return err
	}
	want := max(h.NumVars-1, 0)
	if count != want {
		return t.report(pos, StructuralError, nil, "expected %d", want)
	}
	seg.Args = []int{count}
	seg.BodyLines = count
	return nil
}

func readJacobianSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumAlgebraicCons)
	if err != nil {
		return err
	}
	count, err := readRange(t, 1, h.NumVars+1)
	if err != nil {
		return err
	}
	seg.Args = []int{index, count}
	seg.BodyLines = count
	return nil
}

func readGradientSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumObjs)
	if err != nil {
		return err
	}
	count, err := readRange(t, 1, h.NumVars+1)
	if err != nil {
		return err
	}
	seg.Args = []int{index, count}
	seg.BodyLines = count
	return nil
}

func readNumberSegment(t *Tokenizer, _ *Header, seg *Segment) error {
	v, err := t.ReadDouble()
	if err != nil {
		return err
	}
	seg.Value = v
	return nil
}

func readIntConstSegment(t *Tokenizer, _ *Header, seg *Segment) error {
	v, err := t.ReadInt()
	if err != nil {
		return err
	}
	seg.Args = []int{v}
	seg.Value = float64(v)
	return nil
}

func readVariableSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumVars+h.NumCommonExprs())
	if err != nil {
		return err
	}
	seg.Args = []int{index}
	return nil
}

func readOpcodeSegment(t *Tokenizer, _ *Header, seg *Segment) error {
	opcode, err := t.ReadUint()
	if err != nil {
		return err
	}
	seg.Args = []int{opcode}
	return nil
}

func readCallSegment(t *Tokenizer, h *Header, seg *Segment) error {
	index, err := readRange(t, 0, h.NumFuncs)
	if err != nil {
		return err
	}
	nargs, err := t.ReadUint()
	if err != nil {
		return err
	}
	seg.Args = []int{index, nargs}
	return nil
}

func readStringSegment(t *Tokenizer, _ *Header, seg *Segment) error {
	s, err := t.readCountedString()
	if err != nil {
		return err
	}
	seg.Name = s
	return nil
}

// readSegment reads the tag line at the cursor, including its terminator.
// The cursor must be on a non-blank byte.
func readSegment(t *Tokenizer, h *Header) (Segment, error) {
	pos := t.Pos()
	tag := t.advance()
	seg := Segment{Kind: SegmentKind(tag), Pos: pos}
	layout, ok := segmentLayouts[seg.Kind]
	if !ok {
		return seg, t.report(pos, StructuralError, ErrInvalidFormat, "invalid format '%c'", tag)
	}
	if err := layout.read(t, h, &seg); err != nil {
		return seg, err
	}
	if err := t.ReadTillEndOfLine(); err != nil {
		return seg, err
	}
	return seg, nil
}

// skipBody moves the cursor to the first line after a body that started
// on line start and spans seg.BodyLines lines. The final body line may end
// at end of input without a terminator.
func skipBody(t *Tokenizer, seg Segment, start int) error {
	end := start + seg.BodyLines
	for t.line < end {
		if t.AtEnd() {
			return t.report(t.Pos(), StructuralError, ErrUnexpectedEOF,
				"unexpected end of input in %s segment", seg.Kind)
		}
		if !t.skipLine() {
			if t.line < end-1 {
				return t.report(t.Pos(), StructuralError, ErrUnexpectedEOF,
					"unexpected end of input in %s segment", seg.Kind)
			}
			return nil
		}
	}
	return nil
}
