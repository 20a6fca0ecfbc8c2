package nlreader

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// problemHeader is the header written for a one-variable, one-objective
// problem with a single gradient entry.
const problemHeader = "g3 0 1 0 # problem test\n" +
	" 1 0 1 0 0      # vars, constraints, objectives, ranges, eqns\n" +
	" 0 0    # nonlinear constraints, objectives\n" +
	" 0 0    # network constraints: nonlinear, linear\n" +
	" 0 0 0  # nonlinear vars in constraints, objectives, both\n" +
	" 0 0 0 1        # linear network variables; functions; arith, flags\n" +
	" 0 0 0 0 0      # discrete variables: binary, integer, nonlinear (b,c,o)\n" +
	" 0 1    # nonzeros in Jacobian, gradients\n" +
	" 0 0    # max name lengths: constraints, variables\n" +
	" 0 0 0 0 0      # common exprs: b,c,o,c1,o1\n"

// problemSegments follows problemHeader.
const problemSegments = "O0 0\n" +
	"n0\n" +
	"b\n" +
	"2 0\n" +
	"k0\n" +
	"G0 1\n" +
	"0 1\n"

// shape sets the header counts that segment checks depend on.
type shape struct {
	vars, cons, objs, logical, funcs, commonCons int
}

// headerText renders a ten-line header for s. Segments start on line 11.
func headerText(s shape) string {
	return "g3 1 1 0\n" +
		fmt.Sprintf(" %d %d %d 0 0 %d\n", s.vars, s.cons, s.objs, s.logical) +
		" 0 0\n" +
		" 0 0\n" +
		" 0 0 0\n" +
		fmt.Sprintf(" 0 %d 0 0\n", s.funcs) +
		" 0 0 0 0 0\n" +
		" 0 0\n" +
		" 0 0\n" +
		fmt.Sprintf(" 0 %d 0 0 0\n", s.commonCons)
}

// recorder collects everything a read reports.
type recorder struct {
	header      Header
	headerCalls int
	segments    []Segment
}

func (r *recorder) HandleHeader(h Header) error {
	r.header = h
	r.headerCalls++
	return nil
}

func (r *recorder) HandleSegment(seg Segment, _ *Tokenizer) error {
	r.segments = append(r.segments, seg)
	return nil
}

func (r *recorder) kinds() []SegmentKind {
	kinds := make([]SegmentKind, 0, len(r.segments))
	for _, seg := range r.segments {
		kinds = append(kinds, seg.Kind)
	}
	return kinds
}

func mustRead(t *testing.T, src string) *recorder {
	t.Helper()
	rec := &recorder{}
	require.NoError(t, ReadString(src, rec))
	return rec
}

func requireParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok, "expected *ParseError, got %T", err)
	return pe
}
