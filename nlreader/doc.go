// Package nlreader reads the header and top-level segments of the textual
// .nl problem-description format.
//
// An .nl stream starts with a ten-line positional header describing the
// problem shape, followed by segments introduced by one-letter tags. The
// reader is structured in layers:
//
//   - Tokenizer: typed reads (unsigned and signed integers, doubles, names)
//     over raw bytes, with # comments and line/column tracking.
//   - Header sequencer: fills a Header field by field, including the
//     bounded option list on the first line.
//   - Segment dispatcher: reads each tag line, checks its indices against
//     the header and hands the body to a SegmentHandler.
//
// Every failure is a *ParseError formatted as <source>:<line>:<column>:
// <message>. The first error ends the read and the header handler never
// sees a partially read header.
//
// Usage:
//
//	var header nlreader.Header
//	err := nlreader.ReadString(text, nlreader.HandlerFuncs{
//	    HeaderFunc: func(h nlreader.Header) error {
//	        header = h
//	        return nil
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(header.NumVars, header.NumAlgebraicCons, header.NumObjs)
package nlreader
