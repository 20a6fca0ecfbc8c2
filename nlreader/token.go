package nlreader

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF     TokenKind = iota
	TokenNewline           // \n, optionally preceded by \r or a # comment
	TokenInteger           // -?[0-9]+
	TokenReal              // -?[0-9]*.[0-9]+([eE][+-]?[0-9]+)?
	TokenName              // any other run of non-space characters
)

var tokenNames = map[TokenKind]string{
	TokenEOF:     "end of input",
	TokenNewline: "newline",
	TokenInteger: "integer",
	TokenReal:    "real",
	TokenName:    "name",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Position is a location in the source. Line and Column are 1-based.
type Position struct {
	Line   int
	Column int
	Offset int // 0-based byte offset into source
}

// IsValid reports whether the position points into a source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Token is a single lexical unit produced by Tokenizer.Next.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}
