package yarnlock

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF     TokenKind = iota
	TokenAt                // @
	TokenColon             // :
	TokenComma             // ,
	TokenSpace             // a single space; runs become repeated tokens
	TokenComment           // # to end of line, text includes the leading #
	TokenLiteral           // bare text up to a delimiter (, : space @ newline)
	TokenString            // "..." including both quote characters, verbatim
)

var tokenNames = map[TokenKind]string{
	TokenEOF:     "EOF",
	TokenAt:      "'@'",
	TokenColon:   "':'",
	TokenComma:   "','",
	TokenSpace:   "space",
	TokenComment: "comment",
	TokenLiteral: "literal",
	TokenString:  "string",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Scanner. Text is a
// substring of the source buffer, never a copy; it stays valid as long
// as the source string is reachable.
type Token struct {
	Kind TokenKind
	Text string // raw text: includes '#' for comments and quotes for strings
	Pos  Position
}
