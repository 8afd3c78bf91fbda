package yarnlock

// Scanner tokenizes lockfile source text into a stream of tokens.
//
// Scanning is infallible: lexical errors do not exist at this layer, and
// anything unrecognized falls through to the literal class. The scanner
// holds no resources beyond a cursor; two scanners over the same buffer
// can coexist as long as the buffer is immutable.
type Scanner struct {
	src    string
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewScanner creates a new Scanner for the given source text.
func NewScanner(src string) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it. Idempotent until the
// next call to Next.
func (s *Scanner) Peek() Token {
	if s.peeked == nil {
		tok := s.scan()
		s.peeked = &tok
	}
	return *s.peeked
}

// Next consumes and returns the next token. After the end of input it
// keeps returning EOF tokens.
func (s *Scanner) Next() Token {
	if s.peeked != nil {
		tok := *s.peeked
		s.peeked = nil
		return tok
	}
	return s.scan()
}

func (s *Scanner) currentPos() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.pos}
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.src)
}

func (s *Scanner) peekByte() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.pos]
}

func (s *Scanner) advance() byte {
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

func (s *Scanner) scan() Token {
	// Newlines and tabs produce no token, but a newline is significant
	// inside a comment or literal, so it is only skipped here in the
	// start state.
	for !s.atEnd() && (s.peekByte() == '\n' || s.peekByte() == '\t') {
		s.advance()
	}

	if s.atEnd() {
		return Token{Kind: TokenEOF, Pos: s.currentPos()}
	}

	pos := s.currentPos()

	switch s.peekByte() {
	case '@':
		s.advance()
		return Token{Kind: TokenAt, Text: "@", Pos: pos}
	case ':':
		s.advance()
		return Token{Kind: TokenColon, Text: ":", Pos: pos}
	case ',':
		s.advance()
		return Token{Kind: TokenComma, Text: ",", Pos: pos}
	case ' ':
		// One token per space byte; callers tally runs themselves.
		s.advance()
		return Token{Kind: TokenSpace, Text: " ", Pos: pos}
	case '#':
		return s.scanComment(pos)
	case '"':
		return s.scanString(pos)
	default:
		return s.scanLiteral(pos)
	}
}

// scanComment consumes '#' through end of line. The trailing newline is
// consumed but excluded from the token text; the leading '#' is included.
func (s *Scanner) scanComment(pos Position) Token {
	start := s.pos
	for !s.atEnd() && s.peekByte() != '\n' {
		s.advance()
	}
	text := s.src[start:s.pos]
	if !s.atEnd() {
		s.advance() // consume the newline
	}
	return Token{Kind: TokenComment, Text: text, Pos: pos}
}

// scanString consumes through and including the closing quote. The token
// text keeps both quote characters. An unterminated string runs to end of
// input; the parser rejects it when unquoting.
func (s *Scanner) scanString(pos Position) Token {
	start := s.pos
	s.advance() // opening "
	for !s.atEnd() {
		if s.advance() == '"' {
			break
		}
	}
	return Token{Kind: TokenString, Text: s.src[start:s.pos], Pos: pos}
}

// scanLiteral accumulates until a delimiter. The delimiter is not
// consumed: the next scan call re-enters the start state exactly at it.
func (s *Scanner) scanLiteral(pos Position) Token {
	start := s.pos
	for !s.atEnd() && !isLiteralDelim(s.peekByte()) {
		s.advance()
	}
	return Token{Kind: TokenLiteral, Text: s.src[start:s.pos], Pos: pos}
}

func isLiteralDelim(ch byte) bool {
	switch ch {
	case ',', ':', ' ', '@', '\n':
		return true
	}
	return false
}
