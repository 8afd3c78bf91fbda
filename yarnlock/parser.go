package yarnlock

import "strings"

// Parse parses a complete lockfile and returns its entries in order.
// Returns a *SyntaxError on malformed input.
func Parse(src string) ([]Entry, error) {
	p := NewParser(src)
	var entries []Entry
	for {
		e, err := p.Next()
		if err != nil {
			return nil, err
		}
		if e == nil {
			return entries, nil
		}
		entries = append(entries, *e)
	}
}

// Parser produces top-level lockfile entries one at a time. It owns a
// single Scanner and keeps no other state between Next calls; discard the
// Parser after the first error.
type Parser struct {
	sc *Scanner
}

// NewParser creates a Parser over the given source text. The text must
// stay immutable while the Parser and any returned Entry are in use.
func NewParser(src string) *Parser {
	return &Parser{sc: NewScanner(src)}
}

// Next returns the next top-level entry, or (nil, nil) once the stream
// is exhausted.
func (p *Parser) Next() (*Entry, error) {
	tok := p.sc.Peek()
	switch tok.Kind {
	case TokenEOF:
		return nil, nil

	case TokenComment:
		p.sc.Next()
		text := strings.TrimLeft(strings.TrimPrefix(tok.Text, "#"), " ")
		return &Entry{Kind: EntryComment, Comment: text}, nil

	case TokenLiteral, TokenString:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &Entry{Kind: EntryBlock, Block: block}, nil

	default:
		return nil, syntaxErr(ErrUnexpectedToken, tok.Pos,
			"expected comment or package header, got %s", tok.Kind)
	}
}

func (p *Parser) parseBlock() (*Block, error) {
	b := &Block{Pos: p.sc.Peek().Pos}
	if err := p.parseHeader(b); err != nil {
		return nil, err
	}
	if err := p.parseBody(b); err != nil {
		return nil, err
	}
	return b, nil
}

// parseHeader consumes the selector list up to and including the ':'.
// Selectors come in two spellings: bare (name '@' range) and quoted
// ("name@range" with the separator found from the right, skipping a
// leading scope marker).
func (p *Parser) parseHeader(b *Block) error {
	for {
		tok := p.sc.Next()
		switch tok.Kind {
		case TokenColon:
			if len(b.Packages) == 0 {
				return syntaxErr(ErrUnexpectedToken, tok.Pos,
					"package header has no selectors")
			}
			return nil

		case TokenComma, TokenSpace:
			// Selector separators.

		case TokenLiteral:
			at := p.sc.Next()
			if at.Kind != TokenAt {
				return syntaxErr(ErrUnexpectedToken, at.Pos,
					"expected '@' after package name %q, got %s", tok.Text, at.Kind)
			}
			rng := p.sc.Next()
			if rng.Kind != TokenLiteral {
				return syntaxErr(ErrUnexpectedToken, rng.Pos,
					"expected version range after '@', got %s", rng.Kind)
			}
			b.Packages = append(b.Packages, PackageRef{Name: tok.Text, Version: rng.Text})

		case TokenString:
			unquoted, err := unquote(tok)
			if err != nil {
				return err
			}
			ref, err := splitSelector(unquoted, tok.Pos)
			if err != nil {
				return err
			}
			b.Packages = append(b.Packages, ref)

		case TokenEOF:
			return syntaxErr(ErrUnexpectedEOF, tok.Pos,
				"input ended inside a package header")

		default:
			return syntaxErr(ErrUnexpectedToken, tok.Pos,
				"unexpected %s in package header", tok.Kind)
		}
	}
}

// splitSelector splits an unquoted "name@range" selector at the last '@'
// that is not a leading scope marker ("@scope/pkg" names start with '@').
func splitSelector(sel string, pos Position) (PackageRef, error) {
	sep := strings.LastIndexByte(sel, '@')
	if sep <= 0 {
		// -1: no separator at all; 0: only the scope marker itself.
		return PackageRef{}, syntaxErr(ErrInvalidPackageVersion, pos,
			"selector %q has no '@' separating name and range", sel)
	}
	return PackageRef{Name: sel[:sep], Version: sel[sep+1:]}, nil
}

// parseBody consumes the indented key/value lines of a block. The body
// ends when a line's indentation drops to zero; that line's first token is
// left unconsumed for the next top-level entry.
//
// A dependency sub-list over-reads the indentation of the line that ends
// it. That measurement belongs to the next sibling key and is carried
// forward instead of re-measured; re-measuring would skip the key.
func (p *Parser) parseBody(b *Block) error {
	indent := p.measureIndent()
	for indent > 0 {
		key := p.sc.Next()
		if key.Kind != TokenLiteral {
			return syntaxErr(ErrUnexpectedToken, key.Pos,
				"expected key name, got %s", key.Kind)
		}

		switch key.Text {
		case "version", "resolved", "integrity":
			if err := p.requireSpace(key.Text); err != nil {
				return err
			}
			val, err := p.stringOrLiteral()
			if err != nil {
				return err
			}
			switch key.Text {
			case "version":
				b.Version = val
			case "resolved":
				b.Resolved = val
			case "integrity":
				b.Integrity = val
			}
			indent = p.measureIndent()

		case "dependencies", "optionalDependencies":
			colon := p.sc.Next()
			if colon.Kind != TokenColon {
				return syntaxErr(ErrExpectedColon, colon.Pos,
					"expected ':' after %q, got %s", key.Text, colon.Kind)
			}
			dst := &b.Dependencies
			if key.Text == "optionalDependencies" {
				dst = &b.OptionalDependencies
			}
			next, err := p.parseDepList(dst, indent)
			if err != nil {
				return err
			}
			indent = next

		default:
			// Unknown keys carry one value; skip it. Keeps the parser
			// forward-compatible with lockfile variants.
			p.skipSpaces()
			if _, err := p.stringOrLiteral(); err != nil {
				return err
			}
			indent = p.measureIndent()
		}
	}
	return nil
}

// parseDepList reads "name version" lines while their indentation is
// strictly greater than the owning key's. Returns the indentation of the
// first line that is not part of the list, already consumed from the
// scanner, for the caller to carry forward.
func (p *Parser) parseDepList(dst *[]PackageRef, keyIndent int) (int, error) {
	indent := p.measureIndent()
	for indent > keyIndent {
		name, err := p.stringOrLiteral()
		if err != nil {
			return 0, err
		}
		if err := p.requireSpace(name); err != nil {
			return 0, err
		}
		version, err := p.stringOrLiteral()
		if err != nil {
			return 0, err
		}
		*dst = append(*dst, PackageRef{Name: name, Version: version})
		indent = p.measureIndent()
	}
	return indent, nil
}

// measureIndent consumes consecutive space tokens and returns the count.
func (p *Parser) measureIndent() int {
	n := 0
	for p.sc.Peek().Kind == TokenSpace {
		p.sc.Next()
		n++
	}
	return n
}

// requireSpace consumes at least one space token, erroring if none follow.
func (p *Parser) requireSpace(after string) error {
	tok := p.sc.Peek()
	if tok.Kind != TokenSpace {
		return syntaxErr(ErrExpectedSpace, tok.Pos,
			"expected space after %q, got %s", after, tok.Kind)
	}
	p.skipSpaces()
	return nil
}

func (p *Parser) skipSpaces() {
	for p.sc.Peek().Kind == TokenSpace {
		p.sc.Next()
	}
}

// stringOrLiteral reads one value: either a bare literal verbatim or a
// quoted string with its quotes stripped.
func (p *Parser) stringOrLiteral() (string, error) {
	tok := p.sc.Next()
	switch tok.Kind {
	case TokenLiteral:
		return tok.Text, nil
	case TokenString:
		return unquote(tok)
	default:
		return "", syntaxErr(ErrUnexpectedToken, tok.Pos,
			"expected value, got %s", tok.Kind)
	}
}

func unquote(tok Token) (string, error) {
	raw := tok.Text
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", syntaxErr(ErrInvalidString, tok.Pos,
			"malformed string %q", raw)
	}
	return raw[1 : len(raw)-1], nil
}
