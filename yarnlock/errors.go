package yarnlock

import "fmt"

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	// ErrUnexpectedToken: a token appeared where the grammar requires a
	// different class.
	ErrUnexpectedToken ErrorKind = iota
	// ErrInvalidString: a string token's raw text is not properly
	// double-quote-delimited.
	ErrInvalidString
	// ErrInvalidPackageVersion: a quoted package header lacks the '@'
	// separator between name and version range.
	ErrInvalidPackageVersion
	// ErrUnexpectedEOF: input ended while a block header was still open.
	ErrUnexpectedEOF
	// ErrExpectedSpace: a required space was absent after a recognized
	// key or package name.
	ErrExpectedSpace
	// ErrExpectedColon: dependencies/optionalDependencies was not
	// immediately followed by ':'.
	ErrExpectedColon
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedToken:       "unexpected token",
	ErrInvalidString:         "invalid string",
	ErrInvalidPackageVersion: "invalid package version",
	ErrUnexpectedEOF:         "unexpected end of file",
	ErrExpectedSpace:         "expected space",
	ErrExpectedColon:         "expected colon",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseError is the base error type for all yarnlock errors.
type ParseError struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error { return e.Cause }

// SyntaxError represents a grammar-level error. Kind identifies which
// rule was violated; check it with errors.As.
type SyntaxError struct {
	ParseError
	Kind ErrorKind
}

func syntaxErr(kind ErrorKind, pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		ParseError: ParseError{
			Message: kind.String() + ": " + fmt.Sprintf(format, args...),
			Pos:     pos,
		},
		Kind: kind,
	}
}
