package markup

import (
	"errors"
	"fmt"
	"strings"
)

// Lexical errors.
var (
	// ErrIllegalRun reports a delimiter run of an unsupported length, e.g. four backticks.
	ErrIllegalRun = errors.New("illegal delimiter run")

	// ErrUnterminatedFence reports a code fence that is never closed.
	ErrUnterminatedFence = errors.New("unterminated code fence")
)

// Structural errors.
var (
	// ErrInvalidToken reports a token the block grammar cannot accept at its position.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnterminatedFrontMatter reports a front matter block without a closing "---".
	ErrUnterminatedFrontMatter = errors.New("unterminated front matter")

	// ErrMalformedFrontMatter reports a front matter line that is not "key: value".
	ErrMalformedFrontMatter = errors.New("malformed front matter")
)

// ScanError is a lexical error raised by the block scanner.
type ScanError struct {
	// Line is the 1-based line the scanner was on.
	Line int

	// Err is one of the lexical sentinel errors.
	Err error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan: line %d: %v", e.Line, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// ParseError is a structural error raised by the block parser.
type ParseError struct {
	// Line is the 1-based line of the offending token.
	Line int

	// Got is the kind of the offending token.
	Got TokenKind

	// Expected lists the kinds that would have been accepted, if known.
	Expected []TokenKind

	// Err is one of the structural sentinel errors.
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse: line %d: %v", e.Line, e.Err)
	if e.Err == ErrInvalidToken {
		fmt.Fprintf(&b, " %s", e.Got)
	}
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, kind := range e.Expected {
			names[i] = kind.String()
		}
		fmt.Fprintf(&b, ", expected %s", strings.Join(names, " or "))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
