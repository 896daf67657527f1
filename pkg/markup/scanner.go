package markup

import "strings"

// Scanner splits a document into block-level tokens.
//
// Only line-initial characters are tokenized individually. Once a line is
// recognised as text, the remainder of the line becomes a single text token
// and inline markup is left for the inline resolver.
type Scanner struct {
	input  string
	start  int
	pos    int
	line   int
	tokens []Token
}

// NewScanner creates a scanner over input. The input is never modified.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input, line: 1}
}

// Scan tokenizes input. The returned slice always ends with a TokEOF token.
func Scan(input string) ([]Token, error) {
	return NewScanner(input).Scan()
}

// Scan runs the scanner to the end of its input.
func (s *Scanner) Scan() ([]Token, error) {
	for !s.atEnd() {
		s.start = s.pos
		c := s.advance()

		var err error
		switch c {
		case '#':
			s.readHeading()
		case '*':
			err = s.readRun('*', TokStar, TokStar2, TokStar3)
		case '-':
			err = s.readRun('-', TokMinus, TokMinus2, TokMinus3)
		case '_':
			err = s.readRun('_', TokUnderscore, TokUnderscore2, TokUnderscore3)
		case '`':
			err = s.readRun('`', TokTick, TokTick2, TokTick3)
		case '=':
			s.emit(TokEqual)
		case '.':
			s.emit(TokDot)
		case '+':
			s.emit(TokPlus)
		case '[':
			s.emit(TokLBracket)
		case ']':
			s.emit(TokRBracket)
		case '(':
			s.emit(TokLParen)
		case ')':
			s.emit(TokRParen)
		case '<':
			s.emit(TokLT)
		case '>':
			s.emit(TokGT)
		case '!':
			s.emit(TokBang)
		case '\\':
			// The backslash stays in the text so the escape survives to the inline stage.
			s.readText()
		case ' ', '\t':
		case '\n':
			s.lineEnding()
		case '\r':
			if s.peek() == '\n' {
				s.advance()
			}
			s.lineEnding()
		default:
			if isDigit(c) {
				s.readNumber()
			} else {
				s.readText()
			}
		}
		if err != nil {
			return nil, err
		}
	}

	s.tokens = append(s.tokens, Token{
		Kind:  TokEOF,
		Line:  s.line,
		Start: len(s.input),
		End:   len(s.input),
	})

	return s.tokens, nil
}

func (s *Scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

func (s *Scanner) atLineEnd() bool {
	c := s.peek()
	return c == '\n' || c == '\r'
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.input[s.pos]
}

func (s *Scanner) advance() byte {
	if s.atEnd() {
		return 0
	}
	c := s.input[s.pos]
	s.pos++
	return c
}

func (s *Scanner) emit(kind TokenKind) {
	s.tokens = append(s.tokens, Token{
		Kind:  kind,
		Text:  s.input[s.start:s.pos],
		Line:  s.line,
		Start: s.start,
		End:   s.pos,
	})
}

func (s *Scanner) emitTrimmed(kind TokenKind, start, end int, cutset string) {
	raw := s.input[start:end]
	trimmedLeft := strings.TrimLeft(raw, cutset)
	start += len(raw) - len(trimmedLeft)
	text := strings.TrimRight(trimmedLeft, cutset)
	s.tokens = append(s.tokens, Token{
		Kind:  kind,
		Text:  text,
		Line:  s.line,
		Start: start,
		End:   start + len(text),
	})
}

func (s *Scanner) fail(err error) error {
	return &ScanError{Line: s.line, Err: err}
}

func (s *Scanner) lineEnding() {
	s.emit(TokLineEnding)
	s.line++
}

// readText consumes the rest of the physical line as one text token.
// Whitespace-only remainders emit nothing.
func (s *Scanner) readText() {
	for !s.atEnd() && !s.atLineEnd() {
		s.advance()
	}
	if strings.Trim(s.input[s.start:s.pos], " \t") == "" {
		return
	}
	s.emitTrimmed(TokText, s.start, s.pos, " \t")
}

func (s *Scanner) readHeading() {
	count := 1
	for s.peek() == '#' {
		s.advance()
		count++
	}

	if count > 6 || s.peek() != ' ' {
		s.readText()
		return
	}

	s.emit(TokHash1 + TokenKind(count-1))
}

// readRun collapses a run of c into its single, double or triple token.
// Runs longer than three collapse to the triple token, except for backticks.
func (s *Scanner) readRun(c byte, single, double, triple TokenKind) error {
	count := 1
	for s.peek() == c {
		s.advance()
		count++
	}

	switch {
	case count == 1:
		s.emit(single)
	case count == 2:
		s.emit(double)
	case count == 3 && c == '`':
		s.emit(triple)
		return s.readFence()
	case c == '`':
		return s.fail(ErrIllegalRun)
	default:
		s.emit(triple)
	}
	return nil
}

// readFence consumes a fenced code body verbatim up to the closing fence.
func (s *Scanner) readFence() error {
	bodyStart := s.pos
	for !s.atEnd() && s.peek() != '`' {
		switch s.advance() {
		case '\n':
			s.line++
		case '\r':
			if s.peek() == '\n' {
				s.advance()
			}
			s.line++
		}
	}
	if s.atEnd() {
		return s.fail(ErrUnterminatedFence)
	}
	bodyEnd := s.pos

	s.start = s.pos
	count := 0
	for s.peek() == '`' {
		s.advance()
		count++
	}
	if count != 3 {
		return s.fail(ErrIllegalRun)
	}

	fenceStart := s.start
	s.emitTrimmed(TokText, bodyStart, bodyEnd, " \t\r\n")
	s.start = fenceStart
	s.emit(TokTick3)
	return nil
}

func (s *Scanner) readNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() != '.' {
		s.readText()
		return
	}

	s.advance()
	s.emit(TokNumber)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
