package inline

import "strings"

// maxRun is the longest delimiter run treated as emphasis.
const maxRun = 3

// Option configures inline scanning.
type Option func(*options)

type options struct {
	delims string
}

// WithPlusEmphasis makes '+' runs act like '*' and '_' runs.
func WithPlusEmphasis() Option {
	return func(o *options) {
		o.delims = "*_+"
	}
}

type scanner struct {
	src    string
	pos    int
	delims string
	text   strings.Builder
	tokens []Token
}

// Scan splits raw element text into inline tokens.
func Scan(raw string, opts ...Option) []Token {
	o := options{delims: "*_"}
	for _, opt := range opts {
		opt(&o)
	}

	s := &scanner{src: raw, delims: o.delims}
	s.scan()
	return s.tokens
}

func (s *scanner) scan() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\':
			s.readEscape()
		case c == '`':
			s.readCode()
		case c == '[':
			s.readLink()
		case strings.IndexByte(s.delims, c) >= 0:
			s.readEmphasis(c)
		default:
			s.text.WriteByte(c)
			s.pos++
		}
	}
	s.flush()
}

// flush emits accumulated literal text.
func (s *scanner) flush() {
	if s.text.Len() == 0 {
		return
	}
	s.tokens = append(s.tokens, Token{Kind: KindText, Text: s.text.String()})
	s.text.Reset()
}

func (s *scanner) emit(tok Token) {
	s.flush()
	s.tokens = append(s.tokens, tok)
}

// readEscape drops the backslash and keeps the next byte as text.
// A trailing backslash is kept.
func (s *scanner) readEscape() {
	if s.pos+1 >= len(s.src) {
		s.text.WriteByte('\\')
		s.pos++
		return
	}
	s.text.WriteByte(s.src[s.pos+1])
	s.pos += 2
}

func (s *scanner) readEmphasis(c byte) {
	start := s.pos
	for s.pos < len(s.src) && s.src[s.pos] == c {
		s.pos++
	}
	run := s.pos - start
	if run > maxRun {
		s.text.WriteString(s.src[start:s.pos])
		return
	}
	s.emit(Token{Kind: KindEmphasis, Text: s.src[start:s.pos], Run: run, Delim: c})
}

// readCode emits a code delimiter. When a closing backtick follows, the
// span between them is emitted as literal text.
func (s *scanner) readCode() {
	s.emit(Token{Kind: KindCode, Text: "`"})
	s.pos++

	end := strings.IndexByte(s.src[s.pos:], '`')
	if end < 0 {
		return
	}
	if end > 0 {
		s.emit(Token{Kind: KindText, Text: s.src[s.pos : s.pos+end]})
	}
	s.emit(Token{Kind: KindCode, Text: "`"})
	s.pos += end + 1
}

// readLink reads "[label](url)". When a delimiter is missing the consumed
// characters are kept as literal text. Escapes apply inside both parts.
func (s *scanner) readLink() {
	labelStart := s.pos + 1
	i := s.scanTo(labelStart, ']')
	label := unescape(s.src[labelStart:i])
	if !s.at(i, ']') {
		s.text.WriteString("[" + label)
		s.pos = i
		return
	}

	i++
	if !s.at(i, '(') {
		s.text.WriteString("[" + label + "]")
		s.pos = i
		return
	}

	urlStart := i + 1
	i = s.scanTo(urlStart, ')')
	url := unescape(s.src[urlStart:i])
	if !s.at(i, ')') {
		s.text.WriteString("[" + label + "](" + url)
		s.pos = i
		return
	}

	s.emit(Token{Kind: KindLinkOpen, Text: "["})
	s.emit(Token{Kind: KindLinkLabel, Text: label})
	s.emit(Token{Kind: KindRBracket, Text: "]"})
	s.emit(Token{Kind: KindLParen, Text: "("})
	s.emit(Token{Kind: KindLinkURL, Text: url})
	s.emit(Token{Kind: KindRParen, Text: ")"})
	s.pos = i + 1
}

// scanTo returns the index of the first unescaped stop byte or line ending
// at or after i.
func (s *scanner) scanTo(i int, stop byte) int {
	for i < len(s.src) {
		c := s.src[i]
		if c == stop || c == '\n' || c == '\r' {
			break
		}
		if c == '\\' && i+1 < len(s.src) && s.src[i+1] != '\n' && s.src[i+1] != '\r' {
			i++
		}
		i++
	}
	return i
}

// unescape applies the escape rule of readEscape to a whole string.
func unescape(raw string) string {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw
	}

	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}

func (s *scanner) at(i int, c byte) bool {
	return i < len(s.src) && s.src[i] == c
}
