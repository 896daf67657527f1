package markup

import (
	"slices"
	"strings"
)

// frontMatterDelimiter is the exact lexeme that opens and closes front matter.
const frontMatterDelimiter = "---"

// Parser builds a Document from a block token stream.
type Parser struct {
	tokens []Token
	source string
	pos    int
}

// NewParser creates a parser over tokens. A missing trailing TokEOF is implied.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// NewSourceParser creates a parser over the tokens Scan produced for source.
// Line content is then sliced from source, so spacing survives verbatim.
func NewSourceParser(source string, tokens []Token) *Parser {
	return &Parser{tokens: tokens, source: source}
}

// ParseTokens parses a token stream produced by Scan.
func ParseTokens(tokens []Token) (*Document, error) {
	return NewParser(tokens).Parse()
}

// Parse consumes the whole token stream. It does not recover from errors:
// the first structural problem aborts the parse.
func (p *Parser) Parse() (*Document, error) {
	frontMatter, err := p.parseFrontMatter()
	if err != nil {
		return nil, err
	}

	for p.check(TokLineEnding) {
		p.advance()
	}

	var elements []Element
	for !p.atEnd() {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}

	return &Document{Elements: elements, FrontMatter: frontMatter}, nil
}

func (p *Parser) current() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(offset int) Token {
	idx := p.pos + offset
	if idx < len(p.tokens) {
		return p.tokens[idx]
	}
	eof := Token{Kind: TokEOF, Line: 1}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		eof.Line, eof.Start, eof.End = last.Line, last.End, last.End
	}
	return eof
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == TokEOF
}

func (p *Parser) advance() Token {
	tok := p.current()
	if !p.atEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kinds ...TokenKind) bool {
	return slices.Contains(kinds, p.current().Kind)
}

func (p *Parser) expect(kinds ...TokenKind) (Token, error) {
	if p.check(kinds...) {
		return p.advance(), nil
	}
	tok := p.current()
	return tok, &ParseError{Line: tok.Line, Got: tok.Kind, Expected: kinds, Err: ErrInvalidToken}
}

func (p *Parser) expectLineEnd() error {
	_, err := p.expect(TokLineEnding, TokEOF)
	return err
}

// restOfLine consumes tokens up to the line ending and returns their text.
// With a source the span is sliced verbatim; otherwise lexemes are joined
// with one space per skipped byte.
func (p *Parser) restOfLine() string {
	first := p.pos
	for !p.current().Kind.IsLineEnd() {
		p.advance()
	}
	line := p.tokens[first:p.pos]
	if len(line) == 0 {
		return ""
	}

	start, end := line[0].Start, line[len(line)-1].End
	if p.source != "" && start <= end && end <= len(p.source) {
		return p.source[start:end]
	}

	var b strings.Builder
	prevEnd := -1
	for _, tok := range line {
		if prevEnd >= 0 && tok.Start > prevEnd {
			b.WriteString(strings.Repeat(" ", tok.Start-prevEnd))
		}
		b.WriteString(tok.Text)
		prevEnd = tok.End
	}
	return b.String()
}

func isFrontMatterDelimiter(tok Token) bool {
	return tok.Kind == TokMinus3 && tok.Text == frontMatterDelimiter
}

// opensFrontMatter reports whether the stream starts with "---" and a line
// ending. A longer rule or the end of input on the next line keeps the
// opening "---" a horizontal rule.
func (p *Parser) opensFrontMatter() bool {
	if !isFrontMatterDelimiter(p.peekAt(0)) || p.peekAt(1).Kind != TokLineEnding {
		return false
	}
	switch next := p.peekAt(2); next.Kind {
	case TokEOF:
		return false
	case TokMinus3, TokUnderscore3, TokStar3:
		return isFrontMatterDelimiter(next)
	default:
		return true
	}
}

func (p *Parser) parseFrontMatter() (map[string]string, error) {
	frontMatter := make(map[string]string)
	if !p.opensFrontMatter() {
		return frontMatter, nil
	}
	p.advance()
	p.advance()

	for {
		tok := p.current()
		switch {
		case tok.Kind == TokEOF:
			return nil, &ParseError{Line: tok.Line, Got: tok.Kind, Err: ErrUnterminatedFrontMatter}
		case tok.Kind == TokLineEnding:
			p.advance()
		case isFrontMatterDelimiter(tok):
			p.advance()
			if err := p.expectLineEnd(); err != nil {
				return nil, err
			}
			return frontMatter, nil
		default:
			key, value, ok := strings.Cut(p.restOfLine(), ":")
			key = strings.TrimSpace(key)
			if !ok || key == "" {
				return nil, &ParseError{Line: tok.Line, Got: tok.Kind, Err: ErrMalformedFrontMatter}
			}
			frontMatter[key] = strings.TrimSpace(value)
			if err := p.expectLineEnd(); err != nil {
				return nil, err
			}
		}
	}
}

func (p *Parser) parseElement() (Element, error) {
	switch p.current().Kind {
	case TokStar, TokPlus, TokMinus:
		return p.parseList(LineUnorderedItem, TokStar, TokPlus, TokMinus)
	case TokNumber:
		return p.parseList(LineOrderedItem, TokNumber)
	case TokGT:
		return p.parseBlockQuote()
	case TokTick3:
		return p.parseCodeBlock()
	case TokMinus3, TokUnderscore3, TokStar3:
		if p.peekAt(1).Kind.IsLineEnd() {
			p.advance()
			if err := p.expectLineEnd(); err != nil {
				return nil, err
			}
			return Line{Kind: LineHorizontalRule}, nil
		}
		return p.parseParagraph()
	case TokBang:
		return p.parseImage()
	case TokLBracket:
		// Links are resolved inline; a leading '[' just starts a paragraph.
		return p.parseParagraph()
	default:
		return p.parseLine()
	}
}

// parseList reads consecutive lines that start with one of markers.
func (p *Parser) parseList(kind LineKind, markers ...TokenKind) (Element, error) {
	var items []Line
	for {
		p.advance()
		items = append(items, Line{Kind: kind, Content: p.restOfLine()})
		if err := p.expectLineEnd(); err != nil {
			return nil, err
		}
		if !p.check(markers...) {
			break
		}
	}
	return List{Items: items, Ordered: kind == LineOrderedItem}, nil
}

func (p *Parser) parseBlockQuote() (Element, error) {
	var lines []Line
	for p.check(TokGT) {
		p.advance()
		line, err := p.parseLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return BlockQuote{Lines: lines}, nil
}

func (p *Parser) parseCodeBlock() (Element, error) {
	p.advance()
	body, err := p.expect(TokText)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokTick3); err != nil {
		return nil, err
	}
	if err := p.expectLineEnd(); err != nil {
		return nil, err
	}
	return CodeBlock{Text: body.Text}, nil
}

// parseImage reads "![alt](src)". Anything malformed is kept as a paragraph.
func (p *Parser) parseImage() (Element, error) {
	if p.peekAt(1).Kind != TokLBracket {
		return p.parseParagraph()
	}

	start := p.pos
	p.advance()
	p.advance()
	alt, src, ok := splitImage(p.restOfLine())
	if !ok {
		p.pos = start
		return p.parseParagraph()
	}
	if err := p.expectLineEnd(); err != nil {
		return nil, err
	}
	return Image{Alt: alt, Src: src}, nil
}

// splitImage parses the "alt](src)" remainder of an image line.
func splitImage(rest string) (string, string, bool) {
	alt, after, ok := strings.Cut(rest, "]")
	if !ok || !strings.HasPrefix(after, "(") {
		return "", "", false
	}
	src, trailing, ok := strings.Cut(after[1:], ")")
	if !ok || strings.TrimSpace(trailing) != "" {
		return "", "", false
	}
	return alt, src, true
}

// parseLine reads a blank line, a heading or a paragraph.
func (p *Parser) parseLine() (Line, error) {
	tok := p.current()
	switch {
	case tok.Kind == TokEOF:
		return Line{Kind: LineBlank}, nil
	case tok.Kind == TokLineEnding:
		p.advance()
		return Line{Kind: LineBlank}, nil
	case tok.Kind.IsHeading():
		p.advance()
		content := p.restOfLine()
		if err := p.expectLineEnd(); err != nil {
			return Line{}, err
		}
		return Line{Kind: headingKind(tok.Kind.HeadingLevel()), Content: content}, nil
	default:
		return p.parseParagraph()
	}
}

func (p *Parser) parseParagraph() (Line, error) {
	content := p.restOfLine()
	if err := p.expectLineEnd(); err != nil {
		return Line{}, err
	}
	return Line{Kind: LineParagraph, Content: content}, nil
}
