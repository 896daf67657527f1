package markup

// TokenKind classifies a block-level token.
type TokenKind uint8

// Token kinds produced by the block scanner.
const (
	TokEOF TokenKind = iota
	TokLineEnding
	TokText
	TokNumber // ordered list marker, e.g. "2."

	TokHash1
	TokHash2
	TokHash3
	TokHash4
	TokHash5
	TokHash6

	TokStar
	TokStar2
	TokStar3
	TokMinus
	TokMinus2
	TokMinus3
	TokUnderscore
	TokUnderscore2
	TokUnderscore3
	TokTick
	TokTick2
	TokTick3

	TokEqual
	TokDot
	TokPlus
	TokLBracket
	TokRBracket
	TokLParen
	TokRParen
	TokLT
	TokGT
	TokBang
)

//nolint:gochecknoglobals // Read-only lookup table.
var tokenKindNames = [...]string{
	TokEOF:         "EOF",
	TokLineEnding:  "LineEnding",
	TokText:        "Text",
	TokNumber:      "Number",
	TokHash1:       "Hash1",
	TokHash2:       "Hash2",
	TokHash3:       "Hash3",
	TokHash4:       "Hash4",
	TokHash5:       "Hash5",
	TokHash6:       "Hash6",
	TokStar:        "Star",
	TokStar2:       "Star2",
	TokStar3:       "Star3",
	TokMinus:       "Minus",
	TokMinus2:      "Minus2",
	TokMinus3:      "Minus3",
	TokUnderscore:  "Underscore",
	TokUnderscore2: "Underscore2",
	TokUnderscore3: "Underscore3",
	TokTick:        "Tick",
	TokTick2:       "Tick2",
	TokTick3:       "Tick3",
	TokEqual:       "Equal",
	TokDot:         "Dot",
	TokPlus:        "Plus",
	TokLBracket:    "LBracket",
	TokRBracket:    "RBracket",
	TokLParen:      "LParen",
	TokRParen:      "RParen",
	TokLT:          "LT",
	TokGT:          "GT",
	TokBang:        "Bang",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(?)"
}

// IsHeading reports whether k is one of the six heading markers.
func (k TokenKind) IsHeading() bool {
	return k >= TokHash1 && k <= TokHash6
}

// HeadingLevel returns 1-6 for heading markers and 0 otherwise.
func (k TokenKind) HeadingLevel() int {
	if !k.IsHeading() {
		return 0
	}
	return int(k-TokHash1) + 1
}

// IsLineEnd reports whether k terminates a line.
func (k TokenKind) IsLineEnd() bool {
	return k == TokLineEnding || k == TokEOF
}

// Token is a lexical unit of the block grammar.
// Start and End are byte offsets into the scanned input.
type Token struct {
	// Kind classifies the token.
	Kind TokenKind

	// Text is the lexeme: the marker characters for marker tokens,
	// the trimmed line remainder for text tokens.
	Text string

	// Line is the 1-based source line the token ends on.
	Line int

	// Start is the byte offset where the token begins (inclusive).
	Start int

	// End is the byte offset where the token ends (exclusive).
	End int
}

// Len returns the length of the token's source span in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}
