package inline

// Kind classifies an inline token.
type Kind uint8

// Inline token kinds.
const (
	KindText Kind = iota
	KindEmphasis
	KindCode
	KindLinkOpen
	KindLinkLabel
	KindRBracket
	KindLParen
	KindLinkURL
	KindRParen
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	KindText:      "Text",
	KindEmphasis:  "Emphasis",
	KindCode:      "Code",
	KindLinkOpen:  "LinkOpen",
	KindLinkLabel: "LinkLabel",
	KindRBracket:  "RBracket",
	KindLParen:    "LParen",
	KindLinkURL:   "LinkURL",
	KindRParen:    "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Token is a unit of inline markup.
type Token struct {
	// Kind classifies the token.
	Kind Kind

	// Text is the literal text, label or URL, or the delimiter lexeme.
	Text string

	// Run is the delimiter run length (1-3) for emphasis tokens.
	Run int

	// Delim is the delimiter character for emphasis tokens.
	Delim byte
}
