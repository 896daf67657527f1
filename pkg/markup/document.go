package markup

// LineKind classifies a single-line element.
type LineKind uint8

// Line kinds.
const (
	LineH1 LineKind = iota
	LineH2
	LineH3
	LineH4
	LineH5
	LineH6
	LineParagraph
	LineHorizontalRule
	LineBlank
	LineOrderedItem
	LineUnorderedItem
)

//nolint:gochecknoglobals // Read-only lookup table.
var lineKindNames = [...]string{
	LineH1:             "h1",
	LineH2:             "h2",
	LineH3:             "h3",
	LineH4:             "h4",
	LineH5:             "h5",
	LineH6:             "h6",
	LineParagraph:      "p",
	LineHorizontalRule: "hr",
	LineBlank:          "blank",
	LineOrderedItem:    "ordered-item",
	LineUnorderedItem:  "unordered-item",
}

func (k LineKind) String() string {
	if int(k) < len(lineKindNames) {
		return lineKindNames[k]
	}
	return "LineKind(?)"
}

// IsHeading reports whether k is h1 through h6.
func (k LineKind) IsHeading() bool {
	return k <= LineH6
}

// headingKind maps a heading level (1-6) to its line kind.
func headingKind(level int) LineKind {
	return LineH1 + LineKind(level-1)
}

// Element is one structural block of a document.
//
// The set of elements is closed: Line, List, BlockQuote, CodeBlock and Image.
type Element interface {
	element()
}

// Line is a heading, paragraph, rule, blank line or list item.
// Content is raw text that still carries inline markup.
type Line struct {
	Kind    LineKind
	Content string
}

// List is a run of list items sharing one list type.
type List struct {
	Items   []Line
	Ordered bool
}

// BlockQuote holds the lines of one quoted block.
type BlockQuote struct {
	Lines []Line
}

// CodeBlock holds the verbatim body of a fenced code block.
type CodeBlock struct {
	Text string
}

// Image is a standalone image line.
type Image struct {
	Alt string
	Src string
}

func (Line) element()       {}
func (List) element()       {}
func (BlockQuote) element() {}
func (CodeBlock) element()  {}
func (Image) element()      {}

// Document is a parsed document: its elements in source order and the
// key/value pairs of its front matter.
type Document struct {
	Elements    []Element
	FrontMatter map[string]string
}

// HTML renders the document with one element per line.
func (d *Document) HTML() string {
	return NewRenderer().Render(d)
}

// MinHTML renders the document without separators or indentation.
func (d *Document) MinHTML() string {
	return NewRenderer(WithCompact()).Render(d)
}
