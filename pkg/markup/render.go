package markup

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/marky/pkg/langdetect"
	"github.com/yaklabco/marky/pkg/markup/inline"
)

// RenderOption configures a Renderer.
type RenderOption func(*Renderer)

// WithCompact drops the newlines and indentation between and inside elements.
func WithCompact() RenderOption {
	return func(r *Renderer) {
		r.compact = true
	}
}

// WithLanguageDetection tags code blocks with a detected language class.
func WithLanguageDetection() RenderOption {
	return func(r *Renderer) {
		r.detectLanguage = true
	}
}

// WithPlusEmphasis accepts '+' runs as emphasis delimiters in inline text.
func WithPlusEmphasis() RenderOption {
	return func(r *Renderer) {
		r.inlineOpts = append(r.inlineOpts, inline.WithPlusEmphasis())
	}
}

// Renderer turns a Document into HTML. A Renderer holds no per-document
// state and may be shared between goroutines.
type Renderer struct {
	compact        bool
	detectLanguage bool
	inlineOpts     []inline.Option
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...RenderOption) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render renders every element that produces output, trimmed.
func (r *Renderer) Render(doc *Document) string {
	if doc == nil {
		return ""
	}

	parts := lo.FilterMap(doc.Elements, func(el Element, _ int) (string, bool) {
		html := r.Element(el)
		return html, html != ""
	})

	return strings.TrimSpace(strings.Join(parts, r.separator()))
}

// Element renders a single element. Blank lines render as "".
func (r *Renderer) Element(el Element) string {
	switch el := el.(type) {
	case Line:
		return r.line(el)
	case List:
		return r.list(el)
	case BlockQuote:
		return r.blockQuote(el)
	case CodeBlock:
		return r.codeBlock(el)
	case Image:
		return fmt.Sprintf(`<img src="%s" alt="%s">`, el.Src, el.Alt)
	default:
		panic(fmt.Sprintf("markup: unknown element %T", el))
	}
}

func (r *Renderer) separator() string {
	if r.compact {
		return ""
	}
	return "\n"
}

func (r *Renderer) inline(raw string) string {
	return inline.Resolve(raw, r.inlineOpts...)
}

func (r *Renderer) line(l Line) string {
	switch l.Kind {
	case LineHorizontalRule:
		return "<hr>"
	case LineBlank:
		return ""
	case LineOrderedItem, LineUnorderedItem:
		return "<li>" + r.inline(l.Content) + "</li>"
	default:
		tag := l.Kind.String()
		return "<" + tag + ">" + r.inline(l.Content) + "</" + tag + ">"
	}
}

// wrap places children inside tag, one per indented line unless compact.
func (r *Renderer) wrap(tag string, children []string) string {
	if len(children) == 0 {
		return "<" + tag + "></" + tag + ">"
	}
	if r.compact {
		return "<" + tag + ">" + strings.Join(children, "") + "</" + tag + ">"
	}
	return "<" + tag + ">\n\t" + strings.Join(children, "\n\t") + "\n</" + tag + ">"
}

func (r *Renderer) list(l List) string {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	items := lo.Map(l.Items, func(item Line, _ int) string {
		return "<li>" + r.inline(item.Content) + "</li>"
	})
	return r.wrap(tag, items)
}

func (r *Renderer) blockQuote(q BlockQuote) string {
	lines := lo.FilterMap(q.Lines, func(l Line, _ int) (string, bool) {
		html := r.line(l)
		return html, html != ""
	})
	return r.wrap("blockquote", lines)
}

func (r *Renderer) codeBlock(c CodeBlock) string {
	open := "<pre><code>"
	if r.detectLanguage {
		if lang, ok := langdetect.Detect([]byte(c.Text)); ok {
			open = `<pre><code class="language-` + lang + `">`
		}
	}
	return open + "\n" + c.Text + "\n</code></pre>"
}
