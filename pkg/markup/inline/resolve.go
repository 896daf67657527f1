// Package inline renders the inline markup inside a single element:
// emphasis runs, code spans, links and backslash escapes.
//
// Delimiters use toggle semantics rather than balanced matching. Each run
// length (1, 2 or 3) has its own open flag, shared by every delimiter
// character; the first occurrence of a run length opens, the next one
// closes, and so on. Code spans have a flag of their own. Unbalanced input
// therefore renders deterministically, and a fresh set of flags is used for
// every call.
package inline

import "strings"

//nolint:gochecknoglobals // Read-only lookup table.
var emphasisTags = [maxRun + 1][2]string{
	1: {"<em>", "</em>"},
	2: {"<strong>", "</strong>"},
	3: {"<em><strong>", "</strong></em>"},
}

// linkShape is the token sequence of a complete link.
//
//nolint:gochecknoglobals // Read-only lookup table.
var linkShape = []Kind{KindLinkOpen, KindLinkLabel, KindRBracket, KindLParen, KindLinkURL, KindRParen}

// Resolve renders raw element text to HTML.
func Resolve(raw string, opts ...Option) string {
	return Render(Scan(raw, opts...))
}

// Render renders an inline token stream to HTML.
func Render(tokens []Token) string {
	var (
		b        strings.Builder
		open     [maxRun + 1]bool
		codeOpen bool
	)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.Kind {
		case KindEmphasis:
			if tok.Run < 1 || tok.Run > maxRun {
				b.WriteString(tok.Text)
				continue
			}
			b.WriteString(toggleTag(&open[tok.Run], emphasisTags[tok.Run]))
		case KindCode:
			b.WriteString(toggleTag(&codeOpen, [2]string{"<code>", "</code>"}))
		case KindLinkOpen:
			if !isLink(tokens[i:]) {
				b.WriteString(tok.Text)
				continue
			}
			b.WriteString(`<a href="` + tokens[i+4].Text + `">` + tokens[i+1].Text + `</a>`)
			i += len(linkShape) - 1
		default:
			b.WriteString(tok.Text)
		}
	}

	return b.String()
}

func toggleTag(open *bool, tags [2]string) string {
	tag := tags[0]
	if *open {
		tag = tags[1]
	}
	*open = !*open
	return tag
}

func isLink(tokens []Token) bool {
	if len(tokens) < len(linkShape) {
		return false
	}
	for i, kind := range linkShape {
		if tokens[i].Kind != kind {
			return false
		}
	}
	return true
}
