package reference

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Normalize rewrites an HTML fragment into a canonical form so that
// renderings differing only in layout compare equal: runs of whitespace
// collapse to one space, whitespace-only text and comments disappear,
// attributes are sorted, and self-closing tags become start tags.
func Normalize(fragment string) (string, error) {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var out strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("normalize html: %w", err)
			}
			return out.String(), nil
		case html.TextToken:
			text := strings.Join(strings.Fields(string(tokenizer.Text())), " ")
			if text != "" {
				out.WriteString(html.EscapeString(text))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			writeTag(&out, tokenizer.Token())
		case html.EndTagToken:
			out.WriteString("</" + tokenizer.Token().Data + ">")
		case html.CommentToken, html.DoctypeToken:
		}
	}
}

func writeTag(out *strings.Builder, tok html.Token) {
	attrs := slices.Clone(tok.Attr)
	slices.SortFunc(attrs, func(a, b html.Attribute) int {
		return strings.Compare(a.Key, b.Key)
	})

	out.WriteString("<" + tok.Data)
	for _, attr := range attrs {
		fmt.Fprintf(out, " %s=%q", attr.Key, html.EscapeString(attr.Val))
	}
	out.WriteString(">")
}
