// Package markup compiles a small markdown-like language into HTML.
//
// Compilation runs in two stages. The block scanner and parser split the
// document into structural elements (headings, paragraphs, lists, block
// quotes, fenced code, images and rules) and collect the front matter. The
// raw text inside each element is then handed to the inline resolver in
// package inline, which renders emphasis, code spans, links and escapes.
//
// Every call works on its own scanner, parser and renderer state, so
// independent documents may be compiled concurrently.
package markup

import "fmt"

// Parse scans and parses text. On failure no partial document is returned;
// the error is a *ScanError or a *ParseError.
func Parse(text string) (*Document, error) {
	tokens, err := Scan(text)
	if err != nil {
		return nil, err
	}
	return NewSourceParser(text, tokens).Parse()
}

// HTML parses text and renders it with opts.
func HTML(text string, opts ...RenderOption) (string, error) {
	doc, err := Parse(text)
	if err != nil {
		return "", fmt.Errorf("markup: %w", err)
	}
	return NewRenderer(opts...).Render(doc), nil
}
