// Package reference renders documents with goldmark, a CommonMark
// implementation, and compares that output with marky's own HTML.
//
// marky intentionally supports a small subset of Markdown, so the two
// renderings are expected to disagree on many inputs. The comparison is a
// diagnostic aid, not a conformance check.
package reference

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/marky/pkg/markup"
)

// Flavors accepted by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Renderer converts source text with goldmark.
type Renderer struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a reference renderer. Unknown flavors fall back to CommonMark.
func New(flavor string) *Renderer {
	if flavor != FlavorGFM {
		flavor = FlavorCommonMark
	}

	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Renderer{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the configured flavor.
func (r *Renderer) Flavor() string {
	return r.flavor
}

// HTML renders source to HTML.
func (r *Renderer) HTML(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("reference render cancelled: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("reference render: %w", err)
	}
	return buf.String(), nil
}

// Comparison holds both renderings of one document.
type Comparison struct {
	Marky     string
	Reference string

	// Equal reports whether the normalized renderings match.
	Equal bool
}

// Compare renders source with marky and with r and reports whether the
// results agree after normalization.
func (r *Renderer) Compare(ctx context.Context, source string, opts ...markup.RenderOption) (*Comparison, error) {
	doc, err := markup.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("marky render: %w", err)
	}
	ours := markup.NewRenderer(opts...).Render(doc)

	theirs, err := r.HTML(ctx, source)
	if err != nil {
		return nil, err
	}

	normalizedOurs, err := Normalize(ours)
	if err != nil {
		return nil, err
	}
	normalizedTheirs, err := Normalize(theirs)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Marky:     ours,
		Reference: theirs,
		Equal:     normalizedOurs == normalizedTheirs,
	}, nil
}
