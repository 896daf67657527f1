package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marky/pkg/markup"
	"github.com/yaklabco/marky/pkg/reference"
)

func TestNew(t *testing.T) {
	t.Parallel()

	assert.Equal(t, reference.FlavorCommonMark, reference.New("").Flavor())
	assert.Equal(t, reference.FlavorCommonMark, reference.New("bogus").Flavor())
	assert.Equal(t, reference.FlavorGFM, reference.New(reference.FlavorGFM).Flavor())
}

func TestHTML(t *testing.T) {
	t.Parallel()

	out, err := reference.New(reference.FlavorCommonMark).HTML(context.Background(), "# Title\n")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = reference.New("").HTML(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "collapses layout", input: "<ul>\n\t<li>one</li>\n\t<li>two</li>\n</ul>\n", want: "<ul><li>one</li><li>two</li></ul>"},
		{name: "collapses text", input: "<p>a \n  b</p>", want: "<p>a b</p>"},
		{name: "sorts attributes", input: `<img src="x.png" alt="pic">`, want: `<img alt="pic" src="x.png">`},
		{name: "self closing", input: `<hr />`, want: `<hr>`},
		{name: "escapes text", input: "<p>a &amp; b</p>", want: "<p>a &amp; b</p>"},
		{name: "drops comments", input: "<p>x</p><!-- c -->", want: "<p>x</p>"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := reference.Normalize(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		equal  bool
	}{
		{name: "heading and emphasis", source: "# Hi\n\nsome *em* and **strong** text", equal: true},
		{name: "list", source: "- one\n- two\n", equal: true},
		{name: "code block", source: "```\ncode\n```\n", equal: true},
		{name: "rule", source: "***\n", equal: true},
		{name: "link", source: "see [docs](https://example.com)", equal: true},
		{name: "marker without space", source: "-item\n", equal: false},
		{name: "setext heading", source: "Title\n===\n", equal: false},
	}

	renderer := reference.New(reference.FlavorCommonMark)
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cmp, err := renderer.Compare(context.Background(), testCase.source)
			require.NoError(t, err)
			assert.Equal(t, testCase.equal, cmp.Equal, "marky=%q reference=%q", cmp.Marky, cmp.Reference)
		})
	}
}

func TestCompare_Errors(t *testing.T) {
	t.Parallel()

	_, err := reference.New("").Compare(context.Background(), "```\nopen")
	require.ErrorIs(t, err, markup.ErrUnterminatedFence)
}

func TestCompare_Options(t *testing.T) {
	t.Parallel()

	cmp, err := reference.New("").Compare(context.Background(), "# a\n\nb", markup.WithCompact())
	require.NoError(t, err)
	assert.Equal(t, "<h1>a</h1><p>b</p>", cmp.Marky)
	assert.True(t, cmp.Equal)
}
