package pretty_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marky/internal/ui/pretty"
	"github.com/yaklabco/marky/pkg/reference"
	"github.com/yaklabco/marky/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing found",
			stats: runner.Stats{},
			want:  "No source files found\n",
		},
		{
			name:  "written",
			stats: runner.Stats{FilesDiscovered: 3, FilesRendered: 3, FilesWritten: 2, Duration: 42 * time.Millisecond},
			want:  "Built 3 files, 2 written (42ms)\n",
		},
		{
			name:  "unchanged with failure",
			stats: runner.Stats{FilesDiscovered: 2, FilesRendered: 1, FilesErrored: 1, Duration: 500 * time.Microsecond},
			want:  "Built 1 file, nothing changed, 1 failed (500µs)\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(runner.Stats{
		FilesDiscovered: 10,
		FilesRendered:   9,
		FilesWritten:    4,
		FilesErrored:    1,
		Elements:        120,
		Duration:        1500 * time.Millisecond,
	})

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files discovered:  10")
	assert.Contains(t, result, "Files written:     4")
	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Elements:          120")
	assert.Contains(t, result, "Duration:          1.5s")
	assert.Contains(t, result, "Build finished with errors")

	clean := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesRendered: 1})
	assert.NotContains(t, clean, "Files failed")
	assert.Contains(t, clean, "Build succeeded")
}

func TestFormatPageTable(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Empty(t, styles.FormatPageTable(nil))

	result := &runner.Result{Files: []runner.FileOutcome{
		{
			Source: runner.Source{Rel: "index.md"},
			Page:   &runner.Page{Output: "public/index.html", Elements: 3, Written: true},
		},
		{
			Source: runner.Source{Rel: "guide/long-name.md"},
			Page:   &runner.Page{Output: "public/guide/long-name.html", Elements: 12},
		},
		{
			Source: runner.Source{Rel: "bad.md"},
			Error:  errors.New("scan: line 1: unterminated code fence"),
		},
	}}

	lines := strings.Split(strings.TrimRight(styles.FormatPageTable(result), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "SOURCE              OUTPUT                                 ELEMENTS  STATUS", lines[0])
	assert.Equal(t, "index.md            public/index.html                      3         written", lines[1])
	assert.Equal(t, "guide/long-name.md  public/guide/long-name.html            12        unchanged", lines[2])
	assert.Equal(t, "bad.md              scan: line 1: unterminated code fence  -         failed", lines[3])
}

func TestFormatComparison(t *testing.T) {
	styles := pretty.NewStyles(false)

	out := styles.FormatComparison(&reference.Comparison{
		Marky:     "<p>a</p>",
		Reference: "<p>a</p>\n",
		Equal:     true,
	}, "commonmark")
	assert.Contains(t, out, "marky")
	assert.Contains(t, out, "commonmark")
	assert.Contains(t, out, "<p>a</p>")
	assert.Contains(t, out, "outputs agree")

	out = styles.FormatComparison(&reference.Comparison{Marky: "<ul></ul>", Reference: "<p>-</p>"}, "gfm")
	assert.Contains(t, out, "outputs differ")
}
