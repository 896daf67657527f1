package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/marky/internal/ui/pretty"
	"github.com/yaklabco/marky/pkg/runner"
)

// TextReporter writes styled terminal output: a one-line summary, a page
// table followed by the summary line, or a summary block.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	switch r.opts.Format {
	case FormatTable:
		fmt.Fprint(r.bw, r.styles.FormatPageTable(result))
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	case FormatSummary:
		for _, failed := range result.Failed() {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(failed.Source.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", failed.Error)),
			)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))
	default:
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return result.Stats.FilesErrored, nil
}
