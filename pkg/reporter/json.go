package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/marky/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Source      string            `json:"source"`
	Output      string            `json:"output,omitempty"`
	Sidecar     string            `json:"sidecar,omitempty"`
	Elements    int               `json:"elements"`
	Written     bool              `json:"written"`
	FrontMatter map[string]string `json:"frontMatter,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int   `json:"filesDiscovered"`
	FilesRendered   int   `json:"filesRendered"`
	FilesWritten    int   `json:"filesWritten"`
	FilesErrored    int   `json:"filesErrored"`
	Elements        int   `json:"elements"`
	DurationMillis  int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesErrored, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesRendered:   stats.FilesRendered,
		FilesWritten:    stats.FilesWritten,
		FilesErrored:    stats.FilesErrored,
		Elements:        stats.Elements,
		DurationMillis:  stats.Duration.Milliseconds(),
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Source: displayPath(file.Source.Path, r.opts.WorkingDir),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if page := file.Page; page != nil {
			fileResult.Output = displayPath(page.Output, r.opts.WorkingDir)
			fileResult.Sidecar = displayPath(page.Sidecar, r.opts.WorkingDir)
			fileResult.Elements = page.Elements
			fileResult.Written = page.Written
			fileResult.FrontMatter = page.FrontMatter
		}

		output.Files = append(output.Files, fileResult)
	}

	return output
}
