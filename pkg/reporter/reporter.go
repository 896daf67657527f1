// Package reporter writes the outcome of a build in a chosen format.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/marky/pkg/runner"
)

// Reporter formats and writes build results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of failed files and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText, FormatTable, FormatSummary:
		opts.Format = format
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// displayPath makes path relative to workDir when possible.
func displayPath(path, workDir string) string {
	if workDir == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}
