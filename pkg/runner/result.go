package runner

import (
	"time"

	"github.com/samber/lo"
)

// FileOutcome pairs a source with the page built from it or the error that stopped it.
type FileOutcome struct {
	Source Source

	// Page is nil when Error is set.
	Page *Page

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesRendered is the number of files parsed and rendered successfully.
	FilesRendered int

	// FilesWritten is the number of pages whose output changed on disk.
	FilesWritten int

	// FilesErrored is the number of files that failed to build.
	FilesErrored int

	// Elements is the total number of non-blank elements rendered.
	Elements int

	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by source path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed to build.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Failed returns the outcomes that carry an error.
func (r *Result) Failed() []FileOutcome {
	if r == nil {
		return nil
	}
	return lo.Filter(r.Files, func(outcome FileOutcome, _ int) bool {
		return outcome.Error != nil
	})
}

// Pages returns the successfully built pages in source order.
func (r *Result) Pages() []*Page {
	if r == nil {
		return nil
	}
	return lo.FilterMap(r.Files, func(outcome FileOutcome, _ int) (*Page, bool) {
		return outcome.Page, outcome.Page != nil
	})
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Page == nil {
		return
	}

	r.Stats.FilesRendered++
	r.Stats.Elements += outcome.Page.Elements
	if outcome.Page.Written {
		r.Stats.FilesWritten++
	}
}
