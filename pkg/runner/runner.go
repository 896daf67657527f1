package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/marky/internal/logging"
)

// Runner orchestrates multi-file builds with a Builder.
type Runner struct {
	Builder *Builder
}

// New creates a new Runner with the given builder.
func New(builder *Builder) *Runner {
	return &Runner{Builder: builder}
}

// Run discovers files under opts.Paths and builds them concurrently.
// Each worker renders whole files on its own; outcomes are collected and
// reported in source path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()
	logger := logging.FromContext(ctx)

	sources, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(sources))}
	result.Stats.FilesDiscovered = len(sources)
	logger.Debug("discovered sources", logging.FieldFilesDiscovered, len(sources))

	if len(sources) == 0 {
		result.Stats.Duration = time.Since(started)
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	outDir := r.Builder.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(sources))

	workCh := make(chan Source)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, outDir)
		}()
	}

	go func() {
		defer close(workCh)
		for _, src := range sources {
			select {
			case <-ctx.Done():
				return
			case workCh <- src:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(sources))
	for outcome := range outCh {
		outcomes[outcome.Source.Path] = outcome
	}

	for _, src := range sources {
		if outcome, ok := outcomes[src.Path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(started)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(
	ctx context.Context,
	workCh <-chan Source,
	outCh chan<- FileOutcome,
	outDir string,
) {
	logger := logging.FromContext(ctx)

	for src := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := FileOutcome{Source: src}
		page, err := r.Builder.BuildFile(ctx, src, outDir)
		if err != nil {
			outcome.Error = err
			logger.Warn("build failed", logging.FieldPath, src.Rel, logging.FieldError, err)
		} else {
			outcome.Page = page
			logger.Debug("rendered",
				logging.FieldPath, src.Rel,
				logging.FieldOutput, page.Output,
				logging.FieldElements, page.Elements,
			)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}
