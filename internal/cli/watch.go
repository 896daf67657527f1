package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/internal/logging"
	"github.com/yaklabco/marky/pkg/fsutil"
	"github.com/yaklabco/marky/pkg/reporter"
	"github.com/yaklabco/marky/pkg/runner"
)

const defaultDebounce = 150 * time.Millisecond

type watchFlags struct {
	build    buildFlags
	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Build, then rebuild whenever a source changes",
		Long: `Watch builds the given paths once and then keeps running, rebuilding
whenever a source file is created, modified, renamed or removed. Events
arriving within the debounce window are folded into one rebuild, and
writes that leave a file's content unchanged are ignored.

Press Ctrl-C to stop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	flags.build.register(cmd)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "quiet period before rebuilding")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	if _, err := reporter.ParseFormat(flags.build.format); err != nil {
		return usageError(err)
	}

	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, cmd, flags.build.cliConfig())
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := flags.build.runnerOptions(cfg, args)
	opts.WorkingDir = workDir

	outDir := cfg.Build.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	w := &watcher{
		runner:   runner.New(runner.NewBuilder(cfg)),
		opts:     opts,
		outDir:   outDir,
		debounce: flags.debounce,
		report:   watchReport(cmd, &flags.build),
	}

	return w.watch(logging.WithLogger(ctx, logging.NewInteractive()))
}

// watchReport reports every rebuild. Failed files are part of the report and
// do not stop the watch; a report that cannot be written is logged.
func watchReport(cmd *cobra.Command, flags *buildFlags) func(context.Context, *runner.Result) {
	return func(ctx context.Context, result *runner.Result) {
		if err := reportBuild(cmd, flags, result); err != nil && !errors.Is(err, ErrBuildFailed) {
			logging.FromContext(ctx).Error("report failed", logging.FieldError, err)
		}
	}
}

// watcher rebuilds a tree on file system events.
type watcher struct {
	runner   *runner.Runner
	opts     runner.Options
	outDir   string
	debounce time.Duration
	report   func(context.Context, *runner.Result)

	// sources fingerprints every successfully built source by path.
	sources map[string]*fsutil.FileInfo
}

func (w *watcher) rebuild(ctx context.Context) error {
	result, err := w.runner.Run(ctx, w.opts)
	if err != nil {
		return err
	}

	w.sources = make(map[string]*fsutil.FileInfo, len(result.Files))
	for _, page := range result.Pages() {
		if page.Info != nil {
			w.sources[page.Source.Path] = page.Info
		}
	}

	if w.report != nil {
		w.report(ctx, result)
	}
	return nil
}

// watch builds once and then rebuilds on relevant events until ctx is done.
func (w *watcher) watch(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	if err := w.rebuild(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dirs, err := watchDirs(w.opts, w.outDir)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Info("watching for changes", logging.FieldPaths, len(dirs))

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if w.newDir(event) {
				if err := fsw.Add(event.Name); err != nil {
					logger.Warn("cannot watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
				}
				pending = time.After(w.debounce)
				continue
			}
			if !w.relevant(ctx, event) {
				continue
			}
			logger.Debug("source changed", logging.FieldEvent, event.Op.String(), logging.FieldPath, event.Name)
			pending = time.After(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-pending:
			pending = nil
			if err := w.rebuild(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("rebuild failed", logging.FieldError, err)
			}
		}
	}
}

// newDir reports a freshly created directory that should be watched too.
func (w *watcher) newDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	if isHidden(filepath.Base(name)) || within(w.outDir, name) {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

// relevant reports whether event may change the build output.
// Writes that leave a known source's content unchanged are not relevant.
func (w *watcher) relevant(ctx context.Context, event fsnotify.Event) bool {
	name := filepath.Clean(event.Name)
	if isHidden(filepath.Base(name)) || within(w.outDir, name) {
		return false
	}
	if !hasSourceExtension(name, w.opts.Extensions) {
		return false
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return true
	}

	info, ok := w.sources[name]
	if !ok {
		return true
	}
	changed, err := fsutil.Changed(ctx, info)
	return err != nil || changed
}

// watchDirs lists the directories to watch for opts: every non-hidden
// directory under the given paths, or the parent of a named file. The
// output directory is never watched.
func watchDirs(opts runner.Options, outDir string) ([]string, error) {
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; ok {
			return
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	for _, root := range paths {
		if !filepath.IsAbs(root) {
			root = filepath.Join(opts.WorkingDir, root)
		}
		root = filepath.Clean(root)

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Dir(root))
			continue
		}

		err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if !entry.IsDir() {
				return nil
			}
			if within(outDir, path) || (path != root && isHidden(entry.Name())) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory %s: %w", root, err)
		}
	}

	slices.Sort(dirs)
	return dirs, nil
}

func hasSourceExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = runner.DefaultExtensions()
	}
	ext := filepath.Ext(path)
	return slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// within reports whether path is dir or lies beneath it.
func within(dir, path string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
