package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marky/internal/logging"
	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/runner"
)

func mkfile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatchDirs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkfile(t, filepath.Join(root, "index.md"), "# a")
	mkfile(t, filepath.Join(root, "docs", "deep", "page.md"), "# b")
	mkfile(t, filepath.Join(root, ".git", "HEAD"), "ref")
	mkfile(t, filepath.Join(root, "public", "index.html"), "<h1>a</h1>")

	dirs, err := watchDirs(runner.Options{WorkingDir: root}, filepath.Join(root, "public"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		root,
		filepath.Join(root, "docs"),
		filepath.Join(root, "docs", "deep"),
	}, dirs)

	dirs, err = watchDirs(runner.Options{
		WorkingDir: root,
		Paths:      []string{"index.md", "docs/deep/page.md", "docs/deep"},
	}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{root, filepath.Join(root, "docs", "deep")}, dirs)

	_, err = watchDirs(runner.Options{WorkingDir: root, Paths: []string{"missing"}}, "")
	require.Error(t, err)
}

func TestWithin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir  string
		path string
		want bool
	}{
		{"/site/public", "/site/public", true},
		{"/site/public", "/site/public/a/b.html", true},
		{"/site/public", "/site/publication/a.md", false},
		{"/site/public", "/site/index.md", false},
		{"/site/public", "/site/..public/x", false},
		{"", "/site/index.md", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, within(tt.dir, tt.path), "%s in %s", tt.path, tt.dir)
	}
}

func TestWatcherRelevant(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outDir := filepath.Join(root, "public")
	source := filepath.Join(root, "index.md")
	mkfile(t, source, "# a\n")

	cfg := config.NewConfig()
	cfg.Build.OutputDir = outDir
	w := &watcher{
		runner: runner.New(runner.NewBuilder(cfg)),
		opts:   runner.Options{WorkingDir: root},
		outDir: outDir,
	}
	ctx := context.Background()
	require.NoError(t, w.rebuild(ctx))
	require.Contains(t, w.sources, source)

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"chmod without change", fsnotify.Event{Name: source, Op: fsnotify.Chmod}, false},
		{"write without change", fsnotify.Event{Name: source, Op: fsnotify.Write}, false},
		{"remove", fsnotify.Event{Name: source, Op: fsnotify.Remove}, true},
		{"create", fsnotify.Event{Name: filepath.Join(root, "new.md"), Op: fsnotify.Create}, true},
		{"unknown source", fsnotify.Event{Name: filepath.Join(root, "other.md"), Op: fsnotify.Write}, true},
		{"other extension", fsnotify.Event{Name: filepath.Join(root, "notes.txt"), Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: filepath.Join(root, ".index.md.swp"), Op: fsnotify.Create}, false},
		{"output directory", fsnotify.Event{Name: filepath.Join(outDir, "x.md"), Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, w.relevant(ctx, tt.event), tt.name)
	}

	mkfile(t, source, "# changed heading\n")
	assert.True(t, w.relevant(ctx, fsnotify.Event{Name: source, Op: fsnotify.Write}))
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outDir := filepath.Join(root, "public")
	source := filepath.Join(root, "index.md")
	page := filepath.Join(outDir, "index.html")
	mkfile(t, source, "# first\n")

	cfg := config.NewConfig()
	cfg.Build.OutputDir = outDir

	var builds atomic.Int32
	w := &watcher{
		runner:   runner.New(runner.NewBuilder(cfg)),
		opts:     runner.Options{WorkingDir: root},
		outDir:   outDir,
		debounce: 10 * time.Millisecond,
		report: func(context.Context, *runner.Result) {
			builds.Add(1)
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.watch(ctx)
	}()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(page)
		return err == nil && string(data) == "<h1>first</h1>\n"
	}, 5*time.Second, 10*time.Millisecond)

	// Keep rewriting until the watcher has picked up the change; the first
	// write may land before the watch is registered.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(source, []byte("# second\n"), 0o644)
		data, err := os.ReadFile(page)
		return err == nil && string(data) == "<h1>second</h1>\n"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, builds.Load(), int32(2))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWatchReport(t *testing.T) {
	t.Parallel()

	failed := &runner.Result{
		Files: []runner.FileOutcome{{
			Source: runner.Source{Path: "/site/bad.md", Rel: "bad.md"},
			Error:  errors.New("boom"),
		}},
		Stats: runner.Stats{FilesDiscovered: 1, FilesErrored: 1},
	}

	tests := []struct {
		name    string
		out     io.Writer
		result  *runner.Result
		wantLog string
	}{
		{name: "unwritable report is logged", out: failingWriter{}, result: &runner.Result{}, wantLog: "disk full"},
		{name: "failed files are not logged", out: &bytes.Buffer{}, result: failed},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			ctx := logging.WithLogger(context.Background(), log.New(&logs))

			cmd := &cobra.Command{}
			cmd.SetOut(testCase.out)
			cmd.SetContext(ctx)

			watchReport(cmd, &buildFlags{format: "text"})(ctx, testCase.result)

			if testCase.wantLog == "" {
				assert.Empty(t, logs.String())
				return
			}
			assert.Contains(t, logs.String(), "report failed")
			assert.Contains(t, logs.String(), testCase.wantLog)
		})
	}
}
