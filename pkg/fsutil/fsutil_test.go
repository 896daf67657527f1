package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marky/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and fingerprint", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.md")
		require.NoError(t, os.WriteFile(path, []byte("# Title\n"), 0o644))

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))
		assert.Equal(t, path, info.Path)
		assert.EqualValues(t, 8, info.Size)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "whatever.md")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestChanged(t *testing.T) {
	t.Parallel()

	_, err := fsutil.Changed(context.Background(), nil)
	require.ErrorIs(t, err, fsutil.ErrNilFileInfo)

	tests := []struct {
		name   string
		mutate func(t *testing.T, path string)
		want   bool
	}{
		{
			name:   "untouched",
			mutate: func(*testing.T, string) {},
			want:   false,
		},
		{
			name: "touched without edit",
			mutate: func(t *testing.T, path string) {
				future := time.Now().Add(time.Hour)
				require.NoError(t, os.Chtimes(path, future, future))
			},
			want: false,
		},
		{
			name: "edited",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("changed content"), 0o644))
			},
			want: true,
		},
		{
			name: "deleted",
			mutate: func(t *testing.T, path string) {
				require.NoError(t, os.Remove(path))
			},
			want: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "page.md")
			require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

			_, info, err := fsutil.ReadFile(context.Background(), path)
			require.NoError(t, err)

			testCase.mutate(t, path)

			changed, err := fsutil.Changed(context.Background(), info)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, changed)
		})
	}
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "public", "guide", "index.html")

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("<p>hi</p>"), 0))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must not be left behind")
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

		require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("cancelled context leaves no file", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0), context.Canceled)
		assert.NoFileExists(t, path)
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out", "page.html")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("<h1>a</h1>"), 0)
	require.NoError(t, err)
	assert.True(t, written, "missing file is written")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("<h1>a</h1>"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content is skipped")

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("<h1>b</h1>"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<h1>b</h1>", string(got))
}
