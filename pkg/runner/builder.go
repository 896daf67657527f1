package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/fsutil"
	"github.com/yaklabco/marky/pkg/markup"
)

// Page describes one built source file.
type Page struct {
	Source Source

	// Output is the path of the generated HTML page.
	Output string

	// Sidecar is the path of the front matter file, if one was produced.
	Sidecar string

	// Elements counts the non-blank elements of the document.
	Elements int

	FrontMatter map[string]string

	// Written reports that the page or its sidecar changed on disk.
	// In dry-run mode it reports what would have changed.
	Written bool

	// Info fingerprints the source as it was read.
	Info *fsutil.FileInfo
}

// Builder turns one source file into its output page.
// A Builder holds no per-file state and is safe for concurrent use.
type Builder struct {
	// OutputDir receives the pages. A relative path is resolved against
	// the working directory of the run.
	OutputDir string

	FrontMatter config.FrontMatterFormat
	DryRun      bool
	Force       bool

	renderer *markup.Renderer
}

// NewBuilder creates a builder from the resolved configuration.
func NewBuilder(cfg *config.Config) *Builder {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Builder{
		OutputDir:   cfg.Build.OutputDir,
		FrontMatter: cfg.Build.FrontMatter,
		DryRun:      cfg.DryRun,
		Force:       cfg.Force,
		renderer:    markup.NewRenderer(cfg.RenderOptions()...),
	}
}

// OutputPath maps a source's relative path to its page under outDir:
// the extension is replaced by ".html".
func OutputPath(outDir, rel string) string {
	stem := strings.TrimSuffix(rel, path.Ext(rel))
	return filepath.Join(outDir, filepath.FromSlash(stem)+".html")
}

// BuildFile renders src into outDir.
func (b *Builder) BuildFile(ctx context.Context, src Source, outDir string) (*Page, error) {
	content, info, err := fsutil.ReadFile(ctx, src.Path)
	if err != nil {
		return nil, err
	}

	doc, err := markup.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Rel, err)
	}

	page := &Page{
		Source:      src,
		Output:      OutputPath(outDir, src.Rel),
		FrontMatter: doc.FrontMatter,
		Info:        info,
		Elements: lo.CountBy(doc.Elements, func(el markup.Element) bool {
			line, ok := el.(markup.Line)
			return !ok || line.Kind != markup.LineBlank
		}),
	}

	html := b.renderer.Render(doc)
	if html != "" {
		html += "\n"
	}
	page.Written, err = b.write(ctx, page.Output, []byte(html))
	if err != nil {
		return nil, err
	}

	if b.FrontMatter == config.FrontMatterNone || len(doc.FrontMatter) == 0 {
		return page, nil
	}

	meta, err := EncodeFrontMatter(doc.FrontMatter, b.FrontMatter)
	if err != nil {
		return nil, err
	}
	page.Sidecar = strings.TrimSuffix(page.Output, ".html") + sidecarExt(b.FrontMatter)
	written, err := b.write(ctx, page.Sidecar, meta)
	if err != nil {
		return nil, err
	}
	page.Written = page.Written || written

	return page, nil
}

func (b *Builder) write(ctx context.Context, target string, content []byte) (bool, error) {
	switch {
	case b.DryRun:
		existing, err := os.ReadFile(target)
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("read existing: %w", err)
		}
		return b.Force || !bytes.Equal(existing, content), nil
	case b.Force:
		if err := fsutil.WriteAtomic(ctx, target, content, fsutil.DefaultFileMode); err != nil {
			return false, err
		}
		return true, nil
	default:
		return fsutil.WriteAtomicIfChanged(ctx, target, content, fsutil.DefaultFileMode)
	}
}
