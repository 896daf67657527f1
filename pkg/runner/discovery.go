package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// ErrOutputConflict is returned when two sources would render to the same output file.
var ErrOutputConflict = errors.New("sources share an output path")

// Source is a discovered markup file.
type Source struct {
	// Path is the absolute path of the file.
	Path string

	// Rel is the slash-separated path relative to the directory argument it
	// was found under, or the base name for files named directly. Output
	// paths mirror it.
	Rel string
}

// patternSet is a compiled list of glob patterns. Patterns are matched
// against slash-separated relative paths with '/' as separator, so '*'
// stays within one path segment and '**' crosses segments.
type patternSet []glob.Glob

func compilePatterns(patterns []string) (patternSet, error) {
	set := make(patternSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
		set = append(set, g)
	}
	return set, nil
}

// matchFile matches a file's relative path or its base name.
func (s patternSet) matchFile(rel string) bool {
	base := path.Base(rel)
	for _, g := range s {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchDir matches a directory, written with a trailing slash so that
// "drafts/**" prunes the drafts directory itself.
func (s patternSet) matchDir(rel string) bool {
	for _, g := range s {
		if g.Match(rel) || g.Match(rel+"/") {
			return true
		}
	}
	return false
}

type discoverer struct {
	ctx        context.Context //nolint:containedctx // Scoped to one Discover call.
	workDir    string
	extensions []string
	include    patternSet
	exclude    patternSet
	follow     bool

	// visited holds the resolved directories already walked, so that
	// followed links cannot loop back into them.
	visited map[string]struct{}
}

// Discover finds markup files matching opts. Results are deduplicated by
// absolute path and sorted by it.
func Discover(ctx context.Context, opts Options) ([]Source, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	disc := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		visited:    make(map[string]struct{}),
	}

	seen := make(map[string]struct{})
	var sources []Source
	add := func(src Source) {
		if _, ok := seen[src.Path]; ok {
			return
		}
		seen[src.Path] = struct{}{}
		sources = append(sources, src)
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Files named directly skip pattern filters but keep the extension check.
			if disc.hasExtension(absPath) {
				add(Source{Path: absPath, Rel: filepath.Base(absPath)})
			}
			continue
		}

		found, err := disc.walk(absPath)
		if err != nil {
			return nil, err
		}
		for _, src := range found {
			add(src)
		}
	}

	slices.SortFunc(sources, func(a, b Source) int {
		return strings.Compare(a.Path, b.Path)
	})

	if err := checkOutputs(sources); err != nil {
		return nil, err
	}

	return sources, nil
}

// checkOutputs rejects sources whose Rel paths render to the same file,
// such as index.md found under two directory arguments.
func checkOutputs(sources []Source) error {
	owners := make(map[string]string, len(sources))
	for _, src := range sources {
		out := OutputPath("", src.Rel)
		if other, ok := owners[out]; ok {
			return fmt.Errorf("%w: %s and %s both render to %s", ErrOutputConflict, other, src.Path, out)
		}
		owners[out] = src.Path
	}
	return nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk collects sources under dir with Rel paths relative to dir.
func (d *discoverer) walk(dir string) ([]Source, error) {
	var sources []Source

	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		d.visited[resolved] = struct{}{}
	}

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-d.ctx.Done():
			return d.ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := d.relTo(dir, path)

		if entry.IsDir() {
			if path == dir {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || d.exclude.matchDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			if info.IsDir() {
				if !d.follow || d.exclude.matchDir(rel) {
					return nil
				}
				target, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // Unresolvable targets are skipped.
				}
				if _, ok := d.visited[target]; ok {
					return nil
				}
				linked, err := d.walkLinked(rel, target)
				if err != nil {
					return err
				}
				sources = append(sources, linked...)
				return nil
			}
		}

		if d.matches(rel, path) {
			sources = append(sources, Source{Path: path, Rel: rel})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", dir, err)
	}

	return sources, nil
}

// walkLinked walks a symlinked directory, prefixing Rel paths with the
// link's own relative location.
func (d *discoverer) walkLinked(prefix, target string) ([]Source, error) {
	found, err := d.walk(target)
	if err != nil {
		return nil, err
	}

	sources := make([]Source, 0, len(found))
	for _, src := range found {
		rel := prefix + "/" + src.Rel
		if d.exclude.matchFile(rel) {
			continue
		}
		sources = append(sources, Source{Path: src.Path, Rel: rel})
	}
	return sources, nil
}

func (d *discoverer) relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (d *discoverer) matches(rel, path string) bool {
	if !d.hasExtension(path) {
		return false
	}
	if d.exclude.matchFile(rel) {
		return false
	}
	if len(d.include) > 0 && !d.include.matchFile(rel) {
		return false
	}
	return true
}

func (d *discoverer) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range d.extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
