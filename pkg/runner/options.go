// Package runner provides multi-file build orchestration: discovery of
// markup sources, concurrent rendering, and output writing.
package runner

import "github.com/yaklabco/marky/pkg/config"

// Options controls multi-file discovery and building.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// a relative output directory.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (with leading dot) considered
	// markup sources. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restrict discovery to matching files when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// OptionsFromConfig seeds Options from the build section of cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Build.Extensions
	opts.ExcludeGlobs = cfg.Build.Ignore
	opts.Jobs = cfg.Build.Jobs
	return opts
}

// DefaultExtensions returns the default set of markup file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
