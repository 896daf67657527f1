// Package config defines core configuration types for marky.
// These types are pure data structures; loading and layering lives in internal/configloader.
package config

import (
	"github.com/yaklabco/marky/pkg/markup"
)

// FrontMatterFormat selects the sidecar format written next to built pages.
type FrontMatterFormat string

const (
	FrontMatterNone FrontMatterFormat = ""
	FrontMatterYAML FrontMatterFormat = "yaml"
	FrontMatterJSON FrontMatterFormat = "json"
)

// IsValid returns true if the format is known.
func (f FrontMatterFormat) IsValid() bool {
	switch f {
	case FrontMatterNone, FrontMatterYAML, FrontMatterJSON:
		return true
	default:
		return false
	}
}

// DefaultOutputDir is where `marky build` writes pages when nothing else is configured.
const DefaultOutputDir = "public"

// RenderConfig controls how a single document becomes HTML.
type RenderConfig struct {
	// Minify drops separators and container indentation.
	Minify bool `yaml:"minify"`

	// DetectLanguage tags code blocks with a language-X class.
	DetectLanguage bool `yaml:"detect_language"`

	// PlusEmphasis treats '+' runs as emphasis delimiters.
	PlusEmphasis bool `yaml:"plus_emphasis"`
}

// BuildConfig controls multi-file builds.
type BuildConfig struct {
	// OutputDir receives the generated pages, mirroring the source tree.
	OutputDir string `yaml:"output_dir"`

	// Extensions lists the file extensions treated as markup sources.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore"`

	// Jobs is the number of parallel workers (0 = GOMAXPROCS).
	Jobs int `yaml:"jobs"`

	// FrontMatter writes a metadata sidecar per page when set.
	FrontMatter FrontMatterFormat `yaml:"front_matter"`
}

// Config is the root configuration structure for marky.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Build  BuildConfig  `yaml:"build"`

	// CLI-level options (not persisted to config files).

	// DryRun reports what would be written without touching the output directory.
	DryRun bool `yaml:"-"`

	// Force rewrites pages even when their content is unchanged.
	Force bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Build: BuildConfig{
			OutputDir:  DefaultOutputDir,
			Extensions: []string{".md", ".markdown"},
			Jobs:       0, // 0 means use GOMAXPROCS
		},
	}
}

// RenderOptions translates the render section into renderer options.
func (c *Config) RenderOptions() []markup.RenderOption {
	if c == nil {
		return nil
	}

	var opts []markup.RenderOption
	if c.Render.Minify {
		opts = append(opts, markup.WithCompact())
	}
	if c.Render.DetectLanguage {
		opts = append(opts, markup.WithLanguageDetection())
	}
	if c.Render.PlusEmphasis {
		opts = append(opts, markup.WithPlusEmphasis())
	}
	return opts
}
