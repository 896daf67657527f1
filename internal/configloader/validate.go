package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/marky/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "build.jobs").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if strings.TrimSpace(cfg.Build.OutputDir) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "build.output_dir",
			Value:   cfg.Build.OutputDir,
			Message: "output directory must not be empty",
		})
	}

	if cfg.Build.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "build.jobs",
			Value:   cfg.Build.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	if !cfg.Build.FrontMatter.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "build.front_matter",
			Value:   cfg.Build.FrontMatter,
			Message: fmt.Sprintf("invalid front matter format %q; must be one of: yaml, json, or empty", cfg.Build.FrontMatter),
		})
	}

	if len(cfg.Build.Extensions) == 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "build.extensions",
			Message: "no extensions configured; builds will only render explicitly named files",
		})
	}
	for i, ext := range cfg.Build.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("build.extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q must start with '.'", ext),
			})
		}
	}

	for i, pattern := range cfg.Build.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("build.ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
