package configloader

import "github.com/yaklabco/marky/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true in override is visible, so flags can enable but not disable
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Render.Minify {
		result.Render.Minify = true
	}
	if override.Render.DetectLanguage {
		result.Render.DetectLanguage = true
	}
	if override.Render.PlusEmphasis {
		result.Render.PlusEmphasis = true
	}

	if override.Build.OutputDir != "" {
		result.Build.OutputDir = override.Build.OutputDir
	}
	if override.Build.Jobs != 0 {
		result.Build.Jobs = override.Build.Jobs
	}
	if override.Build.FrontMatter != "" {
		result.Build.FrontMatter = override.Build.FrontMatter
	}
	if override.Build.Extensions != nil {
		result.Build.Extensions = override.Build.Extensions
	}
	if override.Build.Ignore != nil {
		result.Build.Ignore = override.Build.Ignore
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.Force {
		result.Force = true
	}

	return result
}
