package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/marky/pkg/config"
)

// envVarPrefix is the prefix for all marky environment variables.
const envVarPrefix = "MARKY_"

// envSetter applies one raw environment value to the config.
type envSetter func(cfg *config.Config, value string) error

// envMappings maps environment variable names (without prefix) to setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envSetter{
	"MINIFY":          boolSetter(func(c *config.Config) *bool { return &c.Render.Minify }),
	"DETECT_LANGUAGE": boolSetter(func(c *config.Config) *bool { return &c.Render.DetectLanguage }),
	"PLUS_EMPHASIS":   boolSetter(func(c *config.Config) *bool { return &c.Render.PlusEmphasis }),
	"OUTPUT_DIR": func(c *config.Config, value string) error {
		c.Build.OutputDir = value
		return nil
	},
	"EXTENSIONS": func(c *config.Config, value string) error {
		c.Build.Extensions = parseSliceValue(value)
		return nil
	},
	"IGNORE": func(c *config.Config, value string) error {
		c.Build.Ignore = parseSliceValue(value)
		return nil
	},
	"JOBS": func(c *config.Config, value string) error {
		jobs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		c.Build.Jobs = jobs
		return nil
	},
	"FRONT_MATTER": func(c *config.Config, value string) error {
		c.Build.FrontMatter = config.FrontMatterFormat(strings.ToLower(value))
		return nil
	},
}

func boolSetter(field func(*config.Config) *bool) envSetter {
	return func(c *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(c) = b
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MARKY_ (e.g., MARKY_OUTPUT_DIR).
// Variables are applied in name order so the first reported error is stable.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := envMappings[suffix](cfg, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"MARKY_MINIFY":          "Compact HTML output: true or false",
		"MARKY_DETECT_LANGUAGE": "Tag code blocks with their language: true or false",
		"MARKY_PLUS_EMPHASIS":   "Treat '+' as an emphasis delimiter: true or false",
		"MARKY_OUTPUT_DIR":      "Directory that receives built pages",
		"MARKY_EXTENSIONS":      "Comma-separated list of source extensions",
		"MARKY_IGNORE":          "Comma-separated list of ignore patterns",
		"MARKY_JOBS":            "Number of parallel workers (0 = auto)",
		"MARKY_FRONT_MATTER":    "Front matter sidecar format: yaml, json, or empty",
	}
}
