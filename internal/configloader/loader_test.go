package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/marky/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:       dir,
		IgnoreUserConfig: true,
		IgnoreEnv:        true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Build.OutputDir != config.DefaultOutputDir {
		t.Errorf("expected output dir %q, got %q", config.DefaultOutputDir, result.Config.Build.OutputDir)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, tmpDir, ".marky.yml", `
render:
  minify: true
build:
  output_dir: site
`)

	nested := filepath.Join(tmpDir, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !result.Config.Render.Minify {
		t.Error("expected minify from project config")
	}
	if result.Config.Build.OutputDir != "site" {
		t.Errorf("expected output dir %q, got %q", "site", result.Config.Build.OutputDir)
	}
	if got := result.Config.Build.Extensions; len(got) != 2 {
		t.Errorf("expected default extensions to survive, got %v", got)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
}

func TestLoad_ExplicitConfigOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".marky.yml", "render:\n  minify: true\n  detect_language: true\n")
	customPath := writeConfig(t, tmpDir, "custom.yml", "render:\n  minify: false\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Render.Minify {
		t.Error("expected explicit config to switch minify off")
	}
	if !result.Config.Render.DetectLanguage {
		t.Error("expected detect_language to survive from project config")
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != customPath {
		t.Errorf("unexpected load order: %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".marky.yml", "build:\n  jobs: 2\n  output_dir: site\n")

	opts := isolated(tmpDir)
	opts.CLIConfig = &config.Config{
		Render: config.RenderConfig{Minify: true},
		Build:  config.BuildConfig{Jobs: 8},
		Force:  true,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Build.Jobs != 8 {
		t.Errorf("expected jobs 8 (CLI override), got %d", result.Config.Build.Jobs)
	}
	if result.Config.Build.OutputDir != "site" {
		t.Errorf("expected output dir from project, got %q", result.Config.Build.OutputDir)
	}
	if !result.Config.Render.Minify || !result.Config.Force {
		t.Error("expected CLI booleans to be applied")
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "negative jobs", content: "build:\n  jobs: -1\n", want: "build.jobs"},
		{name: "bad front matter", content: "build:\n  front_matter: toml\n", want: "build.front_matter"},
		{name: "bad extension", content: "build:\n  extensions: [md]\n", want: "build.extensions[0]"},
		{name: "bad glob", content: "build:\n  ignore: [\"[a\"]\n", want: "build.ignore[0]"},
		{name: "unknown key", content: "flavor: gfm\n", want: "parse YAML"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeConfig(t, tmpDir, ".marky.yml", testCase.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), testCase.want) {
				t.Errorf("expected error mentioning %q, got %v", testCase.want, err)
			}
			if !strings.Contains(err.Error(), ".marky.yml") {
				t.Errorf("expected error naming the config file, got %v", err)
			}
		})
	}
}

func TestLoad_ValidationErrorType(t *testing.T) {
	t.Parallel()

	opts := isolated(t.TempDir())
	opts.CLIConfig = &config.Config{Build: config.BuildConfig{Jobs: -3}}

	_, err := Load(context.Background(), opts)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if validationErr.Field != "build.jobs" {
		t.Errorf("expected field build.jobs, got %q", validationErr.Field)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_UserConfigAndEnv(t *testing.T) {
	configHome := t.TempDir()
	writeConfig(t, configHome, filepath.Join("marky", "config.yaml"), "build:\n  output_dir: from-user\n  jobs: 3\n")
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("MARKY_JOBS", "5")
	t.Setenv("MARKY_IGNORE", "drafts/**, , tmp/*")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Paths.User == "" {
		t.Fatal("expected user config to be discovered")
	}
	if result.Config.Build.OutputDir != "from-user" {
		t.Errorf("expected output dir from user config, got %q", result.Config.Build.OutputDir)
	}
	if result.Config.Build.Jobs != 5 {
		t.Errorf("expected env to override jobs, got %d", result.Config.Build.Jobs)
	}
	if got := result.Config.Build.Ignore; len(got) != 2 || got[0] != "drafts/**" || got[1] != "tmp/*" {
		t.Errorf("unexpected ignore patterns: %v", got)
	}
}

func TestLoadFromEnv_Errors(t *testing.T) {
	t.Setenv("MARKY_MINIFY", "sometimes")

	err := LoadFromEnv(config.NewConfig())
	if err == nil {
		t.Fatal("expected error for invalid boolean")
	}
	if !strings.Contains(err.Error(), "MARKY_MINIFY") {
		t.Errorf("expected variable name in error, got %v", err)
	}
}

func TestLoadFromEnv_CanDisable(t *testing.T) {
	t.Setenv("MARKY_DETECT_LANGUAGE", "false")
	t.Setenv("MARKY_FRONT_MATTER", "JSON")

	cfg := config.NewConfig()
	cfg.Render.DetectLanguage = true
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Render.DetectLanguage {
		t.Error("expected env to switch detect_language off")
	}
	if cfg.Build.FrontMatter != config.FrontMatterJSON {
		t.Errorf("expected json front matter, got %q", cfg.Build.FrontMatter)
	}
}

func TestListEnvVarsCoversMappings(t *testing.T) {
	t.Parallel()

	described := ListEnvVars()
	for suffix := range envMappings {
		if _, ok := described[envVarPrefix+suffix]; !ok {
			t.Errorf("missing description for %s%s", envVarPrefix, suffix)
		}
	}
}
