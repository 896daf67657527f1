package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/markup"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.DefaultOutputDir, cfg.Build.OutputDir)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Build.Extensions)
	assert.Zero(t, cfg.Build.Jobs)
	assert.Equal(t, config.FrontMatterNone, cfg.Build.FrontMatter)
	assert.False(t, cfg.Render.Minify)
}

func TestFrontMatterFormatIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format config.FrontMatterFormat
		want   bool
	}{
		{config.FrontMatterNone, true},
		{config.FrontMatterYAML, true},
		{config.FrontMatterJSON, true},
		{"toml", false},
	}

	for _, testCase := range tests {
		assert.Equal(t, testCase.want, testCase.format.IsValid(), "format %q", testCase.format)
	}
}

func TestRenderOptions(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	assert.Nil(t, nilConfig.RenderOptions())

	cfg := config.NewConfig()
	assert.Empty(t, cfg.RenderOptions())

	cfg.Render.Minify = true
	cfg.Render.PlusEmphasis = true
	opts := cfg.RenderOptions()
	require.Len(t, opts, 2)

	doc, err := markup.Parse("# a +b+\npara")
	require.NoError(t, err)
	assert.Equal(t, "<h1>a <em>b</em></h1><p>para</p>", markup.NewRenderer(opts...).Render(doc))
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Render.DetectLanguage = true
	cfg.Build.Ignore = []string{"drafts/**"}
	cfg.Build.FrontMatter = config.FrontMatterJSON
	cfg.DryRun = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "detect_language: true")
	assert.NotContains(t, string(data), "dryrun")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.True(t, parsed.Render.DetectLanguage)
	assert.Equal(t, []string{"drafts/**"}, parsed.Build.Ignore)
	assert.Equal(t, config.FrontMatterJSON, parsed.Build.FrontMatter)
	assert.False(t, parsed.DryRun)
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()
		_, err := config.FromYAML([]byte("render:\n  minfy: true\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})

	t.Run("template parses", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.FromYAML([]byte(config.Template))
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	var nilConfig *config.Config
	assert.Nil(t, nilConfig.Clone())

	original := config.NewConfig()
	original.Build.Ignore = []string{"a/**"}
	original.Force = true

	clone := original.Clone()
	require.NotNil(t, clone)
	assert.NotSame(t, original, clone)
	assert.True(t, clone.Force)

	clone.Build.Ignore[0] = "b/**"
	clone.Build.Extensions[0] = ".txt"
	assert.Equal(t, "a/**", original.Build.Ignore[0])
	assert.Equal(t, ".md", original.Build.Extensions[0])
}
