package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/marky/internal/configloader"
	"github.com/yaklabco/marky/internal/logging"
	"github.com/yaklabco/marky/internal/ui/pretty"
	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/fsutil"
)

// stdinName is the label used for input read from stdin.
const stdinName = "<stdin>"

// renderFlags are shared by every command that renders documents.
type renderFlags struct {
	minify         bool
	detectLanguage bool
	plusEmphasis   bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.minify, "min", false, "emit compact HTML without separators or indentation")
	cmd.Flags().BoolVar(&f.detectLanguage, "detect-language", false,
		"tag fenced code blocks with a detected language class")
	cmd.Flags().BoolVar(&f.plusEmphasis, "plus-emphasis", false, "treat '+' runs as emphasis delimiters")
}

func (f *renderFlags) apply(cfg *config.Config) {
	cfg.Render.Minify = f.minify
	cfg.Render.DetectLanguage = f.detectLanguage
	cfg.Render.PlusEmphasis = f.plusEmphasis
}

// commandContext returns the command's context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the layered configuration with cliCfg on top.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	result, err := loadConfigResult(ctx, cmd, cliCfg)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

func loadConfigResult(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*configloader.LoadResult, error) {
	configPath, _ := cmd.Flags().GetString("config")

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	logger := logging.FromContext(ctx)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, result.LoadedFrom)
	}

	return result, nil
}

// readInput returns the document named by args, or stdin when args is
// empty or "-". It refuses to block on an interactive terminal.
func readInput(ctx context.Context, cmd *cobra.Command, args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		in := cmd.InOrStdin()
		if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return "", "", ErrInteractiveStdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), stdinName, nil
	}

	data, _, err := fsutil.ReadFile(ctx, args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}

// outputStyles returns styles for w honoring the --color flag.
func outputStyles(cmd *cobra.Command, w io.Writer) *pretty.Styles {
	mode, _ := cmd.Flags().GetString("color")
	return pretty.NewStyles(pretty.IsColorEnabled(mode, w))
}
