package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/internal/logging"
	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/reporter"
	"github.com/yaklabco/marky/pkg/runner"
)

// buildFlags holds the flags shared by build and watch.
type buildFlags struct {
	render      renderFlags
	outputDir   string
	jobs        int
	ignore      []string
	include     []string
	extensions  []string
	frontMatter string
	follow      bool
	format      string
	dryRun      bool
	force       bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	f.render.register(cmd)
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "directory receiving the pages (default \"public\")")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "parallel workers (0 = number of CPUs)")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "glob patterns of files or directories to skip")
	cmd.Flags().StringSliceVar(&f.include, "include", nil, "only build files matching these glob patterns")
	cmd.Flags().StringSliceVar(&f.extensions, "ext", nil, "source file extensions (default .md,.markdown)")
	cmd.Flags().StringVar(&f.frontMatter, "front-matter", "", "write a front matter sidecar per page: yaml or json")
	cmd.Flags().BoolVar(&f.follow, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().StringVar(&f.format, "format", string(reporter.FormatText), "report format: text, table, summary, json")
}

func (f *buildFlags) cliConfig() *config.Config {
	cfg := &config.Config{
		Build: config.BuildConfig{
			OutputDir:   f.outputDir,
			Jobs:        f.jobs,
			Ignore:      f.ignore,
			Extensions:  f.extensions,
			FrontMatter: config.FrontMatterFormat(f.frontMatter),
		},
		DryRun: f.dryRun,
		Force:  f.force,
	}
	f.render.apply(cfg)
	return cfg
}

func (f *buildFlags) runnerOptions(cfg *config.Config, paths []string) runner.Options {
	opts := runner.OptionsFromConfig(cfg, paths)
	opts.IncludeGlobs = f.include
	opts.FollowSymlinks = f.follow
	return opts
}

func newBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Build every document under the given paths",
		Long: `Build compiles every markup file found under the given files or
directories (default: the current directory) into HTML pages in the output
directory, mirroring the source tree. Hidden files and directories are
skipped. Pages whose content is unchanged are not rewritten.

Examples:
  marky build
  marky build docs -o site --min
  marky build --ignore 'drafts/**' --front-matter yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "report what would be written without writing")
	cmd.Flags().BoolVar(&flags.force, "force", false, "rewrite pages even when unchanged")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, flags *buildFlags) error {
	if _, err := reporter.ParseFormat(flags.format); err != nil {
		return usageError(err)
	}

	ctx := commandContext(cmd)

	cfg, err := loadConfig(ctx, cmd, flags.cliConfig())
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("building",
		logging.FieldPaths, args,
		logging.FieldOutputDir, cfg.Build.OutputDir,
		logging.FieldJobs, cfg.Build.Jobs,
		logging.FieldMinify, cfg.Render.Minify,
		logging.FieldDetectLanguage, cfg.Render.DetectLanguage,
	)

	result, err := runner.New(runner.NewBuilder(cfg)).Run(ctx, flags.runnerOptions(cfg, args))
	if err != nil {
		return err
	}

	return reportBuild(cmd, flags, result)
}

// reportBuild prints the outcome of a run and returns ErrBuildFailed if
// any file failed. Individual failures were already logged by the runner.
func reportBuild(cmd *cobra.Command, flags *buildFlags, result *runner.Result) error {
	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return usageError(err)
	}

	color, _ := cmd.Flags().GetString("color")
	workDir, _ := os.Getwd()

	rep, err := reporter.New(reporter.Options{
		Writer:     cmd.OutOrStdout(),
		Format:     format,
		Color:      color,
		WorkingDir: workDir,
	})
	if err != nil {
		return err
	}

	failed, err := rep.Report(cmd.Context(), result)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if failed > 0 {
		return ErrBuildFailed
	}
	return nil
}
