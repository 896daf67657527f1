package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/internal/logging"
	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/fsutil"
	"github.com/yaklabco/marky/pkg/markup"
)

type renderCmdFlags struct {
	render renderFlags
	output string
}

func newRenderCommand() *cobra.Command {
	flags := &renderCmdFlags{}

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render one document to HTML",
		Long: `Render a single document and print its HTML.

Input is read from the named file, or from stdin when the argument is
omitted or "-". The HTML goes to stdout unless --output names a file.

Examples:
  marky render README.md
  cat notes.md | marky render --min
  marky render post.md -o post.html`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	flags.render.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write HTML to this file instead of stdout")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, flags *renderCmdFlags) error {
	ctx := commandContext(cmd)

	cliCfg := &config.Config{}
	flags.render.apply(cliCfg)
	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	source, name, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	html, err := markup.HTML(source, cfg.RenderOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if html != "" {
		html += "\n"
	}

	if flags.output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), html)
		return err
	}

	if err := fsutil.WriteAtomic(ctx, flags.output, []byte(html), fsutil.DefaultFileMode); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("rendered", logging.FieldInput, name, logging.FieldOutput, flags.output)
	return nil
}
