package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/reference"
)

type compareFlags struct {
	render renderFlags
	flavor string
	strict bool
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [file|-]",
		Short: "Compare marky's HTML with a CommonMark renderer",
		Long: `Compare renders a document with marky and with goldmark, shows both
results side by side and reports whether they agree once whitespace,
attribute order and void tags are normalized.

marky's dialect is deliberately smaller than CommonMark, so differences are
expected; compare helps spot where a document relies on either behavior.

Examples:
  marky compare README.md
  marky compare notes.md --flavor gfm --strict`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, flags)
		},
	}

	flags.render.register(cmd)
	cmd.Flags().StringVar(&flags.flavor, "flavor", reference.FlavorCommonMark, "reference flavor: commonmark or gfm")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 when the outputs differ")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, flags *compareFlags) error {
	if flags.flavor != reference.FlavorCommonMark && flags.flavor != reference.FlavorGFM {
		return usageError(fmt.Errorf("invalid flavor %q: must be %s or %s",
			flags.flavor, reference.FlavorCommonMark, reference.FlavorGFM))
	}

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

	cmp, err := reference.New(flags.flavor).Compare(ctx, source, cfg.RenderOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, outputStyles(cmd, out).FormatComparison(cmp, flags.flavor))

	if flags.strict && !cmp.Equal {
		return ErrOutputsDiffer
	}
	return nil
}
