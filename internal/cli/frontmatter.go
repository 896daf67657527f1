package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/markup"
	"github.com/yaklabco/marky/pkg/runner"
)

func newFrontMatterCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "frontmatter [file|-]",
		Short: "Print a document's front matter",
		Long: `Print the key/value pairs of a document's front matter block as YAML
or JSON. A document without front matter prints nothing.

Examples:
  marky frontmatter post.md
  marky frontmatter post.md --format json`,
		Args: maxArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontMatter(cmd, args, config.FrontMatterFormat(format))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(config.FrontMatterYAML), "output format: yaml or json")

	return cmd
}

func runFrontMatter(cmd *cobra.Command, args []string, format config.FrontMatterFormat) error {
	if format == config.FrontMatterNone || !format.IsValid() {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or json", format))
	}

	ctx := commandContext(cmd)
	source, name, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	doc, err := markup.Parse(source)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if len(doc.FrontMatter) == 0 {
		return nil
	}

	data, err := runner.EncodeFrontMatter(doc.FrontMatter, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
