package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/internal/configloader"
)

type configFlags struct {
	sources bool
	env     bool
}

func newConfigCommand() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration marky would use from the current directory,
after layering defaults, the user and project files, --config and MARKY_*
environment variables.

Examples:
  marky config
  marky config --sources
  marky config --env`,
		Args: maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.sources, "sources", false, "list the configuration files that were loaded")
	cmd.Flags().BoolVar(&flags.env, "env", false, "list the supported environment variables")

	return cmd
}

func runConfig(cmd *cobra.Command, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		vars := configloader.ListEnvVars()
		for _, name := range slices.Sorted(maps.Keys(vars)) {
			fmt.Fprintf(out, "%-22s %s\n", name, vars[name])
		}
		return nil
	}

	result, err := loadConfigResult(commandContext(cmd), cmd, nil)
	if err != nil {
		return err
	}

	if flags.sources {
		if len(result.LoadedFrom) == 0 {
			fmt.Fprintln(out, "defaults (no configuration files found)")
		}
		for _, path := range result.LoadedFrom {
			fmt.Fprintln(out, path)
		}
		return nil
	}

	data, err := result.Config.ToYAML()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
