package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/marky/internal/configloader"
	"github.com/yaklabco/marky/internal/logging"
	"github.com/yaklabco/marky/pkg/config"
	"github.com/yaklabco/marky/pkg/fsutil"
)

// userConfigName is the file written by init --user.
const userConfigName = "config.yaml"

type initFlags struct {
	force  bool
	user   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a marky configuration file",
		Long: `Create a commented configuration file holding the default settings.

By default the file is .marky.yml in the current directory. With --user it
is written to the user configuration directory instead
($XDG_CONFIG_HOME/marky/config.yaml).

Examples:
  marky init
  marky init --user
  marky init --output site/marky.yml`,
		Args: maxArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.user, "user", false, "write the user-level configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .marky.yml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	if flags.user && flags.output != "" {
		return usageError(errors.New("--user and --output are mutually exclusive"))
	}

	outputPath, err := initTarget(flags)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	if _, err := os.Stat(outputPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := fsutil.WriteAtomic(ctx, outputPath, []byte(config.Template), fsutil.DefaultFileMode); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	return nil
}

func initTarget(flags *initFlags) (string, error) {
	if flags.user {
		dir, err := configloader.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("locate user config directory: %w", err)
		}
		return filepath.Join(dir, userConfigName), nil
	}

	target := flags.output
	if target == "" {
		target = configloader.ProjectConfigFiles[0]
	}
	absPath, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return absPath, nil
}
