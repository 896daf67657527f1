package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// ErrBuildFailed is returned when at least one file failed to build.
	// The failures have already been reported.
	ErrBuildFailed = errors.New("build failed")

	// ErrOutputsDiffer is returned by compare --strict when the renderings disagree.
	ErrOutputsDiffer = errors.New("outputs differ")

	// ErrInteractiveStdin is returned when input would be read from a terminal.
	ErrInteractiveStdin = errors.New("refusing to read from an interactive terminal; pass a file or pipe input")

	// ErrUsage marks invalid command-line usage.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig marks configuration loading or validation failures.
	ErrConfig = errors.New("configuration error")
)

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// maxArgs is cobra.MaximumNArgs with the error marked as a usage error.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// isSilent reports errors that only carry an exit status; their details
// have already been printed.
func isSilent(err error) bool {
	return errors.Is(err, ErrBuildFailed) || errors.Is(err, ErrOutputsDiffer)
}

// IsSilent reports whether main should skip logging err.
func IsSilent(err error) bool {
	return isSilent(err)
}
