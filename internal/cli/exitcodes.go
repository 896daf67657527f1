package cli

import (
	"errors"

	"github.com/yaklabco/marky/pkg/fsutil"
	"github.com/yaklabco/marky/pkg/markup"
)

// Exit codes for marky.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitFailure indicates a build with failed files, or differing outputs in compare --strict.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates input that marky could not compile.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ExitCodeFromError maps a command error to a process exit code.
func ExitCodeFromError(err error) int {
	var scanErr *markup.ScanError
	var parseErr *markup.ParseError

	switch {
	case err == nil:
		return ExitSuccess
	case isSilent(err):
		return ExitFailure
	case errors.Is(err, ErrUsage), errors.Is(err, ErrInteractiveStdin):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.As(err, &scanErr), errors.As(err, &parseErr):
		return ExitDataError
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}
