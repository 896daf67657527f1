package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/marky/internal/cli"
	"github.com/yaklabco/marky/pkg/fsutil"
	"github.com/yaklabco/marky/pkg/markup"
)

func TestExitCodeFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"build failed", cli.ErrBuildFailed, cli.ExitFailure},
		{"outputs differ", fmt.Errorf("wrapped: %w", cli.ErrOutputsDiffer), cli.ExitFailure},
		{"usage", fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{"interactive stdin", cli.ErrInteractiveStdin, cli.ExitInvalidUsage},
		{"config", fmt.Errorf("%w: parse", cli.ErrConfig), cli.ExitConfigError},
		{"scan error", &markup.ScanError{Line: 2, Err: markup.ErrUnterminatedFence}, cli.ExitDataError},
		{"parse error", fmt.Errorf("doc.md: %w", &markup.ParseError{Line: 1, Err: markup.ErrInvalidToken}), cli.ExitDataError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCodeFromError(tt.err), tt.name)
	}
}
