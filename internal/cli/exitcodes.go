package cli

import (
	"errors"
	"fmt"

	"github.com/yaklabco/hunkfmt/internal/configloader"
	"github.com/yaklabco/hunkfmt/pkg/formatter"
	"github.com/yaklabco/hunkfmt/pkg/gitdiff"
)

// Exit codes for hunkfmt.
const (
	// ExitSuccess indicates the run completed and nothing is left to report.
	ExitSuccess = 0

	// ExitViolations indicates check mode found lines needing formatting.
	ExitViolations = 1

	// ExitDiffError indicates the diff could not be retrieved.
	ExitDiffError = 3

	// ExitFormatterError indicates the formatter failed to run or exited non-zero.
	ExitFormatterError = 4

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70
)

var (
	// ErrViolationsFound is returned when check mode finds violations.
	ErrViolationsFound = errors.New("formatting violations found")

	// ErrConfig marks configuration loading failures.
	ErrConfig = errors.New("failed to load configuration")

	// ErrUsage marks invalid flags or arguments.
	ErrUsage = errors.New("invalid usage")
)

// ExitCodeFromError maps an error returned by the root command to a process
// exit code.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var (
		retrievalErr *gitdiff.RetrievalError
		execErr      *formatter.ExecutionError
		validateErr  *configloader.ValidationError
	)

	switch {
	case errors.Is(err, ErrViolationsFound):
		return ExitViolations
	case errors.As(err, &retrievalErr), errors.Is(err, gitdiff.ErrNoGit):
		return ExitDiffError
	case errors.As(err, &validateErr), errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.As(err, &execErr), errors.Is(err, formatter.ErrEmptyCommand):
		return ExitFormatterError
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// usageError wraps err so it maps to ExitInvalidUsage.
func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}
