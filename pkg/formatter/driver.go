package formatter

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/hunkfmt/pkg/hunks"
)

// RewriteHook runs just before a file is rewritten in place.
type RewriteHook func(ctx context.Context, path string) error

// Driver runs the formatter over explicit line ranges of one file at a time.
type Driver struct {
	// Executor runs the formatter. Defaults to ExecExecutor.
	Executor Executor

	// Command is the formatter executable and leading arguments.
	Command Command

	// Dir is the directory the formatter runs in; diff paths are relative
	// to it.
	Dir string

	// BeforeRewrite, if set, is called once violations are confirmed and
	// before the in-place pass. An error aborts the rewrite.
	BeforeRewrite RewriteHook
}

// NewDriver returns a Driver that runs cmd as a subprocess in dir.
func NewDriver(cmd Command, dir string) *Driver {
	return &Driver{
		Executor: ExecExecutor{},
		Command:  cmd,
		Dir:      dir,
	}
}

// Arguments builds the formatter arguments for path: the command's leading
// arguments, in-place mode, the file, one --lines=start:end per range, and
// --dry-run when checkOnly is set.
func (d *Driver) Arguments(path string, ranges []hunks.LineRange, checkOnly bool) []string {
	args := make([]string, 0, len(d.Command.Args)+len(ranges)+3)
	args = append(args, d.Command.Args...)
	args = append(args, flagInPlace, path)
	args = append(args, lo.Map(ranges, func(r hunks.LineRange, _ int) string {
		return fmt.Sprintf("%s%d:%d", flagLines, r.Start, r.End())
	})...)
	if checkOnly {
		args = append(args, flagDryRun)
	}
	return args
}

// Check runs the formatter in dry-run mode and reports whether it found
// violations inside ranges. The file is never written.
func (d *Driver) Check(ctx context.Context, path string, ranges []hunks.LineRange) (bool, error) {
	out, err := d.run(ctx, d.Arguments(path, ranges, true))
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out.Stderr) != "", nil
}

// FormatRanges reformats ranges of path in place if the dry-run pass reports
// violations. It returns true when the file was rewritten.
func (d *Driver) FormatRanges(ctx context.Context, path string, ranges []hunks.LineRange) (bool, error) {
	violations, err := d.Check(ctx, path, ranges)
	if err != nil {
		return false, err
	}
	if !violations {
		return false, nil
	}

	if d.BeforeRewrite != nil {
		if err := d.BeforeRewrite(ctx, path); err != nil {
			return false, fmt.Errorf("prepare rewrite of %s: %w", path, err)
		}
	}

	if _, err := d.run(ctx, d.Arguments(path, ranges, false)); err != nil {
		return false, err
	}
	return true, nil
}

// Version returns the first line of the formatter's --version output.
func (d *Driver) Version(ctx context.Context) (string, error) {
	out, err := d.run(ctx, []string{"--version"})
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(out.Stdout), "\n")
	return line, nil
}

// run executes the formatter with args and turns any failure, including a
// non-zero exit, into an ExecutionError.
func (d *Driver) run(ctx context.Context, args []string) (*Output, error) {
	executor := d.Executor
	if executor == nil {
		executor = ExecExecutor{}
	}

	out, err := executor.Execute(ctx, Invocation{
		Dir:  d.Dir,
		Name: d.Command.Name,
		Args: args,
	})
	if err != nil {
		return nil, &ExecutionError{Name: d.Command.Name, Args: args, ExitCode: -1, Err: err}
	}
	if out.ExitCode != 0 {
		return nil, &ExecutionError{
			Name:     d.Command.Name,
			Args:     args,
			ExitCode: out.ExitCode,
			Stderr:   out.Stderr,
		}
	}
	return out, nil
}
