package formatter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Invocation is a single formatter subprocess call.
type Invocation struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Name is the executable.
	Name string

	// Args are the arguments passed to Name.
	Args []string
}

// Output captures what a finished invocation produced.
type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Executor runs formatter invocations. A non-zero exit is reported through
// Output.ExitCode; the error return is reserved for failures to run at all.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (*Output, error)
}

// ExecExecutor runs invocations as local subprocesses.
type ExecExecutor struct{}

// Compile-time interface check.
var _ Executor = ExecExecutor{}

// Execute implements Executor.
func (ExecExecutor) Execute(ctx context.Context, inv Invocation) (*Output, error) {
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		return out, fmt.Errorf("run %s: %w", inv.Name, err)
	}

	return out, nil
}
