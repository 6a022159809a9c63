// Package gitdiff retrieves zero-context unified diffs from git and provides
// the repository operations the formatter run needs.
package gitdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the git executable used when none is configured.
const DefaultBinary = "git"

// Source yields unified diff text as lines.
type Source interface {
	Lines(ctx context.Context) ([]string, error)
}

// RetrievalError reports that the diff command could not run or exited with
// a non-zero status.
type RetrievalError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error implements the error interface.
func (e *RetrievalError) Error() string {
	cmdline := strings.Join(e.Args, " ")
	if e.Err != nil {
		return fmt.Sprintf("retrieve diff (%s): %v", cmdline, e.Err)
	}
	msg := fmt.Sprintf("retrieve diff (%s): exit status %d", cmdline, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Unwrap returns the underlying start failure.
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Git runs "git diff" to produce the diff.
type Git struct {
	// Binary is the git executable. Defaults to DefaultBinary.
	Binary string

	// Dir is the directory git runs in.
	Dir string

	// Staged diffs the index against HEAD. When false the working tree is
	// diffed against the index.
	Staged bool
}

// Compile-time interface check.
var _ Source = (*Git)(nil)

// Args returns the full command line, binary first.
func (g *Git) Args() []string {
	binary := g.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	args := []string{
		binary, "diff",
		"-U0",
		"--no-color",
		"--no-ext-diff",
		"--src-prefix=a/",
		"--dst-prefix=b/",
	}
	if g.Staged {
		args = append(args, "--cached")
	}
	return args
}

// Lines implements Source.
func (g *Git) Lines(ctx context.Context) ([]string, error) {
	args := g.Args()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = g.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		retrievalErr := &RetrievalError{Args: args, Stderr: stderr.String()}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			retrievalErr.ExitCode = exitErr.ExitCode()
		} else {
			retrievalErr.ExitCode = -1
			retrievalErr.Err = err
		}
		return nil, retrievalErr
	}

	return SplitLines(stdout.String()), nil
}

// SplitLines splits diff output into lines, dropping the empty element left
// by a trailing newline and any carriage returns.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// StaticSource serves a fixed diff, typically read from stdin or a file.
type StaticSource struct {
	Text string
}

// Lines implements Source.
func (s StaticSource) Lines(context.Context) ([]string, error) {
	return SplitLines(s.Text), nil
}
