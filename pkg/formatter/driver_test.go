package formatter_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/hunkfmt/pkg/formatter"
	"github.com/yaklabco/hunkfmt/pkg/hunks"
)

// fakeExecutor returns scripted outputs and records every invocation.
type fakeExecutor struct {
	dryRun  formatter.Output
	rewrite formatter.Output
	err     error
	calls   []formatter.Invocation
}

func (f *fakeExecutor) Execute(_ context.Context, inv formatter.Invocation) (*formatter.Output, error) {
	f.calls = append(f.calls, inv)
	if f.err != nil {
		return nil, f.err
	}
	for _, arg := range inv.Args {
		if arg == "--dry-run" {
			out := f.dryRun
			return &out, nil
		}
	}
	out := f.rewrite
	return &out, nil
}

func newDriver(exec formatter.Executor) *formatter.Driver {
	return &formatter.Driver{
		Executor: exec,
		Command:  formatter.Command{Name: "clang-format"},
		Dir:      "/repo",
	}
}

func TestDriver_Arguments(t *testing.T) {
	t.Parallel()

	d := newDriver(nil)
	d.Command = formatter.Command{Name: "clang-format", Args: []string{"--style=file"}}
	ranges := []hunks.LineRange{{Start: 12, Count: 4}, {Start: 30, Count: 0}}

	assert.Equal(t,
		[]string{"--style=file", "-i", "src/foo.cpp", "--lines=12:16", "--lines=30:30", "--dry-run"},
		d.Arguments("src/foo.cpp", ranges, true))
	assert.Equal(t,
		[]string{"--style=file", "-i", "src/foo.cpp", "--lines=12:16", "--lines=30:30"},
		d.Arguments("src/foo.cpp", ranges, false))
}

func TestDriver_FormatRanges_NoViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stderr string
	}{
		{name: "empty diagnostics", stderr: ""},
		{name: "whitespace only diagnostics", stderr: "  \n\t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			exec := &fakeExecutor{dryRun: formatter.Output{Stderr: tt.stderr}}
			hookCalled := false
			d := newDriver(exec)
			d.BeforeRewrite = func(context.Context, string) error {
				hookCalled = true
				return nil
			}

			changed, err := d.FormatRanges(context.Background(), "a.c", []hunks.LineRange{{Start: 1, Count: 1}})
			require.NoError(t, err)
			assert.False(t, changed)
			assert.False(t, hookCalled)
			require.Len(t, exec.calls, 1, "only the dry run should execute")
			assert.Contains(t, exec.calls[0].Args, "--dry-run")
			assert.Equal(t, "/repo", exec.calls[0].Dir)
		})
	}
}

func TestDriver_FormatRanges_Rewrites(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{
		dryRun: formatter.Output{Stderr: "a.c:3:10: warning: code should be clang-formatted [-Wclang-format-violations]"},
	}
	var hooked string
	d := newDriver(exec)
	d.BeforeRewrite = func(_ context.Context, path string) error {
		hooked = path
		return nil
	}

	changed, err := d.FormatRanges(context.Background(), "a.c", []hunks.LineRange{{Start: 3, Count: 2}})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "a.c", hooked)
	require.Len(t, exec.calls, 2)
	assert.Equal(t, []string{"-i", "a.c", "--lines=3:5"}, exec.calls[1].Args)
}

func TestDriver_FormatRanges_RewriteFails(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{
		dryRun:  formatter.Output{Stderr: "violation"},
		rewrite: formatter.Output{ExitCode: 1, Stderr: "error: cannot write a.c"},
	}

	changed, err := newDriver(exec).FormatRanges(context.Background(), "a.c", []hunks.LineRange{{Start: 1, Count: 1}})
	require.Error(t, err)
	assert.False(t, changed)

	var execErr *formatter.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.ExitCode)
	assert.Contains(t, execErr.Error(), "cannot write a.c")
	assert.NotContains(t, execErr.Args, "--dry-run")
}

func TestDriver_FormatRanges_DryRunFails(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{dryRun: formatter.Output{ExitCode: 2, Stderr: "unknown style"}}

	_, err := newDriver(exec).FormatRanges(context.Background(), "a.c", nil)

	var execErr *formatter.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 2, execErr.ExitCode)
	assert.Contains(t, execErr.Args, "--dry-run")
	assert.Len(t, exec.calls, 1)
}

func TestDriver_FormatRanges_StartFailure(t *testing.T) {
	t.Parallel()

	startErr := errors.New("executable file not found in $PATH")
	exec := &fakeExecutor{err: startErr}

	_, err := newDriver(exec).FormatRanges(context.Background(), "a.c", nil)

	require.ErrorIs(t, err, startErr)
	var execErr *formatter.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, -1, execErr.ExitCode)
}

func TestDriver_FormatRanges_HookErrorAborts(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{dryRun: formatter.Output{Stderr: "violation"}}
	d := newDriver(exec)
	hookErr := errors.New("disk full")
	d.BeforeRewrite = func(context.Context, string) error { return hookErr }

	changed, err := d.FormatRanges(context.Background(), "a.c", nil)
	require.ErrorIs(t, err, hookErr)
	assert.False(t, changed)
	assert.Len(t, exec.calls, 1)
}

func TestDriver_Check(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{dryRun: formatter.Output{Stderr: "violation"}}

	violations, err := newDriver(exec).Check(context.Background(), "a.h", []hunks.LineRange{{Start: 1, Count: 1}})
	require.NoError(t, err)
	assert.True(t, violations)
	assert.Len(t, exec.calls, 1)
}

func TestDriver_Version(t *testing.T) {
	t.Parallel()

	exec := &fakeExecutor{rewrite: formatter.Output{Stdout: "clang-format version 17.0.6\nextra\n"}}

	version, err := newDriver(exec).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "clang-format version 17.0.6", version)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    formatter.Command
		wantErr bool
	}{
		{name: "bare", input: "clang-format", want: formatter.Command{Name: "clang-format", Args: []string{}}},
		{
			name:  "with args",
			input: "clang-format-17 --fallback-style=none",
			want:  formatter.Command{Name: "clang-format-17", Args: []string{"--fallback-style=none"}},
		},
		{
			name:  "quoted",
			input: `"/opt/llvm bin/clang-format" '--style={BasedOnStyle: llvm}'`,
			want:  formatter.Command{Name: "/opt/llvm bin/clang-format", Args: []string{"--style={BasedOnStyle: llvm}"}},
		},
		{name: "empty", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := formatter.ParseCommand(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, formatter.ErrEmptyCommand)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommand_WithStyle(t *testing.T) {
	t.Parallel()

	base := formatter.Command{Name: "clang-format", Args: []string{"--fallback-style=none"}}

	assert.Equal(t, base, base.WithStyle(""))
	styled := base.WithStyle("file")
	assert.Equal(t, []string{"--fallback-style=none", "--style=file"}, styled.Args)
	assert.Equal(t, []string{"--fallback-style=none"}, base.Args)
	assert.Equal(t, "clang-format --fallback-style=none --style=file", styled.String())
}
