package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/hunkfmt/internal/logging"
	"github.com/yaklabco/hunkfmt/pkg/config"
	"github.com/yaklabco/hunkfmt/pkg/formatter"
	"github.com/yaklabco/hunkfmt/pkg/fsutil"
	"github.com/yaklabco/hunkfmt/pkg/reporter"
	"github.com/yaklabco/hunkfmt/pkg/runner"
)

// formatFlags holds the flags shared by the root and format commands.
type formatFlags struct {
	cfg          config.Config
	outputFormat string
	diffFile     string
}

func newFormatFlags() *formatFlags {
	return &formatFlags{}
}

// cliConfig returns the configuration layer contributed by flags.
func (f *formatFlags) cliConfig() *config.Config {
	cfg := f.cfg.Clone()
	cfg.Format = config.OutputFormat(f.outputFormat)
	return cfg
}

func newFormatCommand() *cobra.Command {
	flags := newFormatFlags()

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format the changed lines of staged files",
		Long:  formatLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFormat(cmd, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format the added and modified lines of staged files.

The staged diff is read with zero context lines and every hunk of a file
with a matching extension becomes a --lines range for the formatter. Files
with violations are rewritten in place and their paths printed.

Examples:
  hunkfmt format                        # Format staged changes
  hunkfmt format --check                # Report violations, change nothing
  hunkfmt format --restage              # Add the rewritten files back to the index
  hunkfmt format --worktree             # Format unstaged changes instead
  hunkfmt format --output-format diff   # Show what was changed
  git diff -U0 main | hunkfmt format --diff-file -`

func runFormat(cmd *cobra.Command, flags *formatFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	sess, err := newSession(ctx, cmd, flags.cliConfig(), flags.diffFile)
	if err != nil {
		return err
	}
	cfg := sess.cfg

	if cfg.Restage && cfg.Worktree {
		logger.Warn("--restage has no effect with --worktree")
		cfg.Restage = false
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	command, err := formatter.ParseCommand(cfg.Formatter.Command)
	if err != nil {
		return fmt.Errorf("formatter command: %w", err)
	}
	command = command.WithStyle(cfg.Formatter.Style)

	driver := formatter.NewDriver(command, sess.root)

	if logger.GetLevel() <= log.DebugLevel {
		if version, err := driver.Version(ctx); err == nil {
			logger.Debug("formatter", logging.FieldFormatter, command.String(), logging.FieldVersion, version)
		}
	}

	formatRunner := runner.New(sess.source, driver)
	formatRunner.Logger = logger

	runOpts := runner.Options{
		RepoRoot:     sess.root,
		Extensions:   cfg.Extensions,
		Exclude:      cfg.Exclude,
		SkipVendored: cfg.SkipVendored,
		Check:        cfg.Check,
		Restage:      cfg.Restage,
		Backups: fsutil.BackupConfig{
			Enabled: cfg.BackupsEnabled(),
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		},
	}

	logger.Debug("starting format run",
		logging.FieldRepoRoot, sess.root,
		logging.FieldCheck, runOpts.Check,
		logging.FieldStaged, !cfg.Worktree,
	)

	result, err := formatRunner.Run(ctx, runOpts)
	if err != nil {
		return err
	}

	logger.Debug("format run finished",
		logging.FieldFilesInDiff, result.Stats.FilesInDiff,
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldFilesExcluded, result.Stats.FilesExcluded,
		logging.FieldRangesTotal, result.Stats.RangesTotal,
		logging.FieldFilesWithViolations, result.Stats.FilesWithViolations,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: cfg.Summary,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if cfg.Check && result.HasViolations() {
		return ErrViolationsFound
	}

	return nil
}

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cfg := &flags.cfg

	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report files needing formatting without rewriting them")
	cmd.Flags().BoolVar(&cfg.Worktree, "worktree", false, "format unstaged changes instead of the index")
	cmd.Flags().BoolVar(&cfg.Restage, "restage", false, "add rewritten files back to the index")
	cmd.Flags().StringVar(&flags.outputFormat, "output-format", "", "output format: text, json, diff")
	cmd.Flags().BoolVar(&cfg.Summary, "summary", false, "print a summary line after the report")
	cmd.Flags().StringVar(&cfg.Formatter.Command, "formatter", "", "formatter command line (default \"clang-format\")")
	cmd.Flags().StringVar(&cfg.Formatter.Style, "style", "", "formatter style, passed as --style=<value>")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", nil, "file extensions to format (default .c,.cc,.cpp,.h,.hh,.hpp)")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns for paths never formatted")
	cmd.Flags().BoolVar(&cfg.SkipVendored, "skip-vendored", false, "leave vendored code untouched")
	cmd.Flags().BoolVar(&cfg.Backups.Enabled, "backup", false, "write a backup of each file before rewriting it")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation")
	cmd.Flags().StringVar(&flags.diffFile, "diff-file", "", "read the diff from a file (\"-\" for stdin) instead of running git")
}
