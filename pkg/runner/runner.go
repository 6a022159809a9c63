package runner

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/yaklabco/hunkfmt/internal/logging"
	"github.com/yaklabco/hunkfmt/pkg/formatter"
	"github.com/yaklabco/hunkfmt/pkg/fsutil"
	"github.com/yaklabco/hunkfmt/pkg/gitdiff"
	"github.com/yaklabco/hunkfmt/pkg/hunks"
	"github.com/yaklabco/hunkfmt/pkg/langdetect"
)

// StageFunc adds paths, relative to root, back to the index.
type StageFunc func(ctx context.Context, root string, paths []string) error

// Runner orchestrates a formatting run over the files in a diff.
type Runner struct {
	// Source yields the unified diff.
	Source gitdiff.Source

	// Driver runs the formatter on each file.
	Driver *formatter.Driver

	// Stage restages rewritten files. Defaults to gitdiff.Restage.
	Stage StageFunc

	// Logger receives per-file debug output. Nil discards it.
	Logger *log.Logger
}

// New creates a Runner reading source and formatting with driver.
func New(source gitdiff.Source, driver *formatter.Driver) *Runner {
	return &Runner{
		Source: source,
		Driver: driver,
		Stage:  gitdiff.Restage,
	}
}

// Run retrieves the diff once, then processes each file in the order it
// first appears. Files are handled one at a time and context cancellation
// is checked between them.
//
// Any error aborts the run: diff retrieval failures are returned as is,
// formatter failures as *formatter.ExecutionError. No partial result is
// returned alongside an error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	excludes, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	lines, err := r.Source.Lines(ctx)
	if err != nil {
		return nil, err
	}

	hunkMap := hunks.Extract(lines, opts.filter())

	result := &Result{
		Files: make([]FileOutcome, 0, hunkMap.Len()),
		Check: opts.Check,
	}
	result.Stats.FilesInDiff = hunkMap.Len()

	driver := r.driverFor(opts)
	logger := r.logger()

	for _, path := range hunkMap.Files() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}

		outcome, err := r.processFile(ctx, driver, opts, excludes, path, hunkMap.Ranges(path))
		if err != nil {
			return nil, err
		}
		result.accumulate(outcome)
	}

	if opts.Restage && !opts.Check {
		changed := result.ChangedPaths()
		if len(changed) > 0 {
			logger.Debug("restaging", logging.FieldFiles, len(changed))
			if err := r.stage()(ctx, opts.RepoRoot, changed); err != nil {
				return nil, fmt.Errorf("restage: %w", err)
			}
			result.Restaged = changed
		}
	}

	return result, nil
}

// processFile formats or checks a single file.
func (r *Runner) processFile(
	ctx context.Context,
	driver *formatter.Driver,
	opts Options,
	excludes excluder,
	path string,
	ranges []hunks.LineRange,
) (FileOutcome, error) {
	logger := r.logger()
	outcome := FileOutcome{Path: path, Ranges: ranges}

	if excludes.matches(path) || (opts.SkipVendored && langdetect.IsVendored(path)) {
		outcome.Excluded = true
		outcome.Language = langdetect.Language(path, nil)
		logger.Debug("excluded", logging.FieldPath, path)
		return outcome, nil
	}

	fullPath := filepath.Join(opts.RepoRoot, path)
	original, info, err := fsutil.ReadFile(ctx, fullPath)
	if err != nil {
		return FileOutcome{}, fmt.Errorf("read %s: %w", path, err)
	}
	outcome.Language = langdetect.Language(path, original)

	logger.Debug("formatting",
		logging.FieldPath, path,
		logging.FieldLanguage, outcome.Language,
		logging.FieldRanges, lo.Map(ranges, func(lr hunks.LineRange, _ int) string { return lr.String() }),
		logging.FieldArgs, driver.Arguments(path, ranges, opts.Check),
	)

	if opts.Check {
		violations, err := driver.Check(ctx, path, ranges)
		if err != nil {
			return FileOutcome{}, err
		}
		outcome.Violations = violations
		return outcome, nil
	}

	rewrote, err := driver.FormatRanges(ctx, path, ranges)
	if err != nil {
		r.restoreOriginal(ctx, info, original)
		return FileOutcome{}, err
	}
	if !rewrote {
		return outcome, nil
	}

	formatted, _, err := fsutil.ReadFile(ctx, fullPath)
	if err != nil {
		return FileOutcome{}, fmt.Errorf("read formatted %s: %w", path, err)
	}

	outcome.Violations = true
	outcome.Changed = true
	outcome.Original = original
	outcome.Formatted = formatted
	return outcome, nil
}

// restoreOriginal puts the pre-run content back if a failed rewrite left the
// file modified. Failures are logged; the formatter error is what the caller
// reports.
func (r *Runner) restoreOriginal(ctx context.Context, info *fsutil.FileInfo, original []byte) {
	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil || !modified {
		return
	}
	if err := fsutil.WriteAtomic(ctx, info.Path, original, info.Mode); err != nil {
		r.logger().Warn("could not restore file after formatter failure", logging.FieldPath, info.Path, logging.FieldError, err)
	}
}

// driverFor returns a copy of the runner's driver with backups wired in
// ahead of any existing rewrite hook.
func (r *Runner) driverFor(opts Options) *formatter.Driver {
	driver := *r.Driver
	if !opts.Backups.Enabled {
		return &driver
	}

	next := driver.BeforeRewrite
	driver.BeforeRewrite = func(ctx context.Context, path string) error {
		fullPath := filepath.Join(opts.RepoRoot, path)
		created, err := fsutil.CreateBackup(ctx, fullPath, opts.Backups)
		if err != nil {
			return err
		}
		if created {
			r.logger().Debug("backup written", logging.FieldPath, fsutil.BackupPath(fullPath, opts.Backups.Mode))
		}
		if next != nil {
			return next(ctx, path)
		}
		return nil
	}
	return &driver
}

func (r *Runner) stage() StageFunc {
	if r.Stage != nil {
		return r.Stage
	}
	return gitdiff.Restage
}

func (r *Runner) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.New(io.Discard)
}
