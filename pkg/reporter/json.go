package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/hunkfmt/pkg/hunks"
	"github.com/yaklabco/hunkfmt/pkg/runner"
)

// jsonSchemaVersion is bumped on incompatible output changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string           `json:"version"`
	Check    bool             `json:"check"`
	Files    []JSONFileResult `json:"files"`
	Restaged []string         `json:"restaged,omitempty"`
	Summary  JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string      `json:"path"`
	Language   string      `json:"language"`
	Ranges     []JSONRange `json:"ranges"`
	Excluded   bool        `json:"excluded,omitempty"`
	Violations bool        `json:"violations"`
	Changed    bool        `json:"changed"`
}

// JSONRange is one line range passed to the formatter. End is exclusive.
type JSONRange struct {
	Start int `json:"start"`
	Count int `json:"count"`
	End   int `json:"end"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesInDiff         int `json:"files_in_diff"`
	FilesChecked        int `json:"files_checked"`
	FilesExcluded       int `json:"files_excluded"`
	RangesTotal         int `json:"ranges_total"`
	FilesWithViolations int `json:"files_with_violations"`
	FilesChanged        int `json:"files_changed"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return len(result.FlaggedPaths()), nil
}

func buildJSONOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonSchemaVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Check = result.Check
	output.Restaged = result.Restaged
	output.Files = lo.Map(result.Files, func(f runner.FileOutcome, _ int) JSONFileResult {
		return JSONFileResult{
			Path:     f.Path,
			Language: f.Language,
			Ranges: lo.Map(f.Ranges, func(lr hunks.LineRange, _ int) JSONRange {
				return JSONRange{Start: lr.Start, Count: lr.Count, End: lr.End()}
			}),
			Excluded:   f.Excluded,
			Violations: f.Violations,
			Changed:    f.Changed,
		}
	})
	output.Summary = JSONSummary{
		FilesInDiff:         result.Stats.FilesInDiff,
		FilesChecked:        result.Stats.FilesChecked,
		FilesExcluded:       result.Stats.FilesExcluded,
		RangesTotal:         result.Stats.RangesTotal,
		FilesWithViolations: result.Stats.FilesWithViolations,
		FilesChanged:        result.Stats.FilesChanged,
	}

	return output
}
