package runner

import "github.com/yaklabco/hunkfmt/pkg/hunks"

// FileOutcome describes what happened to one file from the diff.
type FileOutcome struct {
	// Path is the file path as written in the diff.
	Path string `json:"path"`

	// Ranges are the changed line ranges handed to the formatter.
	Ranges []hunks.LineRange `json:"ranges"`

	// Language is the detected language label.
	Language string `json:"language"`

	// Excluded is true when an exclude pattern or the vendored check
	// skipped the file. No formatter ran.
	Excluded bool `json:"excluded,omitempty"`

	// Violations is true when the dry-run pass reported formatting issues.
	Violations bool `json:"violations"`

	// Changed is true when the rewrite pass ran and exited cleanly. It
	// does not compare content.
	Changed bool `json:"changed"`

	// Original and Formatted hold the content before and after a change.
	// Both are empty unless Changed is true.
	Original  []byte `json:"-"`
	Formatted []byte `json:"-"`
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesInDiff is the number of files with at least one eligible hunk.
	FilesInDiff int `json:"files_in_diff"`

	// FilesChecked is the number of files the formatter ran on.
	FilesChecked int `json:"files_checked"`

	// FilesExcluded is the number of files skipped by exclusion.
	FilesExcluded int `json:"files_excluded"`

	// RangesTotal is the number of line ranges across checked files.
	RangesTotal int `json:"ranges_total"`

	// FilesWithViolations is the number of files the dry run flagged.
	FilesWithViolations int `json:"files_with_violations"`

	// FilesChanged is the number of files rewritten with new content.
	FilesChanged int `json:"files_changed"`
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file in diff order.
	Files []FileOutcome `json:"files"`

	// Stats contains aggregate statistics for the run.
	Stats Stats `json:"stats"`

	// Check is true when the run only reported violations.
	Check bool `json:"check"`

	// Restaged lists the paths added back to the index.
	Restaged []string `json:"restaged,omitempty"`
}

// HasViolations reports whether any file had formatting violations.
func (r *Result) HasViolations() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesWithViolations > 0
}

// ChangedPaths returns the paths of files that were rewritten, in order.
func (r *Result) ChangedPaths() []string {
	if r == nil {
		return nil
	}
	var paths []string
	for _, f := range r.Files {
		if f.Changed {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// FlaggedPaths returns the paths a report should list: changed files, or in
// check mode the files with violations.
func (r *Result) FlaggedPaths() []string {
	if r == nil {
		return nil
	}
	if !r.Check {
		return r.ChangedPaths()
	}
	var paths []string
	for _, f := range r.Files {
		if f.Violations {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Excluded {
		r.Stats.FilesExcluded++
		return
	}

	r.Stats.FilesChecked++
	r.Stats.RangesTotal += len(outcome.Ranges)

	if outcome.Violations {
		r.Stats.FilesWithViolations++
	}
	if outcome.Changed {
		r.Stats.FilesChanged++
	}
}
