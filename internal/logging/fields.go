// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldRepoRoot   = "repo_root"

	// Formatter fields.
	FieldFormatter = "formatter"
	FieldArgs      = "args"
	FieldRanges    = "ranges"
	FieldLanguage  = "language"
	FieldCheck     = "check"
	FieldStaged    = "staged"

	// Statistics fields.
	FieldFilesInDiff         = "files_in_diff"
	FieldFilesChecked        = "files_checked"
	FieldFilesExcluded       = "files_excluded"
	FieldFilesWithViolations = "files_with_violations"
	FieldFilesChanged        = "files_changed"
	FieldRangesTotal         = "ranges_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
