// Package runner drives a selective formatting run: one diff retrieval, then
// each changed file in turn.
package runner

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/yaklabco/hunkfmt/pkg/fsutil"
	"github.com/yaklabco/hunkfmt/pkg/hunks"
)

// Options controls a formatting run.
type Options struct {
	// RepoRoot is the directory diff paths are relative to. Files are read
	// and restaged relative to it.
	RepoRoot string

	// Extensions is the set of file suffixes eligible for formatting.
	// Defaults to hunks.DefaultExtensions().
	Extensions []string

	// Exclude are glob patterns, matched against the diff path, for files
	// that are never formatted.
	Exclude []string

	// SkipVendored excludes files that look like vendored code.
	SkipVendored bool

	// Check only reports violations; no file is rewritten.
	Check bool

	// Restage adds rewritten files back to the index.
	Restage bool

	// Backups controls copies taken before each rewrite.
	Backups fsutil.BackupConfig
}

// filter returns the extension filter for the run.
func (o Options) filter() hunks.ExtensionFilter {
	if len(o.Extensions) == 0 {
		return hunks.DefaultFilter()
	}
	return hunks.NewExtensionFilter(o.Extensions...)
}

// excluder matches diff paths against compiled exclude patterns.
type excluder []glob.Glob

// compileExcludes compiles patterns with '/' as the separator so "*" never
// crosses directories and "**" does.
func compileExcludes(patterns []string) (excluder, error) {
	globs := make(excluder, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// matches reports whether path or its base name matches any pattern.
func (e excluder) matches(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(slashed)
	for _, g := range e {
		if g.Match(slashed) || g.Match(base) {
			return true
		}
	}
	return false
}
