package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/hunkfmt/internal/ui/pretty"
	"github.com/yaklabco/hunkfmt/pkg/runner"
)

// DiffReporter shows what the formatter changed as git-style unified diffs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var filesWithDiffs, totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if !file.Changed {
			continue
		}

		text, err := UnifiedDiff(file.Path, file.Original, file.Formatted, r.contextLines())
		if err != nil {
			return filesWithDiffs, fmt.Errorf("diff %s: %w", file.Path, err)
		}
		if text == "" {
			continue
		}

		filesWithDiffs++
		additions, deletions := r.writeDiff(file.Path, text)
		totalAdditions += additions
		totalDeletions += deletions
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

func (r *DiffReporter) contextLines() int {
	if r.opts.DiffContext > 0 {
		return r.opts.DiffContext
	}
	return defaultDiffContext
}

// UnifiedDiff renders original and formatted content of path as a unified
// diff with a/ and b/ prefixes. It returns "" when the contents are equal.
func UnifiedDiff(path string, original, formatted []byte, contextLines int) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        splitLines(string(original)),
		B:        splitLines(string(formatted)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  contextLines,
	})
}

// splitLines breaks content into newline-terminated lines. A final line
// without a newline gets one; a trailing newline does not add an empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return difflib.SplitLines(strings.TrimSuffix(content, "\n"))
}

// writeDiff outputs a single file's diff with formatting and returns the
// number of added and removed lines.
func (r *DiffReporter) writeDiff(path, text string) (additions, deletions int) {
	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(header))

	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.bw)
	return additions, deletions
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.bw, styled)
}

// writeSummary writes a git-style shortstat line.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralWord(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, pluralWord(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, pluralWord(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
