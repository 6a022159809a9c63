package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/hunkfmt/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Formatted 2 files (3 files checked, 5 ranges, 1 excluded)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, check bool) string {
	if stats.FilesInDiff == 0 {
		return s.Success.Render("No changed lines to format") + "\n"
	}

	var headline string
	switch {
	case check && stats.FilesWithViolations > 0:
		headline = s.Failure.Render(fmt.Sprintf("%d %s formatting",
			stats.FilesWithViolations, plural(stats.FilesWithViolations, "file needs", "files need")))
	case check:
		headline = s.Success.Render("No formatting violations")
	case stats.FilesChanged > 0:
		headline = s.Success.Render(fmt.Sprintf("Formatted %d %s",
			stats.FilesChanged, plural(stats.FilesChanged, wordFile, wordFiles)))
	default:
		headline = s.Success.Render("Nothing to format")
	}

	details := []string{
		fmt.Sprintf("%d %s checked", stats.FilesChecked, plural(stats.FilesChecked, wordFile, wordFiles)),
		fmt.Sprintf("%d %s", stats.RangesTotal, plural(stats.RangesTotal, "range", "ranges")),
	}
	if stats.FilesExcluded > 0 {
		details = append(details, fmt.Sprintf("%d excluded", stats.FilesExcluded))
	}

	return headline + s.Dim.Render(" ("+strings.Join(details, ", ")+")") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, check bool) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files in diff:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesInDiff)) + "\n")
	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesChecked)) + "\n")
	builder.WriteString("  Line ranges:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.RangesTotal)) + "\n")

	if stats.FilesExcluded > 0 {
		builder.WriteString("  Files excluded:    " +
			s.Dim.Render(strconv.Itoa(stats.FilesExcluded)) + "\n")
	}
	if stats.FilesWithViolations > 0 {
		builder.WriteString("  Need formatting:   " +
			s.Warning.Render(strconv.Itoa(stats.FilesWithViolations)) + "\n")
	}
	if stats.FilesChanged > 0 {
		builder.WriteString("  Files formatted:   " +
			s.Success.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case check && stats.FilesWithViolations > 0:
		builder.WriteString(s.Failure.Render("Check failed"))
	case check:
		builder.WriteString(s.Success.Render("Check passed"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
