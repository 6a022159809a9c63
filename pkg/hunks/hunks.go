// Package hunks extracts the staged line ranges of each file from unified
// diff output produced with zero context lines (git diff -U0).
package hunks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	// newFileMarker starts the header naming the post-change side of a file.
	newFileMarker = "+++"

	// newFilePrefix is the fixed-width "+++ b/" token stripped from new-file
	// header lines to recover the repository-relative path.
	newFilePrefix = len("+++ b/")

	// hunkMarker starts a hunk header line.
	hunkMarker = "@@"
)

// hunkHeaderPattern matches "@@ -<old> +<start>[,<count>] @@". The old-side
// range is optional and never captured.
var hunkHeaderPattern = regexp.MustCompile(`^@@ (?:-[0-9,]+ )?\+([0-9]+)(?:,([0-9]+))? @@`)

// LineRange is a contiguous block of lines in the post-change version of a
// file. Start is 1-based; Count may be zero for a hunk that only deletes.
type LineRange struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// End returns the upper bound handed to the formatter: Start + Count.
func (r LineRange) End() int {
	return r.Start + r.Count
}

// String renders the range as "start:end".
func (r LineRange) String() string {
	return fmt.Sprintf("%d:%d", r.Start, r.End())
}

// ExtensionFilter is the set of file extensions whose hunks are kept.
type ExtensionFilter map[string]struct{}

// DefaultExtensions returns the C and C++ source and header suffixes.
func DefaultExtensions() []string {
	return []string{".c", ".cc", ".cpp", ".h", ".hh", ".hpp"}
}

// NewExtensionFilter builds a filter from a list of extensions with the
// leading dot.
func NewExtensionFilter(extensions ...string) ExtensionFilter {
	filter := make(ExtensionFilter, len(extensions))
	for _, ext := range extensions {
		filter[ext] = struct{}{}
	}
	return filter
}

// DefaultFilter returns a filter over DefaultExtensions.
func DefaultFilter() ExtensionFilter {
	return NewExtensionFilter(DefaultExtensions()...)
}

// Accepts reports whether path's extension is in the filter.
func (f ExtensionFilter) Accepts(path string) bool {
	_, ok := f[filepath.Ext(path)]
	return ok
}

// HunkMap maps file paths to their staged ranges. Files iterate in the order
// they were first recorded and a file never maps to an empty list.
type HunkMap struct {
	order  []string
	ranges map[string][]LineRange
}

// NewHunkMap returns an empty map.
func NewHunkMap() *HunkMap {
	return &HunkMap{ranges: make(map[string][]LineRange)}
}

func (m *HunkMap) add(path string, r LineRange) {
	if _, ok := m.ranges[path]; !ok {
		m.order = append(m.order, path)
	}
	m.ranges[path] = append(m.ranges[path], r)
}

// Files returns the recorded paths in first-seen order.
func (m *HunkMap) Files() []string {
	if m == nil {
		return nil
	}
	files := make([]string, len(m.order))
	copy(files, m.order)
	return files
}

// Ranges returns a copy of the ranges recorded for path.
func (m *HunkMap) Ranges(path string) []LineRange {
	if m == nil {
		return nil
	}
	src := m.ranges[path]
	if src == nil {
		return nil
	}
	out := make([]LineRange, len(src))
	copy(out, src)
	return out
}

// Has reports whether path has at least one range.
func (m *HunkMap) Has(path string) bool {
	if m == nil {
		return false
	}
	_, ok := m.ranges[path]
	return ok
}

// Len returns the number of files.
func (m *HunkMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// TotalRanges returns the number of ranges across all files.
func (m *HunkMap) TotalRanges() int {
	if m == nil {
		return 0
	}
	var total int
	for _, rs := range m.ranges {
		total += len(rs)
	}
	return total
}

// ParseHeader parses the new-side range of a hunk header. It returns false
// when the line is not a recognisable header.
func ParseHeader(line string) (LineRange, bool) {
	match := hunkHeaderPattern.FindStringSubmatch(line)
	if match == nil {
		return LineRange{}, false
	}

	start, err := strconv.Atoi(match[1])
	if err != nil {
		return LineRange{}, false
	}

	count := 1
	if match[2] != "" {
		count, err = strconv.Atoi(match[2])
		if err != nil {
			return LineRange{}, false
		}
	}

	return LineRange{Start: start, Count: count}, true
}

// Extract scans diff lines in order and collects the new-side range of every
// hunk whose file passes filter. Hunk headers seen before any new-file header,
// and headers that do not parse, are dropped.
func Extract(lines []string, filter ExtensionFilter) *HunkMap {
	result := NewHunkMap()
	current := ""

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, newFileMarker):
			current = stripNewFilePrefix(line)
		case strings.HasPrefix(line, hunkMarker):
			if current == "" || !filter.Accepts(current) {
				continue
			}
			r, ok := ParseHeader(line)
			if !ok {
				continue
			}
			result.add(current, r)
		}
	}

	return result
}

func stripNewFilePrefix(line string) string {
	if len(line) < newFilePrefix {
		return ""
	}
	return line[newFilePrefix:]
}
