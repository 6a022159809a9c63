package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/hunkfmt/internal/ui/pretty"
	"github.com/yaklabco/hunkfmt/pkg/runner"
)

// TextReporter lists the affected files one per line: the files rewritten,
// or in check mode the files with violations.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	paths := result.FlaggedPaths()
	for _, path := range paths {
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(path))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, result.Check))
	}

	return len(paths), nil
}
