package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/hunkfmt/internal/ui/pretty"
	"github.com/yaklabco/hunkfmt/pkg/config"
	"github.com/yaklabco/hunkfmt/pkg/hunks"
)

type rangesFlags struct {
	worktree   bool
	extensions []string
	diffFile   string
	json       bool
}

// rangesEntry is one file of the JSON ranges listing.
type rangesEntry struct {
	Path   string            `json:"path"`
	Ranges []hunks.LineRange `json:"ranges"`
}

func newRangesCommand() *cobra.Command {
	flags := &rangesFlags{}

	cmd := &cobra.Command{
		Use:   "ranges",
		Short: "Print the line ranges that would be formatted",
		Long: `Print the changed line ranges of each file in the diff without running
the formatter. Each line holds a path followed by start:end pairs, the
same values passed to the formatter as --lines.

Examples:
  hunkfmt ranges                  # Ranges of staged changes
  hunkfmt ranges --worktree       # Ranges of unstaged changes
  hunkfmt ranges --json           # Machine-readable listing`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRanges(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.worktree, "worktree", false, "use unstaged changes instead of the index")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to include")
	cmd.Flags().StringVar(&flags.diffFile, "diff-file", "", "read the diff from a file (\"-\" for stdin) instead of running git")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print ranges as JSON")

	return cmd
}

func runRanges(cmd *cobra.Command, flags *rangesFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cliCfg := &config.Config{
		Worktree:   flags.worktree,
		Extensions: flags.extensions,
	}

	sess, err := newSession(ctx, cmd, cliCfg, flags.diffFile)
	if err != nil {
		return err
	}

	lines, err := sess.source.Lines(ctx)
	if err != nil {
		return err
	}

	hunkMap := hunks.Extract(lines, hunks.NewExtensionFilter(sess.cfg.Extensions...))

	if flags.json {
		return writeRangesJSON(cmd.OutOrStdout(), hunkMap)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))

	out := cmd.OutOrStdout()
	for _, path := range hunkMap.Files() {
		ranges := lo.Map(hunkMap.Ranges(path), func(r hunks.LineRange, _ int) string {
			return styles.Range.Render(r.String())
		})
		if _, err := fmt.Fprintf(out, "%s %s\n", styles.FilePath.Render(path), strings.Join(ranges, " ")); err != nil {
			return fmt.Errorf("write ranges: %w", err)
		}
	}

	return nil
}

func writeRangesJSON(w io.Writer, hunkMap *hunks.HunkMap) error {
	entries := lo.Map(hunkMap.Files(), func(path string, _ int) rangesEntry {
		return rangesEntry{Path: path, Ranges: hunkMap.Ranges(path)}
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode ranges: %w", err)
	}
	return nil
}
