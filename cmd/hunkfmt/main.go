// Package main is the entry point for the hunkfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/hunkfmt/internal/cli"
	"github.com/yaklabco/hunkfmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// The violations sentinel only selects the exit code; the report
		// has already named the files.
		if !errors.Is(err, cli.ErrViolationsFound) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCodeFromError(err)
	}

	return cli.ExitSuccess
}
