package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/hunkfmt/internal/configloader"
	"github.com/yaklabco/hunkfmt/internal/logging"
	"github.com/yaklabco/hunkfmt/pkg/config"
	"github.com/yaklabco/hunkfmt/pkg/gitdiff"
)

// stdinPath selects standard input for --diff-file.
const stdinPath = "-"

// session is the resolved state a diff-driven command works from.
type session struct {
	workDir string
	root    string
	cfg     *config.Config
	source  gitdiff.Source
}

// newSession resolves the working directory and repository root, loads the
// merged configuration, and picks the diff source.
func newSession(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config, diffFile string) (*session, error) {
	logger := logging.FromContext(ctx)

	workDir, err := workingDir(cmd)
	if err != nil {
		return nil, err
	}

	root, err := gitdiff.FindRoot(workDir)
	if err != nil {
		if diffFile == "" {
			return nil, err
		}
		// A diff supplied by the caller only needs paths relative to the
		// directory it was produced in.
		logger.Debug("not a git repository, using working directory as root", logging.FieldWorkingDir, workDir)
		root = workDir
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config

	sess := &session{
		workDir: workDir,
		root:    root,
		cfg:     cfg,
	}

	if diffFile != "" {
		text, err := readDiffFile(cmd.InOrStdin(), diffFile)
		if err != nil {
			return nil, err
		}
		sess.source = gitdiff.StaticSource{Text: text}
	} else {
		sess.source = &gitdiff.Git{
			Binary: cfg.Git.Binary,
			Dir:    root,
			Staged: !cfg.Worktree,
		}
	}

	return sess, nil
}

// workingDir returns the --chdir directory, or the process working directory.
func workingDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("chdir")
	if err != nil || dir == "" {
		workDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return workDir, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", usageError(err)
	}
	if !info.IsDir() {
		return "", usageError(fmt.Errorf("%s is not a directory", dir))
	}
	return abs, nil
}

// readDiffFile reads diff text from path, or from stdin when path is "-".
func readDiffFile(stdin io.Reader, path string) (string, error) {
	if path == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read diff from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", usageError(fmt.Errorf("read diff file: %w", err))
	}
	return string(data), nil
}
