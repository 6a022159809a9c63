package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/hunkfmt/internal/configloader"
	"github.com/yaklabco/hunkfmt/internal/logging"
	"github.com/yaklabco/hunkfmt/pkg/config"
	"github.com/yaklabco/hunkfmt/pkg/fsutil"
)

// errInitAborted is returned when the user declines to overwrite a file.
var errInitAborted = errors.New("init aborted")

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
	style  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new hunkfmt configuration file",
		Long: `Create a new .hunkfmt.yml configuration file in the current directory
with the default formatter, extensions and backup settings.

Examples:
  hunkfmt init                      Create .hunkfmt.yml
  hunkfmt init --format toml        Create .hunkfmt.toml instead
  hunkfmt init --style Google       Pre-fill the formatter style
  hunkfmt init --output ci.yml      Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .hunkfmt.yml or .hunkfmt.toml)")
	cmd.Flags().StringVar(&flags.style, "style", "", "Formatter style to write into the file")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.NewInteractive()
	logger.SetOutput(cmd.ErrOrStderr())

	format := config.TemplateFormat(flags.format)
	if format != config.TemplateYAML && format != config.TemplateTOML {
		return usageError(fmt.Errorf("invalid format %q: must be yaml or toml", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = config.TemplateFileName(format)
	}

	if !filepath.IsAbs(outputPath) {
		workDir, err := workingDir(cmd)
		if err != nil {
			return err
		}
		outputPath = filepath.Join(workDir, outputPath)
	}

	if _, err := os.Stat(outputPath); err == nil && !flags.force {
		if !configloader.IsInteractive(cmd.InOrStdin()) {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Overwrite %s?", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			return errInitAborted
		}
	} else if err == nil {
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Format: format,
		Style:  flags.style,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, outputPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")

	return nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s [y/N] ", question); err != nil {
		return false, fmt.Errorf("write prompt: %w", err)
	}

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
