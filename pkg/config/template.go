package config

import (
	"fmt"
	"strings"
)

// TemplateFormat is the syntax of a generated configuration file.
type TemplateFormat string

const (
	TemplateYAML TemplateFormat = "yaml"
	TemplateTOML TemplateFormat = "toml"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output syntax: "yaml" (default) or "toml".
	Format TemplateFormat

	// Style pre-fills formatter.style when set.
	Style string
}

// GenerateTemplate creates a commented starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return []byte(yamlTemplate(opts)), nil
	case TemplateTOML:
		return []byte(tomlTemplate(opts)), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}

// TemplateFileName returns the project config file name for format.
func TemplateFileName(format TemplateFormat) string {
	if format == TemplateTOML {
		return ".hunkfmt.toml"
	}
	return ".hunkfmt.yml"
}

func yamlTemplate(opts TemplateOptions) string {
	var sb strings.Builder

	sb.WriteString(`# hunkfmt configuration
# See: https://github.com/yaklabco/hunkfmt

formatter:
  # Formatter command line; must accept -i, --lines and --dry-run.
  command: clang-format
`)
	if opts.Style != "" {
		fmt.Fprintf(&sb, "  style: %q\n", opts.Style)
	} else {
		sb.WriteString("  # style: file\n")
	}

	sb.WriteString(`
# File suffixes that are formatted.
extensions: [".c", ".cc", ".cpp", ".h", ".hh", ".hpp"]

# Paths never formatted (glob patterns).
# exclude:
#   - "third_party/**"
#   - "**/*.pb.h"

# Leave vendored code alone.
# skip_vendored: true

# Add rewritten files back to the index.
# restage: true

# Copy each file aside before it is rewritten.
backups:
  enabled: false
  mode: sidecar

# git:
#   binary: git
`)
	return sb.String()
}

func tomlTemplate(opts TemplateOptions) string {
	var sb strings.Builder

	sb.WriteString(`# hunkfmt configuration
# See: https://github.com/yaklabco/hunkfmt

# File suffixes that are formatted.
extensions = [".c", ".cc", ".cpp", ".h", ".hh", ".hpp"]

# Paths never formatted (glob patterns).
# exclude = ["third_party/**", "**/*.pb.h"]

# skip_vendored = true
# restage = true

[formatter]
# Formatter command line; must accept -i, --lines and --dry-run.
command = "clang-format"
`)
	if opts.Style != "" {
		fmt.Fprintf(&sb, "style = %q\n", opts.Style)
	} else {
		sb.WriteString("# style = \"file\"\n")
	}

	sb.WriteString(`
[backups]
enabled = false
mode = "sidecar"

# [git]
# binary = "git"
`)
	return sb.String()
}
