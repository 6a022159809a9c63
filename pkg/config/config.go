// Package config defines core configuration types for hunkfmt.
// These types are pure data structures with no dependency on the loader.
package config

import "slices"

// DefaultFormatterCommand is the formatter invoked when none is configured.
const DefaultFormatterCommand = "clang-format"

// BackupsConfig controls backup behavior before files are rewritten.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode"    toml:"mode"    yaml:"mode"` // "sidecar" or "none"
}

// FormatterConfig selects the formatter executable and its style.
type FormatterConfig struct {
	// Command is the formatter command line, split shell-style.
	Command string `mapstructure:"command" toml:"command" yaml:"command"`

	// Style is passed as --style=<value> when non-empty.
	Style string `mapstructure:"style" toml:"style,omitempty" yaml:"style,omitempty"`
}

// GitConfig controls how the diff is retrieved.
type GitConfig struct {
	// Binary is the git executable used for "git diff".
	Binary string `mapstructure:"binary" toml:"binary" yaml:"binary"`
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// Config is the root configuration structure for hunkfmt.
type Config struct {
	// Formatter configures the line-range-aware formatter.
	Formatter FormatterConfig `mapstructure:"formatter" toml:"formatter" yaml:"formatter"`

	// Extensions lists the file suffixes eligible for formatting.
	Extensions []string `mapstructure:"extensions" toml:"extensions" yaml:"extensions"`

	// Exclude contains glob patterns for paths that are never formatted.
	Exclude []string `mapstructure:"exclude" toml:"exclude,omitempty" yaml:"exclude,omitempty"`

	// SkipVendored leaves files detected as vendored code untouched.
	SkipVendored bool `mapstructure:"skip_vendored" toml:"skip_vendored" yaml:"skip_vendored"`

	// Restage adds rewritten files back to the index.
	Restage bool `mapstructure:"restage" toml:"restage" yaml:"restage"`

	// Backups configures backup behavior before rewriting.
	Backups BackupsConfig `mapstructure:"backups" toml:"backups" yaml:"backups"`

	// Git configures diff retrieval.
	Git GitConfig `mapstructure:"git" toml:"git" yaml:"git"`

	// CLI-level options (not persisted to config files).

	// Check reports violations without rewriting anything.
	Check bool `mapstructure:"-" toml:"-" yaml:"-"`

	// Worktree diffs unstaged changes instead of the index.
	Worktree bool `mapstructure:"-" toml:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" toml:"-" yaml:"-"`

	// Summary prints a one-line summary after the report.
	Summary bool `mapstructure:"-" toml:"-" yaml:"-"`

	// NoBackups disables backup creation regardless of Backups.
	NoBackups bool `mapstructure:"-" toml:"-" yaml:"-"`
}

// DefaultExtensions returns the file suffixes formatted out of the box.
func DefaultExtensions() []string {
	return []string{".c", ".cc", ".cpp", ".h", ".hh", ".hpp"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Formatter: FormatterConfig{
			Command: DefaultFormatterCommand,
		},
		Extensions: DefaultExtensions(),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Git: GitConfig{
			Binary: "git",
		},
		Format: FormatText,
	}
}

// BackupsEnabled reports whether backups should be written before a rewrite.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Extensions = slices.Clone(c.Extensions)
	clone.Exclude = slices.Clone(c.Exclude)
	return &clone
}
