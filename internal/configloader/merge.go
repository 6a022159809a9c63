package configloader

import "github.com/yaklabco/hunkfmt/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true in override is observed
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Formatter.Command != "" {
		result.Formatter.Command = override.Formatter.Command
	}
	if override.Formatter.Style != "" {
		result.Formatter.Style = override.Formatter.Style
	}
	if override.Git.Binary != "" {
		result.Git.Binary = override.Git.Binary
	}
	if override.Format != "" {
		result.Format = override.Format
	}

	// false is the zero value, so a file cannot unset a flag a lower
	// layer turned on.
	if override.SkipVendored {
		result.SkipVendored = true
	}
	if override.Restage {
		result.Restage = true
	}
	if override.Check {
		result.Check = true
	}
	if override.Worktree {
		result.Worktree = true
	}
	if override.Summary {
		result.Summary = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Exclude != nil {
		result.Exclude = override.Exclude
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
