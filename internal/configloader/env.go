package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/hunkfmt/pkg/config"
)

// envVarPrefix is the prefix for all hunkfmt environment variables.
const envVarPrefix = "HUNKFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMATTER":       {field: "formatter.command", typ: envTypeString},
	"STYLE":           {field: "formatter.style", typ: envTypeString},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice},
	"EXCLUDE":         {field: "exclude", typ: envTypeSlice},
	"SKIP_VENDORED":   {field: "skip_vendored", typ: envTypeBool},
	"RESTAGE":         {field: "restage", typ: envTypeBool},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString},
	"GIT":             {field: "git.binary", typ: envTypeString},
	"FORMAT":          {field: "format", typ: envTypeString},
	"NO_BACKUPS":      {field: "no_backups", typ: envTypeBool},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with HUNKFMT_ (e.g., HUNKFMT_STYLE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "formatter.command":
		cfg.Formatter.Command = value
	case "formatter.style":
		cfg.Formatter.Style = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "git.binary":
		cfg.Git.Binary = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "skip_vendored":
		cfg.SkipVendored = value
	case "restage":
		cfg.Restage = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "extensions":
		cfg.Extensions = value
	case "exclude":
		cfg.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"HUNKFMT_FORMATTER":       "Formatter command line (default clang-format)",
		"HUNKFMT_STYLE":           "Formatter style passed as --style",
		"HUNKFMT_EXTENSIONS":      "Comma-separated list of file suffixes to format",
		"HUNKFMT_EXCLUDE":         "Comma-separated list of exclude patterns",
		"HUNKFMT_SKIP_VENDORED":   "Skip vendored files: true or false",
		"HUNKFMT_RESTAGE":         "Re-stage rewritten files: true or false",
		"HUNKFMT_BACKUPS_ENABLED": "Enable backups before rewriting: true or false",
		"HUNKFMT_BACKUPS_MODE":    "Backup mode: sidecar or none",
		"HUNKFMT_GIT":             "git executable used to read the diff",
		"HUNKFMT_FORMAT":          "Output format: text, json, or diff",
		"HUNKFMT_NO_BACKUPS":      "Disable backups: true or false",
	}
}
