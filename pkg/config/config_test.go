package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/hunkfmt/pkg/config"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()

	assert.Equal(t, "clang-format", cfg.Formatter.Command)
	assert.Equal(t, []string{".c", ".cc", ".cpp", ".h", ".hh", ".hpp"}, cfg.Extensions)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.False(t, cfg.BackupsEnabled())
}

func TestConfig_BackupsEnabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Backups.Enabled = true
	assert.True(t, cfg.BackupsEnabled())

	cfg.NoBackups = true
	assert.False(t, cfg.BackupsEnabled())

	cfg.NoBackups = false
	cfg.Backups.Mode = "none"
	assert.False(t, cfg.BackupsEnabled())
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Exclude = []string{"vendor/**"}
	cfg.Check = true

	clone := cfg.Clone()
	clone.Extensions[0] = ".cxx"
	clone.Exclude = append(clone.Exclude, "gen/**")

	assert.Equal(t, ".c", cfg.Extensions[0])
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
	assert.True(t, clone.Check)

	var nilCfg *config.Config
	assert.Nil(t, nilCfg.Clone())
}

func TestYAMLRoundTrip_DropsCLIFields(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Formatter.Style = "file"
	cfg.Exclude = []string{"third_party/**"}
	cfg.Check = true
	cfg.Summary = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "command: clang-format")
	assert.NotContains(t, string(data), "check")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Formatter, parsed.Formatter)
	assert.Equal(t, cfg.Exclude, parsed.Exclude)
	assert.False(t, parsed.Check)
	assert.False(t, parsed.Summary)
}

func TestToYAMLWithHeader(t *testing.T) {
	t.Parallel()

	data, err := config.NewConfig().ToYAMLWithHeader("# generated")
	require.NoError(t, err)
	assert.Regexp(t, `^# generated\n\nformatter:`, string(data))
}

func TestTOML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Restage = true

	data, err := cfg.ToTOML()
	require.NoError(t, err)

	parsed, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.True(t, parsed.Restage)
	assert.Equal(t, cfg.Extensions, parsed.Extensions)

	_, err = config.FromTOML([]byte("colour = \"red\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("yaml parses back", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Style: "Google"})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "clang-format", cfg.Formatter.Command)
		assert.Equal(t, "Google", cfg.Formatter.Style)
		assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
	})

	t.Run("toml parses back", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: config.TemplateTOML})
		require.NoError(t, err)

		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, "clang-format", cfg.Formatter.Command)
		assert.Equal(t, "sidecar", cfg.Backups.Mode)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
		require.Error(t, err)
	})
}

func TestTemplateFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".hunkfmt.yml", config.TemplateFileName(config.TemplateYAML))
	assert.Equal(t, ".hunkfmt.toml", config.TemplateFileName(config.TemplateTOML))
}
