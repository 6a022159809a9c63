package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/hunkfmt/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// Bound the upward search.
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Formatter.Command != config.DefaultFormatterCommand {
		t.Errorf("expected formatter %q, got %q", config.DefaultFormatterCommand, result.Config.Formatter.Command)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".hunkfmt.yml"), `
formatter:
  command: clang-format-17
  style: file
exclude:
  - "third_party/**"
restage: true
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Formatter.Command != "clang-format-17" || cfg.Formatter.Style != "file" {
		t.Errorf("unexpected formatter config: %+v", cfg.Formatter)
	}
	if !cfg.Restage {
		t.Error("expected restage to be enabled")
	}
	if len(cfg.Extensions) != len(config.DefaultExtensions()) {
		t.Errorf("expected default extensions to survive, got %v", cfg.Extensions)
	}
	if len(result.LoadedFrom) != 1 || !strings.HasSuffix(result.LoadedFrom[0], ".hunkfmt.yml") {
		t.Errorf("unexpected LoadedFrom %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigTOML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".hunkfmt.toml"), `
extensions = [".c", ".h"]

[formatter]
command = "clang-format"
style = "LLVM"
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := result.Config.Extensions; len(got) != 2 || got[1] != ".h" {
		t.Errorf("unexpected extensions %v", got)
	}
	if result.Config.Formatter.Style != "LLVM" {
		t.Errorf("unexpected style %q", result.Config.Formatter.Style)
	}
}

func TestLoad_SearchesUpwardToVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".hunkfmt.yml"), "formatter:\n  style: Google\n")
	nested := filepath.Join(root, "repo", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != filepath.Join(root, ".hunkfmt.yml") {
		t.Errorf("expected config at root, got %q", found)
	}

	// A repository boundary stops the search.
	if err := os.Mkdir(filepath.Join(root, "repo", ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	found, err = FindProjectConfig(context.Background(), nested)
	if err != nil {
		t.Fatalf("FindProjectConfig() error = %v", err)
	}
	if found != "" {
		t.Errorf("expected search to stop at VCS root, got %q", found)
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".hunkfmt.yml"), "formatter:\n  style: Google\n")
	explicit := filepath.Join(tmpDir, "ci", "hunkfmt.yaml")
	writeFile(t, explicit, "formatter:\n  style: Mozilla\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Formatter.Style != "Mozilla" {
		t.Errorf("expected explicit style, got %q", result.Config.Formatter.Style)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("unexpected LoadedFrom %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverridesEverything(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".hunkfmt.yml"), "formatter:\n  style: Google\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Formatter: config.FormatterConfig{Style: "WebKit"},
		Check:     true,
		Format:    config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := result.Config
	if cfg.Formatter.Style != "WebKit" || !cfg.Check || cfg.Format != config.FormatJSON {
		t.Errorf("CLI values not applied: %+v", cfg)
	}
	if cfg.Formatter.Command != config.DefaultFormatterCommand {
		t.Errorf("unset CLI field overrode default: %q", cfg.Formatter.Command)
	}
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HUNKFMT_STYLE", "Chromium")
	t.Setenv("HUNKFMT_EXCLUDE", "gen/**, third_party/**")
	t.Setenv("HUNKFMT_RESTAGE", "1")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := result.Config
	if cfg.Formatter.Style != "Chromium" {
		t.Errorf("unexpected style %q", cfg.Formatter.Style)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[1] != "third_party/**" {
		t.Errorf("unexpected exclude %v", cfg.Exclude)
	}
	if !cfg.Restage {
		t.Error("expected restage from environment")
	}
}

func TestLoad_EnvironmentInvalidBool(t *testing.T) {
	t.Setenv("HUNKFMT_RESTAGE", "sometimes")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "HUNKFMT_RESTAGE") {
		t.Fatalf("expected env error, got %v", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".hunkfmt.yml"), "backups:\n  mode: cloud\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "backups.mode" {
		t.Errorf("unexpected field %q", validationErr.Field)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".hunkfmt.yml"), "formatter: [unclosed\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil || !strings.Contains(err.Error(), "load project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "empty formatter", mutate: func(c *config.Config) { c.Formatter.Command = "  " }, wantField: "formatter.command"},
		{name: "unknown format", mutate: func(c *config.Config) { c.Format = "sarif" }, wantField: "format"},
		{name: "extension without dot", mutate: func(c *config.Config) { c.Extensions = []string{"cpp"} }, wantField: "extensions[0]"},
		{name: "extension with path", mutate: func(c *config.Config) { c.Extensions = []string{".c", ".a/b"} }, wantField: "extensions[1]"},
		{name: "bad glob", mutate: func(c *config.Config) { c.Exclude = []string{"src/[abc"} }, wantField: "exclude[0]"},
		{name: "empty git", mutate: func(c *config.Config) { c.Git.Binary = "" }, wantField: "git.binary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)
			result := Validate(cfg)

			if tt.wantField == "" {
				if !result.Valid() {
					t.Fatalf("expected valid config, got %v", result.AllMessages())
				}
				return
			}
			if result.Valid() {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if result.Errors[0].Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, result.Errors[0].Field)
			}
		})
	}
}

func TestValidate_NoExtensionsWarns(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Extensions = []string{}

	result := ValidateWithFile(cfg, ".hunkfmt.yml")
	if !result.Valid() || !result.HasWarnings() {
		t.Fatalf("expected a warning only, got %v", result.AllMessages())
	}
	if result.Warnings[0].FilePath != ".hunkfmt.yml" {
		t.Errorf("expected file path on warning, got %q", result.Warnings[0].FilePath)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	layer := &config.Config{Exclude: []string{"a/**"}, Backups: config.BackupsConfig{Enabled: true}}
	top := &config.Config{Exclude: []string{"b/**"}, Git: config.GitConfig{Binary: "/usr/bin/git"}}

	merged := MergeAll(base, layer, top)
	if len(merged.Exclude) != 1 || merged.Exclude[0] != "b/**" {
		t.Errorf("slices should be replaced, got %v", merged.Exclude)
	}
	if !merged.Backups.Enabled || merged.Backups.Mode != "sidecar" {
		t.Errorf("unexpected backups %+v", merged.Backups)
	}
	if merged.Git.Binary != "/usr/bin/git" {
		t.Errorf("unexpected git binary %q", merged.Git.Binary)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() of nothing should be nil")
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("formatter.style"); got != "HUNKFMT_STYLE" {
		t.Errorf("unexpected env var %q", got)
	}
	if _, ok := ListEnvVars()[GetEnvVarName("exclude")]; !ok {
		t.Error("exclude env var is not documented")
	}
}

func TestIsInteractive(t *testing.T) {
	t.Parallel()

	if IsInteractive(strings.NewReader("y\n")) {
		t.Error("a string reader is not a terminal")
	}
}
