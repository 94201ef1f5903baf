package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := WithDefaults()
	cfg.RepoURL = "git@example.com:org/repo.git"
	cfg.FeatureBranch = "feature/login"
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := WithDefaults()
	if cfg.Provider != "gemini" {
		t.Errorf("Expected default provider gemini, got %s", cfg.Provider)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Expected default model gemini-2.5-flash, got %s", cfg.Model)
	}
	if cfg.BaseBranch != "main" {
		t.Errorf("Expected default base branch main, got %s", cfg.BaseBranch)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("Expected default temperature 0.2, got %g", cfg.Temperature)
	}
	if cfg.MaxTokens != 20480 {
		t.Errorf("Expected default max tokens 20480, got %d", cfg.MaxTokens)
	}
	if cfg.Retry.MaxAttempts != 4 {
		t.Errorf("Expected default retry attempts 4, got %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Retry.BaseDelayDuration() != 30*time.Second {
		t.Errorf("Expected default base delay 30s, got %s", cfg.Retry.BaseDelayDuration())
	}
}

func TestWithYamlFile(t *testing.T) {
	content := `
provider: openai
model: gpt-4o
base_branch: develop
temperature: 0.5
retry:
  max_attempts: 2
  base_delay: 5
`
	path := filepath.Join(t.TempDir(), "review.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg := WithYamlFile(path)
	if cfg.Provider != "openai" {
		t.Errorf("Expected provider openai, got %s", cfg.Provider)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %s", cfg.Model)
	}
	if cfg.BaseBranch != "develop" {
		t.Errorf("Expected base branch develop, got %s", cfg.BaseBranch)
	}
	if cfg.Temperature != 0.5 {
		t.Errorf("Expected temperature 0.5, got %g", cfg.Temperature)
	}
	if cfg.Retry.MaxAttempts != 2 || cfg.Retry.BaseDelayDuration() != 5*time.Second {
		t.Errorf("Expected retry overrides applied, got %+v", cfg.Retry)
	}
	// untouched keys keep their defaults
	if cfg.MaxTokens != DefaultMaxTokens {
		t.Errorf("Expected default max tokens to survive overlay, got %d", cfg.MaxTokens)
	}
}

func TestWithYamlFileMissing(t *testing.T) {
	cfg := WithYamlFile(filepath.Join(t.TempDir(), "missing.yml"))
	if cfg.Provider != DefaultProvider {
		t.Errorf("Expected defaults for missing file, got provider %s", cfg.Provider)
	}
}

func TestResolveLocalPath(t *testing.T) {
	cfg := validConfig()
	cfg.ResolveLocalPath()
	if cfg.LocalPath == "" {
		t.Fatal("Expected local path to be derived")
	}
	if filepath.Base(cfg.LocalPath) != "repo" {
		t.Errorf("Expected path to end in repo name, got %s", cfg.LocalPath)
	}

	cfg = validConfig()
	cfg.LocalPath = "/tmp/explicit"
	cfg.ResolveLocalPath()
	if cfg.LocalPath != "/tmp/explicit" {
		t.Errorf("Expected explicit path to be kept, got %s", cfg.LocalPath)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		errPart string
	}{
		{"missing repo", func(c *Config) { c.RepoURL = "" }, "repository URL"},
		{"missing feature branch", func(c *Config) { c.FeatureBranch = "" }, "feature branch"},
		{"missing base branch", func(c *Config) { c.BaseBranch = "" }, "base branch"},
		{"temperature too high", func(c *Config) { c.Temperature = 3 }, "temperature"},
		{"negative temperature", func(c *Config) { c.Temperature = -0.1 }, "temperature"},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }, "max tokens"},
		{"negative retry attempts", func(c *Config) { c.Retry.MaxAttempts = -1 }, "max attempts"},
		{"zero base delay", func(c *Config) { c.Retry.BaseDelay = 0 }, "base delay"},
	}

	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.errPart) {
			t.Errorf("%s: expected error mentioning %q, got %v", tc.name, tc.errPart, err)
		}
	}
}
