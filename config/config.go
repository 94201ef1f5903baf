// Package config carries the explicit configuration handed to the review
// entry point, assembled from defaults, an optional YAML file and CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/birmacher/git-ai-reviewer/logger"
	"gopkg.in/yaml.v3"
)

// Default values applied when neither the config file nor a flag overrides them
const (
	DefaultProvider    = "gemini"
	DefaultModel       = "gemini-2.5-flash"
	DefaultBaseBranch  = "main"
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 20480
	DefaultAPITimeout  = 120 // seconds

	DefaultMaxAttempts = 4
	DefaultBaseDelay   = 30  // seconds
	DefaultMaxDelay    = 300 // seconds
)

// Retry holds the backoff settings for calls to the LLM API.
// Delays are in seconds.
type Retry struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelay   int `yaml:"base_delay"`
	MaxDelay    int `yaml:"max_delay"`
}

// BaseDelayDuration returns the base delay as a time.Duration
func (r Retry) BaseDelayDuration() time.Duration {
	return time.Duration(r.BaseDelay) * time.Second
}

// MaxDelayDuration returns the delay cap as a time.Duration
func (r Retry) MaxDelayDuration() time.Duration {
	return time.Duration(r.MaxDelay) * time.Second
}

// Config contains everything a review run needs
type Config struct {
	RepoURL          string `yaml:"repo"`
	FeatureBranch    string `yaml:"feature_branch"`
	BaseBranch       string `yaml:"base_branch"`
	LocalPath        string `yaml:"local_path"`
	SSHKeyPath       string `yaml:"ssh_key"`
	SkipHostKeyCheck bool   `yaml:"skip_host_key_check"`

	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	// APITimeout is the per-request timeout in seconds
	APITimeout int `yaml:"api_timeout"`

	Retry Retry `yaml:"retry"`
}

// WithDefaults returns a Config populated with the default values
func WithDefaults() Config {
	return Config{
		BaseBranch:  DefaultBaseBranch,
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
		APITimeout:  DefaultAPITimeout,
		Retry: Retry{
			MaxAttempts: DefaultMaxAttempts,
			BaseDelay:   DefaultBaseDelay,
			MaxDelay:    DefaultMaxDelay,
		},
	}
}

// WithYamlFile overlays a YAML config file on top of the defaults. With an
// empty path the well-known file names are tried in the current directory;
// a missing file is not an error.
func WithYamlFile(path string) Config {
	cfg := WithDefaults()

	filePath := path
	if filePath == "" {
		for _, name := range []string{"review.yml", "review.yaml", ".git-ai-reviewer.yml"} {
			if _, err := os.Stat(name); err == nil {
				filePath = name
				break
			}
		}
	}

	if filePath == "" {
		logger.Debug("No config file found, using defaults")
		return cfg
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Warnf("Failed to read config file %s: %v", filePath, err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warnf("Failed to parse config file %s: %v", filePath, err)
		return cfg
	}

	logger.Infof("Using settings from config file: %s", filePath)
	return cfg
}

// ResolveLocalPath fills LocalPath from the repository name when not set,
// placing clones under the user cache directory
func (c *Config) ResolveLocalPath() {
	if c.LocalPath != "" {
		return
	}
	name := strings.TrimSuffix(filepath.Base(c.RepoURL), ".git")
	if name == "" || name == "." || name == "/" {
		name = "repository"
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	c.LocalPath = filepath.Join(cacheDir, "git-ai-reviewer", name)
}

// Validate reports configuration problems before any external call is made
func (c Config) Validate() error {
	if c.RepoURL == "" {
		return fmt.Errorf("repository URL is required")
	}
	if c.FeatureBranch == "" {
		return fmt.Errorf("feature branch is required")
	}
	if c.BaseBranch == "" {
		return fmt.Errorf("base branch is required")
	}
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %d", c.APITimeout)
	}
	if c.Retry.MaxAttempts < 0 {
		return fmt.Errorf("retry max attempts cannot be negative, got %d", c.Retry.MaxAttempts)
	}
	if c.Retry.BaseDelay <= 0 {
		return fmt.Errorf("retry base delay must be positive, got %d", c.Retry.BaseDelay)
	}
	return nil
}
