package cmd

import (
	"errors"
	"fmt"

	"github.com/birmacher/git-ai-reviewer/config"
	"github.com/birmacher/git-ai-reviewer/git"
	"github.com/birmacher/git-ai-reviewer/llm"
	"github.com/birmacher/git-ai-reviewer/logger"
	"github.com/birmacher/git-ai-reviewer/retry"
	"github.com/birmacher/git-ai-reviewer/review"
	"github.com/spf13/cobra"
)

// addReviewFlags registers the flags shared by the detail and release commands
func addReviewFlags(c *cobra.Command) {
	c.Flags().StringP("repo", "r", "", "Git clone URL of the repository to review (required)")
	c.Flags().StringP("feature-branch", "f", "", "Feature branch to review (required)")
	c.Flags().StringP("base-branch", "b", config.DefaultBaseBranch, "Base branch to diff against")
	c.Flags().String("local-path", "", "Local path for the clone (defaults to a per-repo cache directory)")
	c.Flags().String("ssh-key", "", "Path to the SSH private key for repository access")
	c.Flags().Bool("skip-host-key-check", false, "Disable strict host key checking for SSH (unsafe)")
	c.Flags().Float64("temperature", config.DefaultTemperature, "Sampling temperature for the model")
	c.Flags().Int("max-tokens", config.DefaultMaxTokens, "Maximum output tokens for the model")
	c.Flags().Int("api-timeout", config.DefaultAPITimeout, "Per-request API timeout in seconds")

	_ = c.MarkFlagRequired("repo")
	_ = c.MarkFlagRequired("feature-branch")
}

// buildConfig assembles the run configuration: defaults, then the optional
// YAML file, then explicitly set flags
func buildConfig(cmd *cobra.Command) config.Config {
	cfg := config.WithYamlFile(configFile)

	flags := cmd.Flags()
	if v, _ := flags.GetString("repo"); v != "" {
		cfg.RepoURL = v
	}
	if v, _ := flags.GetString("feature-branch"); v != "" {
		cfg.FeatureBranch = v
	}
	if flags.Changed("base-branch") {
		cfg.BaseBranch, _ = flags.GetString("base-branch")
	}
	if flags.Changed("local-path") {
		cfg.LocalPath, _ = flags.GetString("local-path")
	}
	if flags.Changed("ssh-key") {
		cfg.SSHKeyPath, _ = flags.GetString("ssh-key")
	}
	if flags.Changed("skip-host-key-check") {
		cfg.SkipHostKeyCheck, _ = flags.GetBool("skip-host-key-check")
	}
	if flags.Changed("temperature") {
		cfg.Temperature, _ = flags.GetFloat64("temperature")
	}
	if flags.Changed("max-tokens") {
		cfg.MaxTokens, _ = flags.GetInt("max-tokens")
	}
	if flags.Changed("api-timeout") {
		cfg.APITimeout, _ = flags.GetInt("api-timeout")
	}
	if provider != "" {
		cfg.Provider = provider
	}
	if model != "" {
		cfg.Model = model
	}

	return cfg
}

// runReview executes a review in the given mode and prints the result to stdout
func runReview(cmd *cobra.Command, mode string) error {
	cfg := buildConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.ResolveLocalPath()

	// Resolve the model client first so a missing API key is reported
	// before any git operation runs
	llmClient, err := llm.NewLLM(cfg.Provider, cfg.Model,
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithTemperature(cfg.Temperature),
		llm.WithAPITimeout(cfg.APITimeout),
	)
	if err != nil {
		return err
	}
	logger.Infof("Using LLM provider %s with model %s", cfg.Provider, cfg.Model)

	var env []string
	if cfg.SSHKeyPath != "" {
		sshEnv, err := git.SSHCommand(cfg.SSHKeyPath, cfg.SkipHostKeyCheck)
		if err != nil {
			return err
		}
		env = append(env, sshEnv)
	}
	gitClient := git.NewClient(git.NewDefaultRunner(cfg.LocalPath, env...), cfg.RepoURL, cfg.LocalPath)

	retryCfg := retry.Config{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelayDuration(),
		Multiplier:  2,
		MaxDelay:    cfg.Retry.MaxDelayDuration(),
		Retryable:   llm.IsRetryable,
	}

	svc := review.NewService(mode, gitClient, llmClient, retryCfg)
	content, err := svc.Run(cmd.Context(), cfg.BaseBranch, cfg.FeatureBranch)
	if errors.Is(err, review.ErrNothingToReview) {
		logger.Infof("No changes found between %s and %s", cfg.FeatureBranch, cfg.BaseBranch)
		fmt.Printf("Nothing to review: %s has no changes against %s\n", cfg.FeatureBranch, cfg.BaseBranch)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(content)
	return nil
}
