package cmd

import (
	"github.com/birmacher/git-ai-reviewer/logger"
	"github.com/spf13/cobra"
)

var (
	// Command line flags
	logLevel   string
	provider   string
	model      string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "git-ai-reviewer",
	Short: "AI code review for git branches",
	Long: `git-ai-reviewer clones a git repository, computes the three-dot diff between
a feature branch and a base branch, and asks an AI model to review the changes.
The review text is printed to standard output.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger with the specified log level
		logger.Init(logLevel)
		logger.Debugf("Log level set to: %s", logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommands are provided
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	// Subcommands are added in their respective init() functions
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceUsage = true

	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "",
		"LLM provider to use (gemini, openai, anthropic)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "",
		"LLM model to use")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to a YAML config file (defaults to review.yml in the current directory)")
}
