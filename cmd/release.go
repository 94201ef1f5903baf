package cmd

import (
	"github.com/birmacher/git-ai-reviewer/prompt"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Run a release readiness review",
	Long: `Review the changes of a feature branch with a focus on whether they are
safe to release to production. The review ends with an explicit verdict.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, prompt.ModeRelease)
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)
	addReviewFlags(releaseCmd)
}
