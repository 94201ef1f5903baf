package cmd

import (
	"github.com/birmacher/git-ai-reviewer/prompt"
	"github.com/spf13/cobra"
)

var detailCmd = &cobra.Command{
	Use:   "detail",
	Short: "Run a detailed code quality review",
	Long: `Review the changes of a feature branch with a focus on code quality,
correctness and maintainability.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, prompt.ModeDetail)
	},
}

func init() {
	rootCmd.AddCommand(detailCmd)
	addReviewFlags(detailCmd)
}
