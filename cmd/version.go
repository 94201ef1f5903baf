package cmd

import (
	"fmt"

	"github.com/birmacher/git-ai-reviewer/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the version of this tool`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("git-ai-reviewer v%s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
