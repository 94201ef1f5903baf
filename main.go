package main

import (
	"os"

	"github.com/birmacher/git-ai-reviewer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
