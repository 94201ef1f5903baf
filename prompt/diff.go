package prompt

func GetDiffPrompt(diffContent string) string {
	return `Below is the raw branch diff for context.

[Branch Diff Start]
` + diffContent + `
[Branch Diff End]`
}
