package prompt

// GetReviewPrompt returns the user prompt for the given review mode and branch pair
func GetReviewPrompt(mode, baseBranch, featureBranch string) string {
	header := `## Branches
- **Feature branch**: ` + featureBranch + `
- **Base branch**: ` + baseBranch + `
`

	switch mode {
	case ModeRelease:
		return header + `## Task
Review the diff below and decide whether the feature branch is ready to be released.
Provide your response with the following content:
- A short summary of what the branch changes.
- Risks that could affect a production release, ordered by severity.
- Anything that must be verified manually before shipping.
- A final line of exactly one of: VERDICT: GO, VERDICT: NO-GO, VERDICT: GO WITH CAUTION.`
	default:
		return header + `## Task
Review the diff below for code quality and maintainability.
Provide your response with the following content:
- A short summary of what the branch changes.
- Issues found, ordered by severity, each referencing the relevant file and hunk.
- Concrete improvement suggestions with code snippets where they help.
- If the changes look good, say so explicitly.`
	}
}
