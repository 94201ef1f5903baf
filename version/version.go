package version

// Version is the current version of the tool.
// It is overridden at build time via -ldflags "-X github.com/birmacher/git-ai-reviewer/version.Version=x.y.z".
var Version = "0.1.0"
