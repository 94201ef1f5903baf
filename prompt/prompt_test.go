package prompt

import (
	"strings"
	"testing"
)

func TestGetSystemPrompt(t *testing.T) {
	detail := GetSystemPrompt(ModeDetail)
	if !strings.Contains(detail, "maintainability") {
		t.Error("Expected detail system prompt to mention maintainability")
	}

	release := GetSystemPrompt(ModeRelease)
	if !strings.Contains(release, "safe to release") {
		t.Error("Expected release system prompt to mention release safety")
	}

	if detail == release {
		t.Error("Expected mode-specific system prompts to differ")
	}
}

func TestGetReviewPrompt(t *testing.T) {
	p := GetReviewPrompt(ModeDetail, "main", "feature/login")
	if !strings.Contains(p, "feature/login") || !strings.Contains(p, "main") {
		t.Error("Expected both branches in the review prompt")
	}

	release := GetReviewPrompt(ModeRelease, "main", "release/v1.0")
	if !strings.Contains(release, "VERDICT") {
		t.Error("Expected release prompt to require a verdict line")
	}
}

func TestGetDiffPrompt(t *testing.T) {
	p := GetDiffPrompt("diff --git a/main.go b/main.go")
	if !strings.Contains(p, "[Branch Diff Start]") || !strings.Contains(p, "[Branch Diff End]") {
		t.Error("Expected diff to be wrapped in markers")
	}
	if !strings.Contains(p, "diff --git a/main.go b/main.go") {
		t.Error("Expected diff content to be embedded")
	}
}
