// Package review orchestrates a single review run: resolve the repository,
// compute the branch diff, and generate the review text.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/birmacher/git-ai-reviewer/llm"
	"github.com/birmacher/git-ai-reviewer/logger"
	"github.com/birmacher/git-ai-reviewer/prompt"
	"github.com/birmacher/git-ai-reviewer/retry"
)

// ErrNothingToReview indicates the feature branch has no changes against the base branch
var ErrNothingToReview = errors.New("no changes between the feature branch and the base branch")

// DiffProvider supplies the three-dot diff for a branch pair
type DiffProvider interface {
	CloneOrOpen() error
	ReviewDiff(baseBranch, featureBranch string) (string, error)
}

// Service generates an AI review for a branch pair
type Service struct {
	mode     string
	diffs    DiffProvider
	model    llm.LLM
	retryCfg retry.Config
}

// NewService creates a review service for the given mode (detail or release)
func NewService(mode string, diffs DiffProvider, model llm.LLM, retryCfg retry.Config) *Service {
	if retryCfg.Retryable == nil {
		retryCfg.Retryable = llm.IsRetryable
	}
	return &Service{
		mode:     mode,
		diffs:    diffs,
		model:    model,
		retryCfg: retryCfg,
	}
}

// Run produces the review text for the branch pair
func (s *Service) Run(ctx context.Context, baseBranch, featureBranch string) (string, error) {
	if err := s.diffs.CloneOrOpen(); err != nil {
		return "", fmt.Errorf("failed to prepare repository: %w", err)
	}

	diff, err := s.diffs.ReviewDiff(baseBranch, featureBranch)
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}
	if strings.TrimSpace(diff) == "" {
		return "", ErrNothingToReview
	}
	logger.Infof("Computed diff of %d bytes for %s against %s", len(diff), featureBranch, baseBranch)

	req := llm.Request{
		SystemPrompt: prompt.GetSystemPrompt(s.mode),
		UserPrompt:   prompt.GetReviewPrompt(s.mode, baseBranch, featureBranch),
		Diff:         prompt.GetDiffPrompt(diff),
	}

	content, err := retry.Do(ctx, s.retryCfg, func() (string, error) {
		resp := s.model.Prompt(req)
		if resp.Error != nil {
			return "", resp.Error
		}
		return resp.Content, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate review: %w", err)
	}

	return content, nil
}
