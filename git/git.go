package git

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/birmacher/git-ai-reviewer/logger"
)

const (
	// DefaultRemote is the remote used for fetching and branch resolution
	DefaultRemote = "origin"
	// DefaultDiffContext is the number of unified context lines included in review diffs
	DefaultDiffContext = "10"
)

// Runner defines an interface for running git commands
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// Ensure DefaultRunner implements Runner interface
var _ Runner = (*DefaultRunner)(nil)

// DefaultRunner implements the Runner interface using exec.Command
type DefaultRunner struct {
	RepoPath string
	// Env entries appended to the inherited environment, such as GIT_SSH_COMMAND
	Env []string
}

// NewDefaultRunner creates a new instance of DefaultRunner
func NewDefaultRunner(repoPath string, env ...string) *DefaultRunner {
	return &DefaultRunner{
		RepoPath: repoPath,
		Env:      env,
	}
}

// Run executes a git command and returns its output
func (r *DefaultRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	// The repo path does not exist before the first clone; clone runs from the cwd
	if r.RepoPath != "" {
		if _, err := os.Stat(r.RepoPath); err == nil {
			cmd.Dir = r.RepoPath
		}
	}
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("error running command: %s\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// BranchNotFoundError reports remote branches that could not be resolved
type BranchNotFoundError struct {
	Branches []string
}

func (e *BranchNotFoundError) Error() string {
	return fmt.Sprintf("branch not found on remote %s: %s", DefaultRemote, strings.Join(e.Branches, ", "))
}

// Client provides the git operations needed to produce a review diff
type Client struct {
	runner   Runner
	repoURL  string
	repoPath string
}

// NewClient creates a new Git client for the given clone URL and local path
func NewClient(runner Runner, repoURL, repoPath string) *Client {
	return &Client{
		runner:   runner,
		repoURL:  repoURL,
		repoPath: repoPath,
	}
}

// SSHCommand builds a GIT_SSH_COMMAND value for key-based authentication.
// With skipHostKeyCheck set the host key verification is disabled, which is
// only acceptable against trusted infrastructure.
func SSHCommand(sshKeyPath string, skipHostKeyCheck bool) (string, error) {
	keyPath := sshKeyPath
	if strings.HasPrefix(keyPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error resolving home directory: %w", err)
		}
		keyPath = filepath.Join(home, strings.TrimPrefix(keyPath, "~"))
	}

	absPath, err := filepath.Abs(keyPath)
	if err != nil {
		return "", fmt.Errorf("error resolving SSH key path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return "", fmt.Errorf("SSH key file not found: %s", absPath)
	}

	sshCommand := fmt.Sprintf(`ssh -i "%s"`, filepath.ToSlash(absPath))
	if skipHostKeyCheck {
		logger.Warn("Disabling strict host key checking for git SSH connections")
		sshCommand += " -o StrictHostKeyChecking=no"
	}

	return "GIT_SSH_COMMAND=" + sshCommand, nil
}

// CloneOrOpen makes the local path a usable clone of the configured URL.
// An existing clone is reused when its origin URL matches, so repeated runs
// share fetched state; anything else is removed and cloned fresh.
func (c *Client) CloneOrOpen() error {
	if !c.isGitRepo() {
		return c.removeAndClone()
	}

	logger.Infof("Opening repository at %s", c.repoPath)
	existingURL, err := c.remoteURL()
	if err != nil || existingURL == "" {
		logger.Warnf("Remote %s not configured, re-cloning", DefaultRemote)
		return c.removeAndClone()
	}

	if normalizeURL(existingURL) != normalizeURL(c.repoURL) {
		logger.Warnf("Existing remote URL %s does not match %s, re-cloning", existingURL, c.repoURL)
		return c.removeAndClone()
	}

	logger.Debugf("Reusing existing clone at %s", c.repoPath)
	return nil
}

// Fetch updates remote-tracking branches, pruning deleted ones
func (c *Client) Fetch() error {
	logger.Infof("Fetching %s", DefaultRemote)
	if _, err := c.runner.Run("git", "fetch", DefaultRemote, "--prune"); err != nil {
		return fmt.Errorf("error fetching remote %s: %w", DefaultRemote, err)
	}
	return nil
}

// MergeBase returns the common ancestor commit of two refs
func (c *Client) MergeBase(baseRef, featureRef string) (string, error) {
	mergeBase, err := c.runner.Run("git", "merge-base", baseRef, featureRef)
	if err != nil {
		return "", fmt.Errorf("error finding merge base: %w", err)
	}
	if mergeBase == "" {
		return "", fmt.Errorf("no common ancestor between %s and %s", baseRef, featureRef)
	}
	return mergeBase, nil
}

// ReviewDiff returns the three-dot diff between the base and feature branches:
// the changes unique to the feature branch since its merge base with base.
func (c *Client) ReviewDiff(baseBranch, featureBranch string) (string, error) {
	if baseBranch == "" || featureBranch == "" {
		return "", fmt.Errorf("base and feature branch cannot be empty")
	}

	if err := c.Fetch(); err != nil {
		return "", err
	}

	baseRef := remoteRef(baseBranch)
	featureRef := remoteRef(featureBranch)

	var missing []string
	if !c.remoteBranchExists(baseRef) {
		missing = append(missing, baseBranch)
	}
	if !c.remoteBranchExists(featureRef) {
		missing = append(missing, featureBranch)
	}
	if len(missing) > 0 {
		return "", &BranchNotFoundError{Branches: missing}
	}

	mergeBase, err := c.MergeBase(baseRef, featureRef)
	if err != nil {
		return "", err
	}

	logger.Debugf("Diffing %s..%s", mergeBase, featureRef)
	diff, err := c.runner.Run("git",
		"diff",
		"--no-color",
		"--no-ext-diff",
		"--unified="+DefaultDiffContext,
		mergeBase,
		featureRef,
	)
	if err != nil {
		return "", fmt.Errorf("error generating diff: %w", err)
	}

	return diff, nil
}

func remoteRef(branch string) string {
	return "refs/remotes/" + DefaultRemote + "/" + branch
}

func (c *Client) remoteBranchExists(ref string) bool {
	_, err := c.runner.Run("git", "show-ref", "--verify", ref)
	return err == nil
}

func (c *Client) remoteURL() (string, error) {
	return c.runner.Run("git", "config", "--get", "remote."+DefaultRemote+".url")
}

func (c *Client) isGitRepo() bool {
	info, err := os.Stat(filepath.Join(c.repoPath, ".git"))
	return err == nil && info.IsDir()
}

func (c *Client) removeAndClone() error {
	if _, err := os.Stat(c.repoPath); err == nil {
		logger.Infof("Removing old repository directory %s", c.repoPath)
		if err := os.RemoveAll(c.repoPath); err != nil {
			return fmt.Errorf("error removing old repository directory: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(c.repoPath), 0o755); err != nil {
		return fmt.Errorf("error creating clone parent directory: %w", err)
	}

	logger.Infof("Cloning %s into %s", c.repoURL, c.repoPath)
	if _, err := c.runner.Run("git", "clone", c.repoURL, c.repoPath); err != nil {
		return fmt.Errorf("error cloning repository %s: %w", c.repoURL, err)
	}
	return nil
}

// normalizeURL canonicalizes a clone URL for comparison: trailing slashes and
// user-info are ignored, and the comparison is case-insensitive. SCP-style
// SSH addresses (git@host:path) are compared as-is.
func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimRight(u, "/")

	if !strings.HasPrefix(u, "git@") && strings.Contains(u, "://") {
		if parsed, err := url.Parse(u); err == nil {
			parsed.User = nil
			u = parsed.String()
		}
	}

	return strings.ToLower(u)
}
