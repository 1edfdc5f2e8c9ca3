package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// GitConfig describes a rule base published as a git repository. Pulling a
// repository rather than reading a bare directory gives the rule base the
// versioned-snapshot property the graph lifecycle assumes: every load
// corresponds to one commit.
type GitConfig struct {
	// Repository is the clone URL.
	Repository string

	// Branch is the branch to track.
	Branch string

	// RulesPath is the subdirectory holding rule files; empty means the
	// repository root.
	RulesPath string

	// LocalPath is where the working copy lives. Defaults to a directory
	// under the OS temp dir.
	LocalPath string

	// Depth > 0 requests a shallow clone.
	Depth int

	// Token is an optional bearer token for private repositories.
	Token string
}

// GitSource manages the local checkout of a rule-base repository.
type GitSource struct {
	config GitConfig
	repo   *gogit.Repository
	mu     sync.Mutex
}

// GitSyncResult reports the outcome of a Sync.
type GitSyncResult struct {
	// HadChanges is true when the checkout moved to a new commit.
	HadChanges bool

	// FromSHA and ToSHA are the commit hashes before and after the sync.
	FromSHA string
	ToSHA   string
}

// NewGitSource creates a rule-base git source.
func NewGitSource(cfg GitConfig) (*GitSource, error) {
	if cfg.Repository == "" {
		return nil, fmt.Errorf("repository URL cannot be empty")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.LocalPath == "" {
		cfg.LocalPath = filepath.Join(os.TempDir(), "nomos-rulebase")
	}
	return &GitSource{config: cfg}, nil
}

// Dir returns the local directory holding rule files, suitable for
// Loader.LoadDirectory. Valid after Checkout.
func (s *GitSource) Dir() string {
	if s.config.RulesPath == "" {
		return s.config.LocalPath
	}
	return filepath.Join(s.config.LocalPath, s.config.RulesPath)
}

// Checkout clones the repository, or opens an existing working copy.
func (s *GitSource) Checkout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(filepath.Join(s.config.LocalPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(s.config.LocalPath)
		if err != nil {
			return fmt.Errorf("failed to open existing checkout: %w", err)
		}
		s.repo = repo
		return nil
	}

	if err := os.MkdirAll(s.config.LocalPath, 0o755); err != nil {
		return fmt.Errorf("failed to create checkout directory: %w", err)
	}

	repo, err := gogit.PlainCloneContext(ctx, s.config.LocalPath, false, &gogit.CloneOptions{
		URL:           s.config.Repository,
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Depth:         s.config.Depth,
		Auth:          s.auth(),
	})
	if err != nil {
		return fmt.Errorf("failed to clone rule base repository: %w", err)
	}

	s.repo = repo
	return nil
}

// Sync pulls the tracked branch and reports whether the checkout advanced.
func (s *GitSource) Sync(ctx context.Context) (*GitSyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil, fmt.Errorf("repository not initialized, call Checkout first")
	}

	before, err := s.headSHA()
	if err != nil {
		return nil, err
	}

	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	err = wt.PullContext(ctx, &gogit.PullOptions{
		ReferenceName: plumbing.NewBranchReferenceName(s.config.Branch),
		SingleBranch:  true,
		Auth:          s.auth(),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return nil, fmt.Errorf("failed to pull rule base repository: %w", err)
	}

	after, err := s.headSHA()
	if err != nil {
		return nil, err
	}

	return &GitSyncResult{
		HadChanges: before != after,
		FromSHA:    before,
		ToSHA:      after,
	}, nil
}

// HeadSHA returns the current commit hash of the checkout.
func (s *GitSource) HeadSHA() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.headSHA()
}

// headSHA reads HEAD. Caller holds the lock.
func (s *GitSource) headSHA() (string, error) {
	if s.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	ref, err := s.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// auth builds the transport auth method, nil for anonymous access.
func (s *GitSource) auth() transport.AuthMethod {
	if s.config.Token == "" {
		return nil
	}
	// go-git treats any non-empty username with a token as token auth.
	return &githttp.BasicAuth{Username: "token", Password: s.config.Token}
}
