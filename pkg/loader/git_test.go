package loader

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewGitSourceDefaults(t *testing.T) {
	s, err := NewGitSource(GitConfig{Repository: "https://example.com/rules.git"})
	if err != nil {
		t.Fatalf("NewGitSource() error: %v", err)
	}
	if s.config.Branch != "main" {
		t.Errorf("Branch = %q, want main default", s.config.Branch)
	}
	if s.config.LocalPath == "" {
		t.Error("LocalPath not defaulted")
	}
}

func TestNewGitSourceRequiresRepository(t *testing.T) {
	if _, err := NewGitSource(GitConfig{}); err == nil {
		t.Error("NewGitSource() succeeded without a repository URL")
	}
}

func TestGitSourceDir(t *testing.T) {
	s, err := NewGitSource(GitConfig{
		Repository: "https://example.com/rules.git",
		LocalPath:  "/var/lib/nomos/checkout",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Dir(); got != "/var/lib/nomos/checkout" {
		t.Errorf("Dir() = %q, want the local path when rules_path is empty", got)
	}

	s.config.RulesPath = "rules/central"
	want := filepath.Join("/var/lib/nomos/checkout", "rules/central")
	if got := s.Dir(); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
}

func TestGitSourceSyncBeforeCheckout(t *testing.T) {
	s, err := NewGitSource(GitConfig{Repository: "https://example.com/rules.git"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Sync(context.Background()); err == nil || !strings.Contains(err.Error(), "not initialized") {
		t.Errorf("Sync() error = %v, want not-initialized error", err)
	}
	if _, err := s.HeadSHA(); err == nil {
		t.Error("HeadSHA() succeeded before Checkout")
	}
}

func TestGitSourceAuth(t *testing.T) {
	anon, err := NewGitSource(GitConfig{Repository: "https://example.com/rules.git"})
	if err != nil {
		t.Fatal(err)
	}
	if anon.auth() != nil {
		t.Error("auth() != nil without a token")
	}

	private, err := NewGitSource(GitConfig{Repository: "https://example.com/rules.git", Token: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	if private.auth() == nil {
		t.Error("auth() = nil with a token configured")
	}
}
