package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"policyver-hq/nomos/pkg/loader"
	"policyver-hq/nomos/pkg/store"
)

var (
	// Global flags
	rulesDir string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "nomos",
	Short: "Temporal policy-versioning graph and eligibility engine",
	Long: `Nomos loads a rule base of policy documents and clauses, answers
point-in-time "which clauses are in force" queries with supersession
semantics, evaluates eligibility logic against citizen profiles with
explainable failures, and summarizes what changed between clause versions.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rulesDir, "rules", "r", "rules", "rule base directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// setupLogging configures the process logger from the global flags.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// newStore builds the graph store over the configured rule base.
func newStore() *store.Store {
	setupLogging()
	l := loader.New(nil, slog.Default())
	return store.New(rulesDir, l, slog.Default(), nil)
}

// parseReferenceDate parses the --date flag, defaulting to now.
func parseReferenceDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD)", s)
}
