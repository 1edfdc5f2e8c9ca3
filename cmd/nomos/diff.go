package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"policyver-hq/nomos/pkg/diff"
	"policyver-hq/nomos/pkg/graph"
)

var (
	diffOld string
	diffNew string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Summarize what changed between two clause versions",
	Long: `Diff compares two clause texts word by word and prints the change blocks
plus a one-line plain-language summary. --old and --new name clause IDs in the
rule base, or plain text files when no clause with that ID exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newStore().Graph()
		if err != nil {
			return err
		}

		oldText, err := resolveText(g, diffOld)
		if err != nil {
			return err
		}
		newText, err := resolveText(g, diffNew)
		if err != nil {
			return err
		}

		report := diff.Generate(oldText, newText)

		for _, b := range report.Blocks {
			switch b.Kind {
			case diff.BlockInsertion:
				fmt.Printf("  + %s\n", strings.Join(b.NewTokens, " "))
			case diff.BlockDeletion:
				fmt.Printf("  - %s\n", strings.Join(b.OldTokens, " "))
			case diff.BlockModification:
				fmt.Printf("  - %s\n", strings.Join(b.OldTokens, " "))
				fmt.Printf("  + %s\n", strings.Join(b.NewTokens, " "))
			}
		}

		fmt.Printf("\n%d added, %d removed, %d unchanged\n",
			report.Metrics.Added, report.Metrics.Removed, report.Metrics.Unchanged)
		fmt.Println(report.Summary)
		return nil
	},
}

// resolveText resolves a --old/--new operand: first as a clause ID in the rule
// base, then as a file path.
func resolveText(g *graph.Graph, ref string) (string, error) {
	if c, ok := g.Clause(ref); ok {
		return c.Text, nil
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return "", fmt.Errorf("%q is neither a clause ID in the rule base nor a readable file", ref)
	}
	return string(data), nil
}

func init() {
	diffCmd.Flags().StringVar(&diffOld, "old", "", "old clause ID or text file (required)")
	diffCmd.Flags().StringVar(&diffNew, "new", "", "new clause ID or text file (required)")
	diffCmd.MarkFlagRequired("old")
	diffCmd.MarkFlagRequired("new")
	rootCmd.AddCommand(diffCmd)
}
