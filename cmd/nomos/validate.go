package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report unresolved references in the rule base",
	Long: `Validate loads the rule base and lists every declared relation whose
target is not present: clauses defined in unknown documents, dependencies on
unknown clauses, supersessions by unknown successors. Dangling references do
not fail loading, but they usually mean a file is missing or an ID is
misspelled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := newStore().Graph()
		if err != nil {
			return err
		}

		stats := g.Stats()
		fmt.Printf("%d documents, %d clauses, %d edges\n", stats.Documents, stats.Clauses, stats.Edges)

		diags := g.Validate()
		if len(diags) == 0 {
			fmt.Println("no unresolved references")
			return nil
		}

		for _, d := range diags {
			fmt.Println(d.String())
		}
		return fmt.Errorf("%d unresolved reference(s)", len(diags))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
