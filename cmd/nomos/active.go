package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	activePolicy string
	activeDate   string
)

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "List the clauses of a policy in force on a date",
	Long: `Active applies the point-in-time algorithm: clauses of the policy whose
effective window covers the reference date, minus any clause whose superseding
successor is itself in force on that date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseReferenceDate(activeDate)
		if err != nil {
			return err
		}

		g, err := newStore().Graph()
		if err != nil {
			return err
		}

		clauses := g.ActiveClauses(activePolicy, at)
		if len(clauses) == 0 {
			fmt.Printf("no clauses of policy %q in force on %s\n", activePolicy, at.Format("2006-01-02"))
			return nil
		}

		fmt.Printf("clauses of policy %q in force on %s:\n", activePolicy, at.Format("2006-01-02"))
		for _, c := range clauses {
			window := c.EffectiveFrom.Format("2006-01-02") + " .."
			if c.EffectiveTo != nil {
				window += " " + c.EffectiveTo.Format("2006-01-02")
			}
			fmt.Printf("  %-12s [%s] %s\n", c.ID, window, c.Text)
			for _, d := range g.ProvenanceChain(c.ID) {
				fmt.Printf("               defined in %s (%s, %s)\n", d.ID, d.DocType, d.DateIssued.Format("2006-01-02"))
			}
		}
		return nil
	},
}

func init() {
	activeCmd.Flags().StringVarP(&activePolicy, "policy", "p", "", "policy ID (required)")
	activeCmd.Flags().StringVarP(&activeDate, "date", "d", "", "reference date (YYYY-MM-DD, default today)")
	activeCmd.MarkFlagRequired("policy")
	rootCmd.AddCommand(activeCmd)
}
