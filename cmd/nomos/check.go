package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"policyver-hq/nomos/pkg/audit"
	"policyver-hq/nomos/pkg/logic"
	"policyver-hq/nomos/pkg/model"
)

var (
	checkPolicy  string
	checkDate    string
	checkProfile string
	checkAuditDB string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a citizen profile against a policy's eligibility clauses",
	Long: `Check loads a profile from a YAML file and evaluates it against every
eligibility clause of the policy in force on the reference date. Evaluation is
fail-closed: a missing profile value or a type mismatch makes the clause fail,
and the reasons explain which condition did not hold.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseReferenceDate(checkDate)
		if err != nil {
			return err
		}

		profile, err := loadProfile(checkProfile)
		if err != nil {
			return err
		}

		g, err := newStore().Graph()
		if err != nil {
			return err
		}

		var recorder *audit.Recorder
		if checkAuditDB != "" {
			backend, err := audit.NewSQLiteBackend(checkAuditDB)
			if err != nil {
				return fmt.Errorf("opening audit database: %w", err)
			}
			defer backend.Close()
			recorder = audit.NewRecorder(backend, slog.Default())
		}

		clauses := g.ActiveClauses(checkPolicy, at)
		var checked, eligible int
		for _, c := range clauses {
			if !c.HasTag(model.TagEligibilityRule) || c.Logic == nil {
				continue
			}
			checked++

			ok := logic.Evaluate(c.Logic, profile)
			var reasons []string
			if ok {
				eligible++
				fmt.Printf("PASS %s: %s\n", c.ID, c.Text)
			} else {
				reasons = logic.Explain(c.Logic, profile)
				fmt.Printf("FAIL %s: %s\n", c.ID, c.Text)
				for _, r := range reasons {
					fmt.Printf("       %s\n", r)
				}
			}

			if recorder != nil {
				recorder.Record(cmd.Context(), checkPolicy, c.ID, at, profile, ok, reasons)
			}
		}

		if checked == 0 {
			fmt.Printf("no eligibility clauses of policy %q in force on %s\n", checkPolicy, at.Format("2006-01-02"))
			return nil
		}

		fmt.Printf("\n%d/%d eligibility clauses satisfied\n", eligible, checked)
		return nil
	},
}

// loadProfile reads a citizen profile from a YAML file.
func loadProfile(path string) (logic.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var profile logic.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return profile, nil
}

func init() {
	checkCmd.Flags().StringVarP(&checkPolicy, "policy", "p", "", "policy ID (required)")
	checkCmd.Flags().StringVarP(&checkDate, "date", "d", "", "reference date (YYYY-MM-DD, default today)")
	checkCmd.Flags().StringVarP(&checkProfile, "profile", "f", "", "citizen profile YAML file (required)")
	checkCmd.Flags().StringVar(&checkAuditDB, "audit-db", "", "SQLite file to record decisions to")
	checkCmd.MarkFlagRequired("policy")
	checkCmd.MarkFlagRequired("profile")
	rootCmd.AddCommand(checkCmd)
}
