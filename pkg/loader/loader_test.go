package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"policyver-hq/nomos/pkg/logic"
	"policyver-hq/nomos/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeRuleFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

const pmKisanUnit = `
documents:
  - id: D1
    title: PM-KISAN Operational Guidelines
    policy_id: pm-kisan
    doc_type: notification
    date_issued: "2019-02-24"
    clauses: [C1]
  - id: D2
    title: PM-KISAN Extension Notification
    policy_id: pm-kisan
    doc_type: notification
    date_issued: "2019-06-01"
    clauses: [C1B]

clauses:
  - id: C1
    policy_id: pm-kisan
    parent_doc_id: D1
    authority_level: notification
    effective_from: "2019-02-24"
    status: superseded
    superseded_by: C1B
    text: Benefit limited to small and marginal farmer families with landholding up to 2 hectares.
    tags: [eligibility_rule]
    logic:
      and:
        - "<=": [{var: land_holding}, 2]
        - "==": [{var: is_farmer}, true]
  - id: C1B
    policy_id: pm-kisan
    parent_doc_id: D2
    authority_level: notification
    effective_from: "2019-06-01"
    status: active
    text: Benefit extended to all landholding farmer families.
    tags: [eligibility_rule]
    logic:
      "==": [{var: is_farmer}, true]
`

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "pm-kisan.yaml", pmKisanUnit)

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}

	stats := g.Stats()
	if stats.Documents != 2 {
		t.Errorf("Documents = %d, want 2", stats.Documents)
	}
	if stats.Clauses != 2 {
		t.Errorf("Clauses = %d, want 2", stats.Clauses)
	}
	if stats.Unresolved != 0 {
		t.Errorf("Unresolved = %d, want 0", stats.Unresolved)
	}

	c1, ok := g.Clause("C1")
	if !ok {
		t.Fatal("clause C1 not loaded")
	}
	if c1.SupersededBy != "C1B" {
		t.Errorf("C1.SupersededBy = %q, want C1B", c1.SupersededBy)
	}
	if c1.Logic == nil {
		t.Fatal("C1.Logic is nil, want parsed expression")
	}
	if !logic.Evaluate(c1.Logic, logic.Profile{"land_holding": 1.5, "is_farmer": true}) {
		t.Error("C1 logic should pass for a 1.5ha farmer")
	}
	if !c1.HasTag(model.TagEligibilityRule) {
		t.Error("C1 should carry the eligibility_rule tag")
	}

	at := time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC)
	active := g.ActiveClauses("pm-kisan", at)
	if len(active) != 1 || active[0].ID != "C1B" {
		t.Errorf("ActiveClauses(2019-07-01) = %d clauses, want [C1B]", len(active))
	}
}

func TestLoadDirectoryCreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rules")

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if stats := g.Stats(); stats.Documents != 0 || stats.Clauses != 0 {
		t.Errorf("Stats = %+v, want empty graph", stats)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("directory %s was not created", dir)
	}
}

func TestLoadDirectorySkipsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "good.yaml", pmKisanUnit)
	writeRuleFile(t, dir, "bad.yaml", "clauses:\n  - id: BROKEN\n    policy_id: [not\n")

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if stats := g.Stats(); stats.Clauses != 2 {
		t.Errorf("Clauses = %d, want 2 from the good file only", stats.Clauses)
	}
	if _, ok := g.Clause("BROKEN"); ok {
		t.Error("malformed file's records must not reach the graph")
	}
}

func TestLoadDirectoryMalformedFileIsAtomic(t *testing.T) {
	// One bad clause poisons its whole file: the file's documents must not
	// land either.
	dir := t.TempDir()
	writeRuleFile(t, dir, "partial.yaml", `
documents:
  - id: D-OK
    policy_id: p
clauses:
  - id: C-BAD
    policy_id: p
    parent_doc_id: D-OK
    effective_from: "not-a-date"
`)

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if _, ok := g.Document("D-OK"); ok {
		t.Error("document from a file with a bad clause must not be registered")
	}
}

func TestLoadDirectoryIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "notes.txt", "not a rule file")
	writeRuleFile(t, dir, "rules.yaml", pmKisanUnit)

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if stats := g.Stats(); stats.Clauses != 2 {
		t.Errorf("Clauses = %d, want 2", stats.Clauses)
	}
}

func TestLoadDirectorySkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, ".draft.yaml", pmKisanUnit)
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeRuleFile(t, filepath.Join(dir, ".git"), "ref.yaml", pmKisanUnit)

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if stats := g.Stats(); stats.Clauses != 0 {
		t.Errorf("Clauses = %d, want 0: hidden entries must be skipped", stats.Clauses)
	}
}

func TestLoadDirectoryRejectsOversizeFile(t *testing.T) {
	dir := t.TempDir()
	writeRuleFile(t, dir, "rules.yaml", pmKisanUnit)

	cfg := DefaultConfig()
	cfg.MaxFileSize = 10

	g, err := New(cfg, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if stats := g.Stats(); stats.Clauses != 0 {
		t.Errorf("Clauses = %d, want 0: oversize file must be skipped", stats.Clauses)
	}
}

func TestLoadDirectoryNotADirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeRuleFile(t, dir, "rules.yaml", pmKisanUnit)

	if _, err := New(nil, testLogger()).LoadDirectory(path); err == nil {
		t.Error("LoadDirectory(file) succeeded, want error")
	}
}

func TestLoadDirectoryNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "central", "agriculture")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeRuleFile(t, sub, "pm-kisan.yml", pmKisanUnit)

	g, err := New(nil, testLogger()).LoadDirectory(dir)
	if err != nil {
		t.Fatalf("LoadDirectory() error: %v", err)
	}
	if stats := g.Stats(); stats.Clauses != 2 {
		t.Errorf("Clauses = %d, want 2 from nested file", stats.Clauses)
	}
}
