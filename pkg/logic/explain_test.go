package logic

import (
	"strings"
	"testing"
)

func TestExplainFailedComparisonInConjunction(t *testing.T) {
	// {"and": [{">": [{"var": "age"}, 18]}]} against age 15.
	n := And(Compare(CompareGreater, Var("age"), Literal(18)))
	reasons := Explain(n, Profile{"age": 15})

	if len(reasons) != 1 {
		t.Fatalf("len(reasons) = %d, want 1: %v", len(reasons), reasons)
	}
	if !strings.Contains(reasons[0], "age") {
		t.Errorf("reason %q does not reference the variable", reasons[0])
	}
	if !strings.Contains(reasons[0], "18") {
		t.Errorf("reason %q does not reference the threshold", reasons[0])
	}
}

func TestExplainSubstitutesActualValue(t *testing.T) {
	n := Compare(CompareGreater, Var("age"), Literal(18))
	reasons := Explain(n, Profile{"age": 15})

	want := "age is 15, requires a value greater than 18"
	if len(reasons) != 1 || reasons[0] != want {
		t.Errorf("reasons = %v, want [%q]", reasons, want)
	}
}

func TestExplainPassingExpression(t *testing.T) {
	n := Compare(CompareGreater, Var("age"), Literal(18))
	if reasons := Explain(n, Profile{"age": 45}); reasons != nil {
		t.Errorf("Explain() = %v, want nil for passing expression", reasons)
	}
	if reasons := Explain(nil, Profile{}); reasons != nil {
		t.Errorf("Explain(nil) = %v, want nil", reasons)
	}
}

func TestExplainMissingVariable(t *testing.T) {
	n := Compare(CompareGreaterEqual, Var("land_holding"), Literal(1))
	reasons := Explain(n, Profile{"age": 45})

	if len(reasons) != 1 {
		t.Fatalf("len(reasons) = %d, want 1: %v", len(reasons), reasons)
	}
	if !strings.Contains(reasons[0], "land_holding") || !strings.Contains(reasons[0], "missing") {
		t.Errorf("reason %q should name the missing variable", reasons[0])
	}
}

func TestExplainCollectsAllFailingConjuncts(t *testing.T) {
	n := And(
		Compare(CompareGreater, Var("age"), Literal(18)),
		Compare(CompareEqual, Var("is_farmer"), Literal(true)),
		Compare(CompareLessEqual, Var("land_holding"), Literal(2)),
	)
	reasons := Explain(n, Profile{"age": 15, "is_farmer": false, "land_holding": 1.5})

	if len(reasons) != 2 {
		t.Fatalf("len(reasons) = %d, want 2: %v", len(reasons), reasons)
	}
	if !strings.Contains(reasons[0], "age") {
		t.Errorf("first reason %q should reference age", reasons[0])
	}
	if !strings.Contains(reasons[1], "is_farmer") {
		t.Errorf("second reason %q should reference is_farmer", reasons[1])
	}
}

func TestExplainFailedDisjunction(t *testing.T) {
	n := Or(
		Compare(CompareGreater, Var("age"), Literal(60)),
		Compare(CompareEqual, Var("category"), Literal("widow")),
	)
	reasons := Explain(n, Profile{"age": 45, "category": "general"})

	if len(reasons) != 1 {
		t.Fatalf("len(reasons) = %d, want 1: %v", len(reasons), reasons)
	}
	if !strings.Contains(reasons[0], "none of the alternatives held") {
		t.Errorf("reason %q should say no alternative held", reasons[0])
	}
	if !strings.Contains(reasons[0], "age") || !strings.Contains(reasons[0], "category") {
		t.Errorf("reason %q should explain both branches", reasons[0])
	}
}

func TestExplainNestedCompound(t *testing.T) {
	// Failing or nested under a passing-and-failing and.
	n := And(
		Compare(CompareEqual, Var("is_farmer"), Literal(true)),
		Or(
			Compare(CompareGreater, Var("age"), Literal(60)),
			Compare(CompareLess, Var("land_holding"), Literal(1)),
		),
	)
	reasons := Explain(n, Profile{"is_farmer": true, "age": 45, "land_holding": 1.5})

	if len(reasons) != 1 {
		t.Fatalf("len(reasons) = %d, want 1: %v", len(reasons), reasons)
	}
	if !strings.Contains(reasons[0], "none of the alternatives held") {
		t.Errorf("reason %q should come from the failing disjunction", reasons[0])
	}
}

func TestExplainNegation(t *testing.T) {
	n := Not(Var("excluded"))
	reasons := Explain(n, Profile{"excluded": true})

	if len(reasons) != 1 {
		t.Fatalf("len(reasons) = %d, want 1: %v", len(reasons), reasons)
	}
	if !strings.Contains(reasons[0], "must not hold") {
		t.Errorf("reason %q should phrase the negation", reasons[0])
	}
}
