package model

import (
	"strings"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

func validClause() *Clause {
	return &Clause{
		ID:            "C1",
		PolicyID:      "pm-kisan",
		ParentDocID:   "D1",
		EffectiveFrom: date("2019-02-24"),
		Status:        StatusActive,
		Text:          "Income support of Rs.6000 per year to small and marginal farmer families.",
	}
}

func TestClauseValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Clause)
		wantErr string
	}{
		{"valid", func(c *Clause) {}, ""},
		{"missing id", func(c *Clause) { c.ID = "" }, "id cannot be empty"},
		{"missing policy id", func(c *Clause) { c.PolicyID = "" }, "policy id"},
		{"missing parent doc", func(c *Clause) { c.ParentDocID = "" }, "parent doc id"},
		{"missing effective from", func(c *Clause) { c.EffectiveFrom = time.Time{} }, "effective_from"},
		{"window inverted", func(c *Clause) { c.EffectiveTo = datePtr("2019-01-01") }, "must be after"},
		{"window zero length", func(c *Clause) { c.EffectiveTo = datePtr("2019-02-24") }, "must be after"},
		{"unknown authority", func(c *Clause) { c.AuthorityLevel = "decree" }, "authority level"},
		{"unknown status", func(c *Clause) { c.Status = "pending" }, "status"},
		{"valid window", func(c *Clause) { c.EffectiveTo = datePtr("2019-06-01") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClause()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestClauseInForceAt(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		at   string
		want bool
	}{
		{"before window", "2019-02-24", "", "2019-01-01", false},
		{"on start date", "2019-02-24", "", "2019-02-24", true},
		{"open ended", "2019-02-24", "", "2030-01-01", true},
		{"inside closed window", "2019-02-24", "2019-06-01", "2019-03-01", true},
		{"on end date is excluded", "2019-02-24", "2019-06-01", "2019-06-01", false},
		{"after closed window", "2019-02-24", "2019-06-01", "2019-07-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validClause()
			c.EffectiveFrom = date(tt.from)
			if tt.to != "" {
				c.EffectiveTo = datePtr(tt.to)
			}
			if got := c.InForceAt(date(tt.at)); got != tt.want {
				t.Errorf("InForceAt(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestClauseHasTag(t *testing.T) {
	c := validClause()
	c.Tags = []string{TagEligibilityRule, "benefit"}

	if !c.HasTag(TagEligibilityRule) {
		t.Error("HasTag(eligibility_rule) = false, want true")
	}
	if c.HasTag("penalty") {
		t.Error("HasTag(penalty) = true, want false")
	}
}
