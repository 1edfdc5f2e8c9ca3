package model

import (
	"fmt"
	"time"

	"policyver-hq/nomos/pkg/logic"
)

// Status is the informational lifecycle state of a clause. It is carried for
// display and filtering only; the active-set computation relies solely on
// effective dates and supersession edges.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusAmended    Status = "amended"
	StatusSuperseded Status = "superseded"
	StatusRepealed   Status = "repealed"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusAmended, StatusSuperseded, StatusRepealed:
		return true
	default:
		return false
	}
}

// TagEligibilityRule marks clauses that encode eligibility logic, as opposed
// to purely informational provisions.
const TagEligibilityRule = "eligibility_rule"

// Clause is the atomic, independently versioned unit of policy meaning.
// A later notification never edits a clause in place: it introduces a new
// Clause whose ID the old one's SupersededBy points at. That forward pointer
// is what makes point-in-time queries possible.
type Clause struct {
	// ID is the stable identifier, unique within the whole graph.
	ID string

	// PolicyID names the owning policy/scheme.
	PolicyID string

	// ParentDocID names the defining document (provenance). Exactly one.
	ParentDocID string

	// AuthorityLevel classifies the clause's legal weight.
	AuthorityLevel AuthorityLevel

	// Signatory optionally names the signing authority.
	Signatory string

	// EffectiveFrom is the instant the clause takes force. Required.
	EffectiveFrom time.Time

	// EffectiveTo, if set, is the instant the clause lapses. Must be
	// strictly after EffectiveFrom. Nil means open-ended.
	EffectiveTo *time.Time

	// Status is the informational lifecycle state.
	Status Status

	// SupersededBy optionally names the clause that replaces this one.
	// The referenced clause may not be loaded; that is tolerated.
	SupersededBy string

	// AmendedBy lists clauses that amended this one (informational).
	AmendedBy []string

	// Text is the free-text legal wording.
	Text string

	// Logic is the optional eligibility expression evaluated against a
	// citizen profile. Nil for purely informational clauses.
	Logic *logic.Node

	// DependsOn lists prerequisite clause IDs (informational; traversable
	// but not enforced by the active-set algorithm).
	DependsOn []string

	// Excludes lists mutually exclusive clause IDs.
	Excludes []string

	// Tags select which clauses are eligibility-relevant.
	Tags []string
}

// Validate checks the clause's required fields and the date-window invariant.
func (c *Clause) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("clause id cannot be empty")
	}
	if c.PolicyID == "" {
		return fmt.Errorf("clause %q: policy id cannot be empty", c.ID)
	}
	if c.ParentDocID == "" {
		return fmt.Errorf("clause %q: parent doc id cannot be empty", c.ID)
	}
	if c.EffectiveFrom.IsZero() {
		return fmt.Errorf("clause %q: effective_from is required", c.ID)
	}
	if c.EffectiveTo != nil && !c.EffectiveTo.After(c.EffectiveFrom) {
		return fmt.Errorf("clause %q: effective_to %s must be after effective_from %s",
			c.ID, c.EffectiveTo.Format(time.RFC3339), c.EffectiveFrom.Format(time.RFC3339))
	}
	if c.AuthorityLevel != "" && !c.AuthorityLevel.Valid() {
		return fmt.Errorf("clause %q: unknown authority level %q", c.ID, c.AuthorityLevel)
	}
	if c.Status != "" && !c.Status.Valid() {
		return fmt.Errorf("clause %q: unknown status %q", c.ID, c.Status)
	}
	return nil
}

// InForceAt reports whether the clause's date window covers the reference
// instant: EffectiveFrom <= at and, when EffectiveTo is set, at < EffectiveTo.
// Supersession is not consulted here.
func (c *Clause) InForceAt(at time.Time) bool {
	if c.EffectiveFrom.After(at) {
		return false
	}
	if c.EffectiveTo != nil && !at.Before(*c.EffectiveTo) {
		return false
	}
	return true
}

// HasTag reports whether the clause carries the given tag.
func (c *Clause) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
