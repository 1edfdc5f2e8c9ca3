package model

import (
	"fmt"
	"time"
)

// AuthorityLevel classifies the legal weight of an instrument or clause.
// The set is closed: anything outside it is rejected at load time.
type AuthorityLevel string

const (
	AuthorityConstitutional AuthorityLevel = "constitutional_provision"
	AuthorityAct            AuthorityLevel = "act"
	AuthorityRule           AuthorityLevel = "rule"
	AuthorityRegulation     AuthorityLevel = "regulation"
	AuthorityNotification   AuthorityLevel = "notification"
	AuthorityCircular       AuthorityLevel = "circular"
	AuthorityGuideline      AuthorityLevel = "guideline"
	AuthorityPressRelease   AuthorityLevel = "press_release"
	AuthorityFAQ            AuthorityLevel = "faq"
)

// Valid reports whether the authority level is one of the known values.
func (a AuthorityLevel) Valid() bool {
	switch a {
	case AuthorityConstitutional, AuthorityAct, AuthorityRule,
		AuthorityRegulation, AuthorityNotification, AuthorityCircular,
		AuthorityGuideline, AuthorityPressRelease, AuthorityFAQ:
		return true
	default:
		return false
	}
}

// Document represents one physical legal instrument: a gazette notification,
// circular, act, or similar. Documents are created at load time and never
// mutated afterward; a fresh load replaces the whole graph.
type Document struct {
	// ID is the stable identifier, unique within the graph.
	ID string

	// Title is the instrument's human-readable title.
	Title string

	// PolicyID names the policy/scheme this instrument belongs to.
	PolicyID string

	// DocType is the instrument's authority level.
	DocType AuthorityLevel

	// DateIssued is the date the instrument was issued.
	DateIssued time.Time

	// URL optionally points at the published source.
	URL string

	// ClauseIDs lists the clauses this instrument defines.
	ClauseIDs []string
}

// Validate checks the document's required fields.
func (d *Document) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("document id cannot be empty")
	}
	if d.PolicyID == "" {
		return fmt.Errorf("document %q: policy id cannot be empty", d.ID)
	}
	if d.DocType != "" && !d.DocType.Valid() {
		return fmt.Errorf("document %q: unknown doc type %q", d.ID, d.DocType)
	}
	return nil
}
