package graph

import (
	"fmt"
	"sort"
)

// Diagnostic reports one unresolved reference found after loading: an ID
// named by depends_on, superseded_by, or parent_doc_id that no loaded node
// carries. Unresolved references are tolerated by every query path; this
// report exists so operators can decide whether a dangling ID is a typo or a
// not-yet-published instrument.
type Diagnostic struct {
	// Relation is the edge kind that could not be materialized.
	Relation EdgeKind

	// DeclaredBy is the ID of the node whose payload declared the relation.
	DeclaredBy string

	// MissingID is the referenced ID that did not resolve.
	MissingID string
}

// String renders the diagnostic for CLI and log output.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: clause %q references unknown id %q", d.Relation, d.DeclaredBy, d.MissingID)
}

// Validate reports every reference that is still unresolved. Loading remains
// tolerant of dangling IDs; this is a post-load diagnostic pass, not a gate.
func (g *Graph) Validate() []Diagnostic {
	diags := make([]Diagnostic, 0, len(g.pending))
	for _, p := range g.pending {
		d := Diagnostic{Relation: p.kind, DeclaredBy: g.nodes[p.origin].id}
		if _, ok := g.byID[p.fromID]; !ok {
			d.MissingID = p.fromID
		} else {
			d.MissingID = p.toID
		}
		diags = append(diags, d)
	}
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].DeclaredBy != diags[j].DeclaredBy {
			return diags[i].DeclaredBy < diags[j].DeclaredBy
		}
		return diags[i].MissingID < diags[j].MissingID
	})
	return diags
}
