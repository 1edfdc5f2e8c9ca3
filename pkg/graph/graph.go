package graph

import (
	"fmt"
	"sort"
	"time"

	"policyver-hq/nomos/pkg/model"
)

// Handle is an integer index into the graph's node arena.
type Handle int32

// InvalidHandle is returned by lookups that do not resolve.
const InvalidHandle Handle = -1

// EdgeKind is the closed set of relations between graph nodes.
type EdgeKind uint8

const (
	// EdgeDefinedIn links a clause to its defining document (provenance).
	EdgeDefinedIn EdgeKind = iota

	// EdgeDependsOn links a clause to a prerequisite clause. Informational:
	// available for traversal, not enforced by the active-set algorithm.
	EdgeDependsOn

	// EdgeSupersedes links a newer clause to the older clause it replaces.
	// This is the edge that drives active-set exclusion. The canonical
	// declaration is on the old clause: old.SupersededBy = new.ID.
	EdgeSupersedes
)

// String returns the relation name for diagnostics.
func (k EdgeKind) String() string {
	switch k {
	case EdgeDefinedIn:
		return "defined_in"
	case EdgeDependsOn:
		return "depends_on"
	case EdgeSupersedes:
		return "supersedes"
	default:
		return fmt.Sprintf("edge_kind(%d)", uint8(k))
	}
}

// node is one arena slot. Exactly one of doc/clause is set.
type node struct {
	id     string
	doc    *model.Document
	clause *model.Clause
}

// edge is a typed, directed relation between two resolved nodes. origin is
// the node whose payload declared the relation, used to drop stale edges when
// that node is re-added.
type edge struct {
	kind   EdgeKind
	from   Handle
	to     Handle
	origin Handle
}

// pendingRef is a declared relation whose endpoint is not loaded. It is
// tolerated silently and materialized if the missing node arrives later;
// Validate reports whatever is still unresolved.
type pendingRef struct {
	kind   EdgeKind
	fromID string
	toID   string
	origin Handle
}

// Graph is an in-memory directed graph over policy documents and clauses.
//
// The graph is built once by the loader and read-only afterward. It performs
// no internal locking: the build-then-publish handoff (see store.Store) is
// what makes concurrent reads safe.
type Graph struct {
	nodes    []node
	byID     map[string]Handle
	edges    []edge
	pending  []pendingRef
	byPolicy map[string][]Handle // clause handles per policy ID
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byID:     make(map[string]Handle),
		byPolicy: make(map[string][]Handle),
	}
}

// AddDocument inserts a document node. Re-adding an existing ID overwrites
// the node's payload; documents declare no outgoing edges of their own.
func (g *Graph) AddDocument(doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("document cannot be nil")
	}
	if err := doc.Validate(); err != nil {
		return err
	}

	h := g.upsert(doc.ID)
	if prev := g.nodes[h].clause; prev != nil {
		// The ID previously named a clause; it leaves that policy's bucket.
		g.removeFromPolicy(prev.PolicyID, h)
	}
	g.nodes[h].doc = doc
	g.nodes[h].clause = nil
	g.dropDeclaredBy(h)

	g.resolvePendingFor(doc.ID)
	return nil
}

// AddClause inserts a clause node and materializes its declared edges: one
// DEFINED_IN edge to the parent document, one DEPENDS_ON edge per dependency,
// and one SUPERSEDES edge (successor -> this clause) when SupersededBy is set.
// References to nodes that are not loaded are kept pending, not rejected.
// Re-adding an existing ID overwrites the payload and its declared edges.
func (g *Graph) AddClause(c *model.Clause) error {
	if c == nil {
		return fmt.Errorf("clause cannot be nil")
	}
	if err := c.Validate(); err != nil {
		return err
	}

	h := g.upsert(c.ID)
	if prev := g.nodes[h].clause; prev == nil {
		g.byPolicy[c.PolicyID] = append(g.byPolicy[c.PolicyID], h)
	} else if prev.PolicyID != c.PolicyID {
		// Re-add under a different policy: move the handle to the new bucket.
		g.removeFromPolicy(prev.PolicyID, h)
		g.byPolicy[c.PolicyID] = append(g.byPolicy[c.PolicyID], h)
	}
	g.nodes[h].clause = c
	g.nodes[h].doc = nil
	g.dropDeclaredBy(h)

	g.declare(EdgeDefinedIn, c.ID, c.ParentDocID, h)
	for _, dep := range c.DependsOn {
		g.declare(EdgeDependsOn, c.ID, dep, h)
	}
	if c.SupersededBy != "" {
		// Edge direction is successor -> predecessor.
		g.declare(EdgeSupersedes, c.SupersededBy, c.ID, h)
	}

	g.resolvePendingFor(c.ID)
	return nil
}

// ActiveClauses returns the clauses of a policy legally in force at the
// reference instant. Candidates are date-window filtered, then a candidate is
// excluded when a SUPERSEDES edge points at it from a clause that is itself a
// candidate; a successor that has not yet taken effect, or has lapsed, does
// not suppress its predecessor. The result is sorted by clause ID, but
// callers must not rely on ordering.
func (g *Graph) ActiveClauses(policyID string, at time.Time) []*model.Clause {
	candidates := make(map[Handle]*model.Clause)
	for _, h := range g.byPolicy[policyID] {
		c := g.nodes[h].clause
		if c != nil && c.InForceAt(at) {
			candidates[h] = c
		}
	}

	suppressed := make(map[Handle]bool)
	for _, e := range g.edges {
		if e.kind != EdgeSupersedes {
			continue
		}
		if _, newer := candidates[e.from]; !newer {
			continue
		}
		if _, older := candidates[e.to]; older {
			suppressed[e.to] = true
		}
	}

	result := make([]*model.Clause, 0, len(candidates))
	for h, c := range candidates {
		if !suppressed[h] {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// ProvenanceChain returns the document(s) that define the given clause,
// normally exactly one. An unknown clause, or a clause whose document is not
// loaded, yields an empty slice; this is not an error condition.
func (g *Graph) ProvenanceChain(clauseID string) []*model.Document {
	docs := []*model.Document{}
	h, ok := g.byID[clauseID]
	if !ok {
		return docs
	}
	for _, e := range g.edges {
		if e.kind == EdgeDefinedIn && e.from == h {
			if d := g.nodes[e.to].doc; d != nil {
				docs = append(docs, d)
			}
		}
	}
	return docs
}

// Dependencies returns the resolved prerequisite clauses of the given clause.
// Dangling dependency IDs are simply absent from the result.
func (g *Graph) Dependencies(clauseID string) []*model.Clause {
	deps := []*model.Clause{}
	h, ok := g.byID[clauseID]
	if !ok {
		return deps
	}
	for _, e := range g.edges {
		if e.kind == EdgeDependsOn && e.from == h {
			if c := g.nodes[e.to].clause; c != nil {
				deps = append(deps, c)
			}
		}
	}
	return deps
}

// Clause returns a clause by ID.
func (g *Graph) Clause(id string) (*model.Clause, bool) {
	if h, ok := g.byID[id]; ok && g.nodes[h].clause != nil {
		return g.nodes[h].clause, true
	}
	return nil, false
}

// Document returns a document by ID.
func (g *Graph) Document(id string) (*model.Document, bool) {
	if h, ok := g.byID[id]; ok && g.nodes[h].doc != nil {
		return g.nodes[h].doc, true
	}
	return nil, false
}

// PolicyIDs returns the sorted set of policy IDs with at least one clause.
func (g *Graph) PolicyIDs() []string {
	ids := make([]string, 0, len(g.byPolicy))
	for id := range g.byPolicy {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Stats summarizes graph contents for logging and metrics.
type Stats struct {
	Documents  int
	Clauses    int
	Edges      int
	Unresolved int
}

// Stats returns node, edge, and unresolved-reference counts.
func (g *Graph) Stats() Stats {
	var s Stats
	for _, n := range g.nodes {
		if n.doc != nil {
			s.Documents++
		}
		if n.clause != nil {
			s.Clauses++
		}
	}
	s.Edges = len(g.edges)
	s.Unresolved = len(g.pending)
	return s
}

// upsert returns the handle for an ID, allocating a node slot if needed.
func (g *Graph) upsert(id string) Handle {
	if h, ok := g.byID[id]; ok {
		return h
	}
	h := Handle(len(g.nodes))
	g.nodes = append(g.nodes, node{id: id})
	g.byID[id] = h
	return h
}

// declare materializes a relation when both endpoints are loaded, and parks
// it as pending otherwise.
func (g *Graph) declare(kind EdgeKind, fromID, toID string, origin Handle) {
	from, fromOK := g.byID[fromID]
	to, toOK := g.byID[toID]
	if fromOK && toOK {
		g.edges = append(g.edges, edge{kind: kind, from: from, to: to, origin: origin})
		return
	}
	g.pending = append(g.pending, pendingRef{kind: kind, fromID: fromID, toID: toID, origin: origin})
}

// resolvePendingFor materializes pending relations unblocked by the arrival
// of the given ID.
func (g *Graph) resolvePendingFor(id string) {
	remaining := g.pending[:0]
	for _, p := range g.pending {
		if p.fromID != id && p.toID != id {
			remaining = append(remaining, p)
			continue
		}
		from, fromOK := g.byID[p.fromID]
		to, toOK := g.byID[p.toID]
		if fromOK && toOK {
			g.edges = append(g.edges, edge{kind: p.kind, from: from, to: to, origin: p.origin})
			continue
		}
		remaining = append(remaining, p)
	}
	g.pending = remaining
}

// removeFromPolicy drops a handle from a policy's clause bucket, deleting the
// bucket when it empties so PolicyIDs stays accurate.
func (g *Graph) removeFromPolicy(policyID string, h Handle) {
	bucket := g.byPolicy[policyID]
	kept := bucket[:0]
	for _, other := range bucket {
		if other != h {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		delete(g.byPolicy, policyID)
		return
	}
	g.byPolicy[policyID] = kept
}

// dropDeclaredBy removes edges and pending refs declared by the node being
// overwritten, so a re-add replaces rather than accumulates relations.
func (g *Graph) dropDeclaredBy(origin Handle) {
	edges := g.edges[:0]
	for _, e := range g.edges {
		if e.origin != origin {
			edges = append(edges, e)
		}
	}
	g.edges = edges

	pending := g.pending[:0]
	for _, p := range g.pending {
		if p.origin != origin {
			pending = append(pending, p)
		}
	}
	g.pending = pending
}
