// Package graph holds the in-memory temporal policy graph: documents and
// clauses as nodes in a handle-indexed arena, with a closed set of typed
// edges (defined_in, depends_on, supersedes).
//
// The graph answers two questions the rest of the system is built on: which
// clauses of a policy are in force at a reference instant (date-window filter
// plus supersession exclusion), and which document(s) legally establish a
// given clause (provenance).
//
// A graph is mutable only during loading. Once published it is read-only, and
// concurrent readers need no synchronization; see store.Store for the
// build-then-swap lifecycle.
package graph
