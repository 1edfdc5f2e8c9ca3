// Package loader reads a rule base, a directory of structured YAML files
// each carrying a documents array and a clauses array, and builds the policy
// graph.
//
// Loading is tolerant by contract: a malformed file is logged and skipped
// without registering partial state, a missing directory is created and
// treated as an empty rule base, and references to IDs that never load are
// accepted silently (graph.Validate reports them on demand).
//
// The rule base may also be a git repository (GitSource), in which case every
// load corresponds to a single commit of the checkout.
package loader
