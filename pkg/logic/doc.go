// Package logic interprets the boolean eligibility grammar attached to policy
// clauses.
//
// Expressions arrive from rule-base files in a JSON-logic-shaped map form and
// are parsed once, at load time, into a closed tagged-variant AST (literal,
// var, compare, and, or, not). Adding an operator means adding a Kind or
// Comparator constant and extending the evaluator's switch, which keeps the
// grammar's surface auditable.
//
// Evaluation is fail-closed: a malformed or partially unsatisfiable rule never
// evaluates to eligible. Explain produces one human-readable reason per failed
// condition, recursing through nested conjunctions and disjunctions and
// substituting the profile's actual values.
//
// Evaluation is a pure function of (expression, profile): no side effects, no
// I/O, and deterministic output.
package logic
