// Package audit records eligibility decisions for after-the-fact review:
// which clause was evaluated, against which profile (by digest, never the
// raw data), with what verdict and reasons.
//
// Recording is strictly best-effort: a failing backend is logged and never
// changes a verdict. Backends: in-memory (tests, debugging) and SQLite
// (durable single-instance trails).
package audit
