// Package diff computes token-level alignments between two versions of a
// clause's legal wording and classifies the change in human terms.
//
// The alignment is word-level (whitespace tokenization) and produced by the
// diffmatchpatch engine; blocks are tagged unchanged, insertion, deletion, or
// modification. The one-line summary is a small heuristic classifier over the
// blocks, including the numeric direction of a changed value ("Value
// increased from 2 to 5.").
package diff
