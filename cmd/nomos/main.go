// Nomos is a temporal policy-versioning graph for government-scheme knowledge
// bases. It answers which legal clauses of a policy are in force on a
// reference date, whether a citizen profile satisfies a clause's eligibility
// logic (and exactly which condition failed), and what changed between two
// versions of a clause's wording.
//
// Usage:
//
//	# List clauses of a policy in force on a date
//	nomos active --policy pm-kisan --date 2019-07-01
//
//	# Check a citizen profile against a policy's eligibility clauses
//	nomos check --policy pm-kisan --date 2019-07-01 --profile farmer.yaml
//
//	# Compare two clause versions
//	nomos diff --old C1 --new C1B
//
//	# Report unresolved references in the rule base
//	nomos validate
package main

func main() {
	Execute()
}
