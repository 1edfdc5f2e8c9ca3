package logic

import (
	"fmt"
	"strings"
)

// Explain returns one human-readable reason per failed condition. The walk is
// recursive: a failing conjunction explains each failing child, a failing
// disjunction reports that every alternative failed along with each branch's
// own explanation, and atomic comparisons substitute the profile's actual
// value. A passing (or nil) expression yields no reasons.
//
// Like Evaluate, Explain never propagates evaluation errors; a condition that
// cannot be evaluated is explained as a failure.
func Explain(n *Node, profile Profile) []string {
	if n == nil {
		return nil
	}
	if ok, err := eval(n, profile); err == nil && ok {
		return nil
	}
	return explain(n, profile)
}

// explain walks a known-failing expression and collects reasons.
func explain(n *Node, profile Profile) []string {
	switch n.Kind {
	case KindAnd:
		var reasons []string
		for _, child := range n.Children {
			ok, err := eval(child, profile)
			if err == nil && ok {
				continue
			}
			reasons = append(reasons, explain(child, profile)...)
		}
		if len(reasons) == 0 {
			// Defensive: an and that failed must have a failing child.
			reasons = append(reasons, "condition not satisfied")
		}
		return reasons

	case KindOr:
		branches := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			branches = append(branches, strings.Join(explain(child, profile), " and "))
		}
		return []string{fmt.Sprintf("none of the alternatives held: %s", strings.Join(branches, "; "))}

	case KindNot:
		if len(n.Children) != 1 {
			return []string{"malformed negation"}
		}
		return []string{fmt.Sprintf("condition %q must not hold, but it does", describe(n.Children[0], profile))}

	case KindCompare:
		return []string{explainCompare(n, profile)}

	case KindVar:
		if _, ok := lookup(n.Path, profile); !ok {
			return []string{(&MissingVariableError{Path: n.Path}).Error()}
		}
		return []string{fmt.Sprintf("%s is not set", n.Path)}

	case KindLiteral:
		return []string{fmt.Sprintf("constant condition %v is false", n.Value)}

	default:
		return []string{fmt.Sprintf("unknown condition kind %q", n.Kind)}
	}
}

// explainCompare renders a failing comparison with the actual profile value
// substituted in, e.g. "age is 15, requires a value greater than 18".
func explainCompare(n *Node, profile Profile) string {
	// A missing variable is the most common failure; name it directly.
	for _, side := range []*Node{n.Left, n.Right} {
		if side != nil && side.Kind == KindVar {
			if _, ok := lookup(side.Path, profile); !ok {
				return (&MissingVariableError{Path: side.Path}).Error()
			}
		}
	}

	subject := describe(n.Left, profile)
	requirement := describe(n.Right, profile)

	actual := ""
	if n.Left != nil && n.Left.Kind == KindVar {
		if v, ok := lookup(n.Left.Path, profile); ok {
			actual = fmt.Sprintf("%v", v)
			subject = n.Left.Path
		}
	}

	if actual != "" {
		return fmt.Sprintf("%s is %s, requires a value %s %s", subject, actual, comparatorPhrase(n.Comparator), requirement)
	}
	return fmt.Sprintf("%s must be %s %s", subject, comparatorPhrase(n.Comparator), requirement)
}

// describe renders an operand for explanation text.
func describe(n *Node, profile Profile) string {
	if n == nil {
		return "<missing>"
	}
	switch n.Kind {
	case KindVar:
		if v, ok := lookup(n.Path, profile); ok {
			return fmt.Sprintf("%s (=%v)", n.Path, v)
		}
		return n.Path
	case KindLiteral:
		return fmt.Sprintf("%v", n.Value)
	case KindCompare:
		return fmt.Sprintf("%s %s %s", describe(n.Left, profile), n.Comparator, describe(n.Right, profile))
	case KindAnd:
		return fmt.Sprintf("all of %d conditions", len(n.Children))
	case KindOr:
		return fmt.Sprintf("any of %d conditions", len(n.Children))
	case KindNot:
		if len(n.Children) == 1 {
			return "not " + describe(n.Children[0], profile)
		}
		return "not <malformed>"
	default:
		return string(n.Kind)
	}
}

// comparatorPhrase maps a comparator to explanation wording.
func comparatorPhrase(c Comparator) string {
	switch c {
	case CompareGreater:
		return "greater than"
	case CompareGreaterEqual:
		return "of at least"
	case CompareLess:
		return "less than"
	case CompareLessEqual:
		return "of at most"
	case CompareEqual:
		return "equal to"
	case CompareStrictEqual:
		return "exactly equal to"
	case CompareNotEqual:
		return "different from"
	case CompareStrictNotEqual:
		return "strictly different from"
	default:
		return string(c)
	}
}
