package logic

// Kind discriminates the variants of an expression node. The set is closed;
// every evaluator switch over Kind handles all of them.
type Kind string

const (
	KindLiteral Kind = "literal" // constant value
	KindVar     Kind = "var"     // dot-path lookup into the profile
	KindCompare Kind = "compare" // lhs comparator rhs
	KindAnd     Kind = "and"     // all children must hold
	KindOr      Kind = "or"      // any child must hold
	KindNot     Kind = "not"     // negation of a single child
)

// Comparator is a comparison operator between two operands.
type Comparator string

const (
	CompareEqual          Comparator = "=="
	CompareStrictEqual    Comparator = "==="
	CompareNotEqual       Comparator = "!="
	CompareStrictNotEqual Comparator = "!=="
	CompareGreater        Comparator = ">"
	CompareGreaterEqual   Comparator = ">="
	CompareLess           Comparator = "<"
	CompareLessEqual      Comparator = "<="
)

// Node is one expression in the eligibility grammar. Which fields are
// meaningful depends on Kind:
//
//   - KindLiteral: Value
//   - KindVar:     Path
//   - KindCompare: Comparator, Left, Right
//   - KindAnd/Or:  Children
//   - KindNot:     Children (exactly one)
type Node struct {
	Kind       Kind
	Value      interface{} // literal constant
	Path       string      // dot-delimited profile path
	Comparator Comparator
	Left       *Node
	Right      *Node
	Children   []*Node
}

// Literal constructs a constant node.
func Literal(v interface{}) *Node {
	return &Node{Kind: KindLiteral, Value: v}
}

// Var constructs a profile lookup node for the given dot-delimited path.
func Var(path string) *Node {
	return &Node{Kind: KindVar, Path: path}
}

// Compare constructs a comparison node.
func Compare(op Comparator, left, right *Node) *Node {
	return &Node{Kind: KindCompare, Comparator: op, Left: left, Right: right}
}

// And constructs a conjunction over the given children.
func And(children ...*Node) *Node {
	return &Node{Kind: KindAnd, Children: children}
}

// Or constructs a disjunction over the given children.
func Or(children ...*Node) *Node {
	return &Node{Kind: KindOr, Children: children}
}

// Not constructs a negation of a single child.
func Not(child *Node) *Node {
	return &Node{Kind: KindNot, Children: []*Node{child}}
}
