package logic

import "fmt"

// Parse converts the map-based wire form of an expression, as decoded from a
// rule-base file, into the typed AST. The wire form is JSON-logic shaped:
// a literal, or a single-key map whose key names the operator:
//
//	{"and": [ {">=": [{"var": "age"}, 18]}, {"==": [{"var": "is_farmer"}, true]} ]}
//
// Unknown operators and malformed operand shapes are parse errors, not
// evaluation-time surprises.
func Parse(v interface{}) (*Node, error) {
	switch expr := v.(type) {
	case map[string]interface{}:
		return parseOperator(expr)

	case map[interface{}]interface{}:
		// yaml.v2-style decoding; normalize the keys.
		normalized := make(map[string]interface{}, len(expr))
		for k, val := range expr {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("operator key must be a string, got %T", k)
			}
			normalized[ks] = val
		}
		return parseOperator(normalized)

	default:
		// Anything that is not a map is a literal.
		return Literal(v), nil
	}
}

// parseOperator parses a single-key operator map.
func parseOperator(expr map[string]interface{}) (*Node, error) {
	if len(expr) != 1 {
		return nil, fmt.Errorf("operator map must have exactly one key, got %d", len(expr))
	}

	var op string
	var arg interface{}
	for k, v := range expr {
		op, arg = k, v
	}

	switch op {
	case "var":
		path, ok := arg.(string)
		if !ok {
			return nil, fmt.Errorf("var operand must be a string path, got %T", arg)
		}
		if path == "" {
			return nil, fmt.Errorf("var path cannot be empty")
		}
		return Var(path), nil

	case "and", "or":
		children, err := parseList(op, arg)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, fmt.Errorf("%q requires at least one operand", op)
		}
		if op == "and" {
			return And(children...), nil
		}
		return Or(children...), nil

	case "!", "not":
		// Negation takes a single operand, either bare or in a one-element list.
		operands, err := parseList(op, arg)
		if err != nil {
			child, cerr := Parse(arg)
			if cerr != nil {
				return nil, cerr
			}
			return Not(child), nil
		}
		if len(operands) != 1 {
			return nil, fmt.Errorf("%q requires exactly one operand, got %d", op, len(operands))
		}
		return Not(operands[0]), nil

	case string(CompareEqual), string(CompareStrictEqual),
		string(CompareNotEqual), string(CompareStrictNotEqual),
		string(CompareGreater), string(CompareGreaterEqual),
		string(CompareLess), string(CompareLessEqual):
		operands, err := parseList(op, arg)
		if err != nil {
			return nil, err
		}
		if len(operands) != 2 {
			return nil, fmt.Errorf("%q requires exactly two operands, got %d", op, len(operands))
		}
		return Compare(Comparator(op), operands[0], operands[1]), nil

	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}

// parseList parses an operator argument that must be a list of expressions.
func parseList(op string, arg interface{}) ([]*Node, error) {
	items, ok := arg.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%q operand must be a list, got %T", op, arg)
	}

	nodes := make([]*Node, 0, len(items))
	for i, item := range items {
		node, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("%q operand %d: %w", op, i, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
