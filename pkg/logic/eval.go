package logic

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Profile is the flat key/value citizen profile an expression is evaluated
// against. Values may be nested maps; var paths traverse them with dots.
type Profile map[string]interface{}

// Evaluate evaluates an expression against a profile. It is fail-closed: any
// internal evaluation error (missing variable in a comparison, non-numeric
// coercion, malformed node) yields false, never a panic or an error to the
// caller. A nil expression evaluates to true, matching the convention that a
// clause without logic imposes no condition.
func Evaluate(n *Node, profile Profile) bool {
	if n == nil {
		return true
	}
	ok, err := eval(n, profile)
	if err != nil {
		return false
	}
	return ok
}

// eval is the error-carrying evaluator behind Evaluate and Explain.
func eval(n *Node, profile Profile) (bool, error) {
	switch n.Kind {
	case KindLiteral:
		return truthy(n.Value), nil

	case KindVar:
		v, ok := lookup(n.Path, profile)
		if !ok {
			return false, &MissingVariableError{Path: n.Path}
		}
		return truthy(v), nil

	case KindCompare:
		return evalCompare(n, profile)

	case KindAnd:
		for _, child := range n.Children {
			ok, err := eval(child, profile)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case KindOr:
		for _, child := range n.Children {
			ok, err := eval(child, profile)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case KindNot:
		if len(n.Children) != 1 {
			return false, fmt.Errorf("not requires exactly one child, got %d", len(n.Children))
		}
		ok, err := eval(n.Children[0], profile)
		if err != nil {
			return false, err
		}
		return !ok, nil

	default:
		return false, fmt.Errorf("unknown node kind %q", n.Kind)
	}
}

// evalCompare evaluates a comparison node.
func evalCompare(n *Node, profile Profile) (bool, error) {
	left, err := operand(n.Left, profile)
	if err != nil {
		return false, err
	}
	right, err := operand(n.Right, profile)
	if err != nil {
		return false, err
	}

	switch n.Comparator {
	case CompareEqual:
		return looseEqual(left, right), nil

	case CompareNotEqual:
		return !looseEqual(left, right), nil

	case CompareStrictEqual:
		return strictEqual(left, right), nil

	case CompareStrictNotEqual:
		return !strictEqual(left, right), nil

	case CompareGreater, CompareGreaterEqual, CompareLess, CompareLessEqual:
		l, r, err := toNumeric(left, right)
		if err != nil {
			return false, err
		}
		switch n.Comparator {
		case CompareGreater:
			return l > r, nil
		case CompareGreaterEqual:
			return l >= r, nil
		case CompareLess:
			return l < r, nil
		default:
			return l <= r, nil
		}

	default:
		return false, fmt.Errorf("unknown comparator %q", n.Comparator)
	}
}

// operand resolves a comparison operand to a concrete value. Literals and var
// lookups yield their values; compound children yield their boolean result.
func operand(n *Node, profile Profile) (interface{}, error) {
	if n == nil {
		return nil, fmt.Errorf("comparison operand is missing")
	}

	switch n.Kind {
	case KindLiteral:
		return n.Value, nil

	case KindVar:
		v, ok := lookup(n.Path, profile)
		if !ok {
			return nil, &MissingVariableError{Path: n.Path}
		}
		return v, nil

	default:
		return eval(n, profile)
	}
}

// lookup resolves a dot-delimited path against the profile. Missing path
// segments resolve to an absent value, not an error; callers decide whether
// absence is fatal for their operator.
func lookup(path string, profile Profile) (interface{}, bool) {
	var current interface{} = map[string]interface{}(profile)

	for _, segment := range strings.Split(path, ".") {
		switch m := current.(type) {
		case map[string]interface{}:
			v, ok := m[segment]
			if !ok {
				return nil, false
			}
			current = v

		case Profile:
			v, ok := m[segment]
			if !ok {
				return nil, false
			}
			current = v

		default:
			return nil, false
		}
	}

	return current, true
}

// looseEqual compares with numeric coercion first (so int 2 equals float64 2
// regardless of how the decoder typed them), falling back to deep equality.
func looseEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	an, aerr := toFloat64(a)
	bn, berr := toFloat64(b)
	if aerr == nil && berr == nil {
		return an == bn
	}

	return reflect.DeepEqual(a, b)
}

// strictEqual requires the dynamic types to match before comparing.
func strictEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// toNumeric coerces both operands of an ordering comparator to float64.
func toNumeric(a, b interface{}) (float64, float64, error) {
	an, err := toFloat64(a)
	if err != nil {
		return 0, 0, err
	}
	bn, err := toFloat64(b)
	if err != nil {
		return 0, 0, err
	}
	return an, bn, nil
}

// toFloat64 converts a value to float64. Numeric strings are accepted since
// profile values frequently arrive as form-field text.
func toFloat64(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, &CoercionError{Value: v}
		}
		return f, nil
	default:
		return 0, &CoercionError{Value: v}
	}
}

// truthy converts a literal or looked-up value to a boolean, JSON-logic
// style: false, nil, zero numbers, and empty strings/lists are false.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case []interface{}:
		return len(val) > 0
	default:
		if f, err := toFloat64(v); err == nil {
			return f != 0
		}
		return true
	}
}
