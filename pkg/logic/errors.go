package logic

import "fmt"

// MissingVariableError indicates a var lookup resolved to no value in the
// profile. Under fail-closed evaluation it makes the enclosing expression
// false rather than propagating to the caller.
type MissingVariableError struct {
	// Path is the dot-delimited profile path that did not resolve.
	Path string
}

// Error implements the error interface.
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("profile value %q is missing", e.Path)
}

// CoercionError indicates an operand could not be coerced to the numeric type
// a comparator requires.
type CoercionError struct {
	// Value is the operand that failed coercion.
	Value interface{}
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %v (%T) to a number", e.Value, e.Value)
}
