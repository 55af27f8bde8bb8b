package nfa

import "fmt"

// UnsupportedError reports a pattern construct that has no finite-automaton
// equivalent, such as a backreference or a lookaround assertion. The pattern
// itself is valid; it just cannot be modeled as a regular language.
type UnsupportedError struct {
	// Construct names the offending construct as it appears in the pattern.
	Construct string

	// Pos is the byte offset of the construct in the original input.
	Pos int
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("construct %s at offset %d cannot be compiled to an automaton", e.Construct, e.Pos)
}

// Is reports whether target is an *UnsupportedError, so
// errors.Is(err, &UnsupportedError{}) matches the whole class.
func (e *UnsupportedError) Is(target error) bool {
	_, ok := target.(*UnsupportedError)
	return ok
}

// PropertyError reports an unknown Unicode property or script name in a
// \p{...} escape.
type PropertyError struct {
	Name string
	Pos  int
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	return fmt.Sprintf("unknown Unicode property %q at offset %d", e.Name, e.Pos)
}

// Is reports whether target is a *PropertyError.
func (e *PropertyError) Is(target error) bool {
	_, ok := target.(*PropertyError)
	return ok
}
