package syntax

import "fmt"

// ErrorKind separates lexical errors from structural parse errors.
type ErrorKind uint8

const (
	// ErrorLex is a tokenization failure: unterminated construct, invalid
	// escape, malformed delimiter.
	ErrorLex ErrorKind = iota

	// ErrorParse is a structural failure: misplaced quantifier, unbalanced
	// group, invalid conditional, unknown flag.
	ErrorParse
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorLex:
		return "lex"
	case ErrorParse:
		return "parse"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Error is a pattern syntax error carrying the byte offset into the original
// input where the problem was detected.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s error at offset %d: %s", e.Kind, e.Pos, e.Message)
}

// Is matches any other *Error with the same kind, so callers can distinguish
// lexical from structural failures with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}

func lexErr(pos int, format string, args ...any) *Error {
	return &Error{Kind: ErrorLex, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func parseErr(pos int, format string, args ...any) *Error {
	return &Error{Kind: ErrorParse, Message: fmt.Sprintf(format, args...), Pos: pos}
}
