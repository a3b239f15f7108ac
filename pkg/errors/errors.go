// Package errors gives every stage of the query engine front end (scanner,
// parser, planner) one shared error type instead of ad hoc fmt.Errorf calls,
// so callers can branch on error taxonomy instead of string matching.
package errors

import "fmt"

// Kind classifies where in the pipeline an error originated.
type Kind string

const (
	// Parse errors come from the scanner or parser and carry a source Position.
	Parse Kind = "parse"
	// Plan errors come from the logical planner; they reference resolved
	// names rather than source offsets, so they carry no Position.
	Plan Kind = "plan"
	// Internal errors indicate a bug in this module rather than bad input.
	Internal Kind = "internal"
)

// Position locates an error in the original query text.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.Line == 0 && p.Column == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// QueryError is the single error type returned by every stage of this module.
type QueryError struct {
	kind    Kind
	Message string
	Pos     Position
	Source  string // name of the query text this error came from, "<query>" by default
}

func (e *QueryError) Error() string {
	source := e.Source
	if source == "" {
		source = "<query>"
	}
	if pos := e.Pos.String(); pos != "" {
		return fmt.Sprintf("%s:%s: %s", source, pos, e.Message)
	}
	return fmt.Sprintf("%s: %s", source, e.Message)
}

// Kind reports which stage raised the error.
func (e *QueryError) Kind() Kind { return e.kind }

// NewParseError builds a Parse-kind error carrying a source position.
func NewParseError(pos Position, format string, args ...any) *QueryError {
	return &QueryError{kind: Parse, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// NewPlanError builds a Plan-kind error. Plan errors reference resolved
// catalog names, not source offsets, so they carry no position.
func NewPlanError(format string, args ...any) *QueryError {
	return &QueryError{kind: Plan, Message: fmt.Sprintf(format, args...)}
}

// NewInternalError builds an Internal-kind error: a bug in this module, not
// bad input.
func NewInternalError(format string, args ...any) *QueryError {
	return &QueryError{kind: Internal, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a *QueryError of the given kind.
func IsKind(err error, k Kind) bool {
	qe, ok := err.(*QueryError)
	return ok && qe.kind == k
}
