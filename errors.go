package parsco

import (
	"errors"
	"fmt"
)

// Kind classifies a parse failure.
type Kind int

const (
	// KindExpected is a primitive mismatch or an unexpected end of input.
	KindExpected Kind = iota
	// KindSemantic is raised explicitly by grammar code.
	KindSemantic
	// KindIncomplete means a parse succeeded without covering the whole input.
	KindIncomplete
	// KindNoMatch means no alternative of an ordered choice matched.
	KindNoMatch
	// KindUnregistered means no parser is registered for a (grammar, type) pair.
	KindUnregistered
)

func (k Kind) String() string {
	switch k {
	case KindExpected:
		return "Expected"
	case KindSemantic:
		return "Semantic"
	case KindIncomplete:
		return "Incomplete"
	case KindNoMatch:
		return "NoMatch"
	case KindUnregistered:
		return "Unregistered"
	default:
		return "?"
	}
}

// Sentinels matching each Kind, for use with errors.Is.
var (
	ErrExpected     = errors.New("expected token")
	ErrSemantic     = errors.New("semantic failure")
	ErrIncomplete   = errors.New("incomplete parse")
	ErrNoMatch      = errors.New("no alternative matched")
	ErrUnregistered = errors.New("no parser registered")
)

func (k Kind) sentinel() error {
	switch k {
	case KindExpected:
		return ErrExpected
	case KindSemantic:
		return ErrSemantic
	case KindIncomplete:
		return ErrIncomplete
	case KindNoMatch:
		return ErrNoMatch
	case KindUnregistered:
		return ErrUnregistered
	default:
		return nil
	}
}

// Error is a single parse failure. Offset is the cursor offset at which
// the failure was raised; it is informational, the runner reports the
// farthest failure of the whole session instead.
type Error struct {
	Kind   Kind
	Offset int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(kind Kind, offset int, msg string) *Error {
	return &Error{Kind: kind, Offset: offset, Msg: msg}
}

func newErrorf(kind Kind, offset int, format string, args ...any) *Error {
	return newError(kind, offset, fmt.Sprintf(format, args...))
}

// KindOf returns the Kind of err if it wraps an *Error.
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
