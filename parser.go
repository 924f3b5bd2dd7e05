package parsco

import (
	"fmt"

	"go.uber.org/zap"
)

// Parser is a computation over a parse session that yields a T.
//
// Building a Parser does no work. Calling it with a *State drives it to
// completion: on success the cursor sits after whatever it consumed; on
// failure the cursor position is unspecified and the caller either
// propagates the error or restores the cursor through Try.
type Parser[T any] func(s *State) (T, error)

// Discarder is any parser whose result can be thrown away. Every
// Parser[T] implements it, which lets sequencing combinators accept
// parsers of mixed result types.
type Discarder interface {
	discard(s *State) error
}

func (p Parser[T]) discard(s *State) error {
	_, err := p(s)
	return err
}

// State is a single parse session: the input buffer, the cursor into it
// and the farthest failure seen so far. A State must not be shared
// between goroutines.
type State struct {
	input    string
	pos      int
	farthest int
	logger   *zap.Logger
	depth    int
}

// Option configures a State.
type Option func(*State)

// WithLogger attaches a logger used by Named and the runner.
func WithLogger(logger *zap.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewState creates a parse session positioned at the start of input.
func NewState(input string, opts ...Option) *State {
	s := &State{
		input:  input,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input returns the whole buffer being parsed.
func (s *State) Input() string { return s.input }

// Pos returns the cursor offset.
func (s *State) Pos() int { return s.pos }

// Remaining returns the unconsumed suffix of the input.
func (s *State) Remaining() string { return s.input[s.pos:] }

// AtEOF reports whether the whole input has been consumed.
func (s *State) AtEOF() bool { return s.pos >= len(s.input) }

// Farthest returns the largest offset at which any failure was recorded.
func (s *State) Farthest() int { return s.farthest }

// Logger returns the session logger. It is never nil.
func (s *State) Logger() *zap.Logger { return s.logger }

// Fail records a semantic failure at the cursor and returns it, so that
// grammar code can write `return zero, s.Fail("...")`.
func (s *State) Fail(msg string) error {
	return s.failAt(s.pos, KindSemantic, msg)
}

// Failf is Fail with formatting.
func (s *State) Failf(format string, args ...any) error {
	return s.failAtf(s.pos, KindSemantic, format, args...)
}

// failAt updates the farthest failure and builds the error.
func (s *State) failAt(offset int, kind Kind, msg string) *Error {
	s.mark(offset)
	return newError(kind, offset, msg)
}

func (s *State) failAtf(offset int, kind Kind, format string, args ...any) *Error {
	return s.failAt(offset, kind, fmt.Sprintf(format, args...))
}

func (s *State) mark(offset int) {
	if offset > s.farthest {
		s.farthest = offset
	}
}

// seek moves the cursor. Offsets outside the buffer are clamped.
func (s *State) seek(offset int) {
	switch {
	case offset < 0:
		offset = 0
	case offset > len(s.input):
		offset = len(s.input)
	}
	s.pos = offset
}

// Ret returns a parser that consumes nothing and succeeds with v.
func Ret[T any](v T) Parser[T] {
	return func(*State) (T, error) {
		return v, nil
	}
}

// Fail returns a parser that always fails with msg.
func Fail[T any](msg string) Parser[T] {
	return func(s *State) (T, error) {
		var zero T
		return zero, s.Fail(msg)
	}
}

// Try runs p and never fails. On failure the cursor is restored to where
// it was before p ran and the error is returned inside the Result.
func Try[T any](p Parser[T]) Parser[Result[T]] {
	return func(s *State) (Result[T], error) {
		start := s.pos
		v, err := p(s)
		if err != nil {
			s.seek(start)
			return Err[T](err), nil
		}
		return Ok(v), nil
	}
}

// TryIgnore runs p through Try and discards its result.
func TryIgnore[T any](p Parser[T]) Parser[struct{}] {
	return func(s *State) (struct{}, error) {
		_, _ = Try(p)(s)
		return struct{}{}, nil
	}
}

// Maybe runs p through Try and yields nil when it fails.
func Maybe[T any](p Parser[T]) Parser[*T] {
	return func(s *State) (*T, error) {
		r, _ := Try(p)(s)
		if !r.Ok() {
			return nil, nil
		}
		v := r.Value()
		return &v, nil
	}
}

// Unwrap lifts a Result into a parser: the value on success, a semantic
// failure carrying the result's message otherwise.
func Unwrap[T any](r Result[T]) Parser[T] {
	return func(s *State) (T, error) {
		if !r.Ok() {
			var zero T
			return zero, s.Fail(r.Err().Error())
		}
		return r.Value(), nil
	}
}
